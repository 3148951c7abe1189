// Package cdc contributes CDC-ACM (virtual serial port) function
// descriptors to a composite device configuration.
//
// Each [ACM] instance is one complete function: an interface association
// descriptor grouping a communications-class control interface with a
// data-class interface, the header/call-management/ACM/union functional
// descriptors, an interrupt notification endpoint, and a bulk endpoint
// pair. Devices that expose both a console and a separate data channel
// simply add two instances; the serial functions are placed first in the
// configuration for host driver compatibility.
package cdc
