// Package hid contributes a Human Interface Device function descriptor
// to a composite device configuration: one interface, the HID class
// descriptor referencing an opaque report descriptor, and an interrupt
// IN endpoint.
//
// The report descriptor itself is not interpreted here; it is carried
// through verbatim and served on GET_DESCRIPTOR(HID report) requests.
package hid

import (
	"encoding/binary"

	"github.com/ardnew/usbdesc/descriptor"
	"github.com/ardnew/usbdesc/pkg"
)

// HID class codes.
const (
	ClassHID         = 0x03 // Human Interface Device
	SubclassNone     = 0x00 // No subclass
	SubclassBoot     = 0x01 // Boot interface subclass
	ProtocolNone     = 0x00
	ProtocolKeyboard = 0x01
	ProtocolMouse    = 0x02
)

// hidVersion is the HID specification release (BCD).
const hidVersion = 0x0111

// classDescriptorSize is the size of the HID class descriptor with one
// subordinate report descriptor.
const classDescriptorSize = 9

// Endpoint parameters for the interrupt IN endpoint.
const (
	interruptPacketSize = 64
	interruptInterval   = 8 // Polling interval (ms)
)

// FunctionLength is the byte count of the HID sub-descriptor: interface,
// HID class descriptor, and interrupt IN endpoint.
const FunctionLength = descriptor.InterfaceSize +
	classDescriptorSize +
	descriptor.EndpointSize

// Device contributes one HID function carrying the given report
// descriptor, consuming one interface, one endpoint number, and one name
// string.
type Device struct {
	name   string
	report []byte
}

// New creates a HID contributor for the given opaque report descriptor.
func New(name string, report []byte) *Device {
	return &Device{name: name, report: report}
}

// ReportDescriptor returns the report descriptor blob.
func (d *Device) ReportDescriptor() []byte {
	return d.report
}

// DescriptorLength reports the sub-descriptor byte count.
func (d *Device) DescriptorLength() int {
	return FunctionLength
}

// AddDescriptor serializes the HID sub-descriptor into buf.
func (d *Device) AddDescriptor(buf []byte, alloc *descriptor.Allocator) (int, error) {
	if len(buf) < FunctionLength {
		return 0, pkg.ErrBufferTooSmall
	}

	nameIndex, err := alloc.Strings.Add(d.name)
	if err != nil {
		return 0, err
	}

	number := alloc.NextInterface()
	interruptEP := alloc.NextEndpoint()

	n := 0

	itf := descriptor.Interface{
		InterfaceNumber:   number,
		NumEndpoints:      1,
		InterfaceClass:    ClassHID,
		InterfaceSubClass: SubclassNone,
		InterfaceProtocol: ProtocolNone,
		InterfaceIndex:    nameIndex,
	}
	n += itf.MarshalTo(buf[n:])

	// HID class descriptor: one subordinate report descriptor whose
	// length the host uses to size its GET_DESCRIPTOR request.
	buf[n+0] = classDescriptorSize
	buf[n+1] = descriptor.TypeHID
	binary.LittleEndian.PutUint16(buf[n+2:], hidVersion)
	buf[n+4] = 0 // bCountryCode: not localized
	buf[n+5] = 1 // bNumDescriptors
	buf[n+6] = descriptor.TypeHIDReport
	binary.LittleEndian.PutUint16(buf[n+7:], uint16(len(d.report)))
	n += classDescriptorSize

	in := descriptor.Endpoint{
		EndpointAddress: interruptEP | descriptor.EndpointDirectionIn,
		Attributes:      descriptor.EndpointTypeInterrupt,
		MaxPacketSize:   interruptPacketSize,
		Interval:        interruptInterval,
	}
	n += in.MarshalTo(buf[n:])

	pkg.LogDebug(pkg.ComponentClass, "HID descriptor added",
		"interface", number,
		"reportBytes", len(d.report))

	return n, nil
}

// Compile-time interface checks
var (
	_ descriptor.Contributor    = (*Device)(nil)
	_ descriptor.ReportProvider = (*Device)(nil)
)
