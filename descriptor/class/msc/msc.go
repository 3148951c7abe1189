// Package msc contributes a Mass Storage Class (Bulk-Only Transport)
// function descriptor to a composite device configuration: one interface
// with a bulk endpoint pair, speaking the SCSI transparent command set.
package msc

import (
	"github.com/ardnew/usbdesc/descriptor"
	"github.com/ardnew/usbdesc/pkg"
)

// FunctionLength is the byte count of the MSC sub-descriptor: one
// interface and a bulk endpoint pair.
const FunctionLength = descriptor.InterfaceSize + 2*descriptor.EndpointSize

// MassStorage contributes a Bulk-Only Transport function, consuming one
// interface, one endpoint number (shared by the IN/OUT pair), and one
// name string.
type MassStorage struct {
	name string
}

// New creates a mass storage contributor labeled with the given name.
func New(name string) *MassStorage {
	return &MassStorage{name: name}
}

// DescriptorLength reports the sub-descriptor byte count.
func (m *MassStorage) DescriptorLength() int {
	return FunctionLength
}

// AddDescriptor serializes the MSC sub-descriptor into buf.
func (m *MassStorage) AddDescriptor(buf []byte, alloc *descriptor.Allocator) (int, error) {
	if len(buf) < FunctionLength {
		return 0, pkg.ErrBufferTooSmall
	}

	nameIndex, err := alloc.Strings.Add(m.name)
	if err != nil {
		return 0, err
	}

	number := alloc.NextInterface()
	bulkEP := alloc.NextEndpoint()

	n := 0

	itf := descriptor.Interface{
		InterfaceNumber:   number,
		NumEndpoints:      2,
		InterfaceClass:    ClassMSC,
		InterfaceSubClass: SubclassSCSI,
		InterfaceProtocol: ProtocolBulkOnly,
		InterfaceIndex:    nameIndex,
	}
	n += itf.MarshalTo(buf[n:])

	out := descriptor.Endpoint{
		EndpointAddress: bulkEP,
		Attributes:      descriptor.EndpointTypeBulk,
		MaxPacketSize:   bulkPacketSize,
	}
	n += out.MarshalTo(buf[n:])

	in := descriptor.Endpoint{
		EndpointAddress: bulkEP | descriptor.EndpointDirectionIn,
		Attributes:      descriptor.EndpointTypeBulk,
		MaxPacketSize:   bulkPacketSize,
	}
	n += in.MarshalTo(buf[n:])

	pkg.LogDebug(pkg.ComponentClass, "MSC descriptor added",
		"interface", number,
		"endpoint", bulkEP)

	return n, nil
}

// Compile-time interface check
var _ descriptor.Contributor = (*MassStorage)(nil)
