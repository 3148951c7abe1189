package cdc

import (
	"encoding/binary"

	"github.com/ardnew/usbdesc/descriptor"
	"github.com/ardnew/usbdesc/pkg"
)

// FunctionLength is the byte count of one complete ACM function
// sub-descriptor: IAD, control interface, the four functional
// descriptors, notification endpoint, data interface, and bulk
// endpoint pair.
const FunctionLength = descriptor.InterfaceAssociationSize +
	descriptor.InterfaceSize +
	headerFunctionalSize +
	callManagementSize +
	acmFunctionalSize +
	unionFunctionalSize +
	descriptor.EndpointSize +
	descriptor.InterfaceSize +
	2*descriptor.EndpointSize

// ACM contributes one CDC-ACM (virtual serial port) function to the
// configuration descriptor. A composite device may carry several ACM
// functions, e.g. one console channel and one data channel; each
// instance consumes two interfaces, two endpoint numbers, and one name
// string.
type ACM struct {
	name string
}

// NewACM creates an ACM contributor whose control interface is labeled
// with the given name string.
func NewACM(name string) *ACM {
	return &ACM{name: name}
}

// DescriptorLength reports the sub-descriptor byte count.
func (a *ACM) DescriptorLength() int {
	return FunctionLength
}

// AddDescriptor serializes the ACM function sub-descriptor into buf,
// consuming two interface numbers (control, data), two endpoint numbers
// (notification, bulk pair), and one string slot.
func (a *ACM) AddDescriptor(buf []byte, alloc *descriptor.Allocator) (int, error) {
	if len(buf) < FunctionLength {
		return 0, pkg.ErrBufferTooSmall
	}

	nameIndex, err := alloc.Strings.Add(a.name)
	if err != nil {
		return 0, err
	}

	control := alloc.NextInterface()
	data := alloc.NextInterface()
	notifyEP := alloc.NextEndpoint()
	dataEP := alloc.NextEndpoint()

	n := 0

	iad := descriptor.InterfaceAssociation{
		FirstInterface:   control,
		InterfaceCount:   2,
		FunctionClass:    ClassCDC,
		FunctionSubClass: SubclassACM,
		FunctionProtocol: ProtocolNone,
	}
	n += iad.MarshalTo(buf[n:])

	controlItf := descriptor.Interface{
		InterfaceNumber:   control,
		NumEndpoints:      1,
		InterfaceClass:    ClassCDC,
		InterfaceSubClass: SubclassACM,
		InterfaceProtocol: ProtocolNone,
		InterfaceIndex:    nameIndex,
	}
	n += controlItf.MarshalTo(buf[n:])

	// Header functional descriptor: CDC release 1.20.
	buf[n+0] = headerFunctionalSize
	buf[n+1] = descriptor.TypeCSInterface
	buf[n+2] = SubtypeHeader
	binary.LittleEndian.PutUint16(buf[n+3:], CDCVersion)
	n += headerFunctionalSize

	// Call management functional descriptor: no call management,
	// calls handled over the data interface.
	buf[n+0] = callManagementSize
	buf[n+1] = descriptor.TypeCSInterface
	buf[n+2] = SubtypeCallManagement
	buf[n+3] = 0x00
	buf[n+4] = data
	n += callManagementSize

	// ACM functional descriptor: line coding and serial state.
	buf[n+0] = acmFunctionalSize
	buf[n+1] = descriptor.TypeCSInterface
	buf[n+2] = SubtypeACM
	buf[n+3] = ACMCapLineCoding
	n += acmFunctionalSize

	// Union functional descriptor: control interface masters the
	// data interface.
	buf[n+0] = unionFunctionalSize
	buf[n+1] = descriptor.TypeCSInterface
	buf[n+2] = SubtypeUnion
	buf[n+3] = control
	buf[n+4] = data
	n += unionFunctionalSize

	notify := descriptor.Endpoint{
		EndpointAddress: notifyEP | descriptor.EndpointDirectionIn,
		Attributes:      descriptor.EndpointTypeInterrupt,
		MaxPacketSize:   notifyPacketSize,
		Interval:        notifyInterval,
	}
	n += notify.MarshalTo(buf[n:])

	dataItf := descriptor.Interface{
		InterfaceNumber: data,
		NumEndpoints:    2,
		InterfaceClass:  ClassCDCData,
	}
	n += dataItf.MarshalTo(buf[n:])

	out := descriptor.Endpoint{
		EndpointAddress: dataEP,
		Attributes:      descriptor.EndpointTypeBulk,
		MaxPacketSize:   bulkPacketSize,
	}
	n += out.MarshalTo(buf[n:])

	in := descriptor.Endpoint{
		EndpointAddress: dataEP | descriptor.EndpointDirectionIn,
		Attributes:      descriptor.EndpointTypeBulk,
		MaxPacketSize:   bulkPacketSize,
	}
	n += in.MarshalTo(buf[n:])

	pkg.LogDebug(pkg.ComponentClass, "CDC-ACM descriptor added",
		"name", a.name,
		"control", control,
		"data", data)

	return n, nil
}

// Compile-time interface check
var _ descriptor.Contributor = (*ACM)(nil)
