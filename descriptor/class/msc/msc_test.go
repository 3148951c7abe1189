package msc

import (
	"errors"
	"testing"

	"github.com/ardnew/usbdesc/descriptor"
	"github.com/ardnew/usbdesc/pkg"
)

func newTestAllocator() *descriptor.Allocator {
	var table descriptor.StringTable
	table.Reset()
	var alloc descriptor.Allocator
	alloc.Reset(&table)
	return &alloc
}

func TestMassStorage_AddDescriptor(t *testing.T) {
	m := New("storage")
	alloc := newTestAllocator()

	buf := make([]byte, m.DescriptorLength())
	n, err := m.AddDescriptor(buf, alloc)
	if err != nil {
		t.Fatalf("AddDescriptor: unexpected error: %v", err)
	}
	if n != FunctionLength {
		t.Fatalf("wrote %d bytes, want %d", n, FunctionLength)
	}

	// Slot consumption: one interface, one endpoint number, one string.
	if alloc.Interfaces != 1 {
		t.Errorf("interface cursor = %d, want 1", alloc.Interfaces)
	}
	if alloc.Endpoints != 2 {
		t.Errorf("endpoint cursor = %d, want 2", alloc.Endpoints)
	}
	if got := alloc.Strings.Len(); got != 1 {
		t.Errorf("string count = %d, want 1", got)
	}

	var itf descriptor.Interface
	if err := descriptor.ParseInterface(buf, &itf); err != nil {
		t.Fatalf("interface parse error: %v", err)
	}
	if itf.InterfaceNumber != 0 || itf.NumEndpoints != 2 {
		t.Errorf("interface = %d with %d endpoints, want 0 with 2",
			itf.InterfaceNumber, itf.NumEndpoints)
	}
	if itf.InterfaceClass != ClassMSC || itf.InterfaceSubClass != SubclassSCSI || itf.InterfaceProtocol != ProtocolBulkOnly {
		t.Errorf("class triple = %02X/%02X/%02X, want %02X/%02X/%02X",
			itf.InterfaceClass, itf.InterfaceSubClass, itf.InterfaceProtocol,
			ClassMSC, SubclassSCSI, ProtocolBulkOnly)
	}

	// Bulk pair shares endpoint number 1.
	var out, in descriptor.Endpoint
	if err := descriptor.ParseEndpoint(buf[descriptor.InterfaceSize:], &out); err != nil {
		t.Fatalf("OUT endpoint parse error: %v", err)
	}
	if err := descriptor.ParseEndpoint(buf[descriptor.InterfaceSize+descriptor.EndpointSize:], &in); err != nil {
		t.Fatalf("IN endpoint parse error: %v", err)
	}
	if out.EndpointAddress != 0x01 {
		t.Errorf("bulk OUT address = 0x%02X, want 0x01", out.EndpointAddress)
	}
	if in.EndpointAddress != 0x81 {
		t.Errorf("bulk IN address = 0x%02X, want 0x81", in.EndpointAddress)
	}
	if out.Attributes != descriptor.EndpointTypeBulk || in.Attributes != descriptor.EndpointTypeBulk {
		t.Errorf("endpoint attributes = 0x%02X/0x%02X, want bulk", out.Attributes, in.Attributes)
	}
	if out.MaxPacketSize != bulkPacketSize || in.MaxPacketSize != bulkPacketSize {
		t.Errorf("packet sizes = %d/%d, want %d", out.MaxPacketSize, in.MaxPacketSize, bulkPacketSize)
	}
}

func TestMassStorage_AddDescriptor_ShortBuffer(t *testing.T) {
	m := New("storage")
	alloc := newTestAllocator()

	if _, err := m.AddDescriptor(make([]byte, FunctionLength-1), alloc); !errors.Is(err, pkg.ErrBufferTooSmall) {
		t.Errorf("error = %v, want ErrBufferTooSmall", err)
	}
}
