package hid

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/ardnew/usbdesc/descriptor"
	"github.com/ardnew/usbdesc/pkg"
)

var testReport = []byte{
	0x05, 0x01, // Usage Page (Generic Desktop)
	0x09, 0x02, // Usage (Mouse)
	0xA1, 0x01, // Collection (Application)
	0xC0, // End Collection
}

func newTestAllocator() *descriptor.Allocator {
	var table descriptor.StringTable
	table.Reset()
	var alloc descriptor.Allocator
	alloc.Reset(&table)
	return &alloc
}

func TestDevice_AddDescriptor(t *testing.T) {
	d := New("pointer", testReport)
	alloc := newTestAllocator()

	buf := make([]byte, d.DescriptorLength())
	n, err := d.AddDescriptor(buf, alloc)
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

	var itf descriptor.Interface
	if err := descriptor.ParseInterface(buf, &itf); err != nil {
		t.Fatalf("interface parse error: %v", err)
	}
	if itf.InterfaceClass != ClassHID {
		t.Errorf("interface class = %02X, want %02X", itf.InterfaceClass, ClassHID)
	}
	if itf.NumEndpoints != 1 {
		t.Errorf("interface endpoints = %d, want 1", itf.NumEndpoints)
	}

	// HID class descriptor announces one report descriptor of the
	// carried blob's length.
	if buf[9] != classDescriptorSize || buf[10] != descriptor.TypeHID {
		t.Fatalf("descriptor at 9 = %02X type %02X, want HID class descriptor", buf[9], buf[10])
	}
	if buf[14] != 1 || buf[15] != descriptor.TypeHIDReport {
		t.Errorf("subordinate descriptor = count %d type %02X, want 1 report", buf[14], buf[15])
	}
	if got := binary.LittleEndian.Uint16(buf[16:18]); int(got) != len(testReport) {
		t.Errorf("report length = %d, want %d", got, len(testReport))
	}

	var in descriptor.Endpoint
	if err := descriptor.ParseEndpoint(buf[18:], &in); err != nil {
		t.Fatalf("endpoint parse error: %v", err)
	}
	if in.EndpointAddress != 0x81 {
		t.Errorf("endpoint address = 0x%02X, want 0x81", in.EndpointAddress)
	}
	if in.Attributes != descriptor.EndpointTypeInterrupt {
		t.Errorf("endpoint attributes = 0x%02X, want interrupt", in.Attributes)
	}
	if in.Interval != interruptInterval {
		t.Errorf("endpoint interval = %d, want %d", in.Interval, interruptInterval)
	}
}

func TestDevice_ReportDescriptor(t *testing.T) {
	d := New("pointer", testReport)
	if got := d.ReportDescriptor(); !bytes.Equal(got, testReport) {
		t.Errorf("report = % X, want % X", got, testReport)
	}
}

func TestDevice_AddDescriptor_ShortBuffer(t *testing.T) {
	d := New("pointer", testReport)
	alloc := newTestAllocator()

	if _, err := d.AddDescriptor(make([]byte, FunctionLength-1), alloc); !errors.Is(err, pkg.ErrBufferTooSmall) {
		t.Errorf("error = %v, want ErrBufferTooSmall", err)
	}
}
