package midi

import (
	"encoding/binary"
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

func TestStreams_AddDescriptor(t *testing.T) {
	s := New("MIDI")
	alloc := newTestAllocator()

	buf := make([]byte, s.DescriptorLength())
	n, err := s.AddDescriptor(buf, alloc)
	if err != nil {
		t.Fatalf("AddDescriptor: unexpected error: %v", err)
	}
	if n != FunctionLength {
		t.Fatalf("wrote %d bytes, want %d", n, FunctionLength)
	}

	// Slot consumption: two interfaces, one endpoint number, one string.
	if alloc.Interfaces != 2 {
		t.Errorf("interface cursor = %d, want 2", alloc.Interfaces)
	}
	if alloc.Endpoints != 2 {
		t.Errorf("endpoint cursor = %d, want 2", alloc.Endpoints)
	}
	if got := alloc.Strings.Len(); got != 1 {
		t.Errorf("string count = %d, want 1", got)
	}

	var control descriptor.Interface
	if err := descriptor.ParseInterface(buf, &control); err != nil {
		t.Fatalf("AC interface parse error: %v", err)
	}
	if control.InterfaceClass != ClassAudio || control.InterfaceSubClass != SubclassAudioControl {
		t.Errorf("AC class/subclass = %02X/%02X, want %02X/%02X",
			control.InterfaceClass, control.InterfaceSubClass, ClassAudio, SubclassAudioControl)
	}
	if control.NumEndpoints != 0 {
		t.Errorf("AC endpoints = %d, want 0", control.NumEndpoints)
	}

	// The AC header's collection names the streaming interface number.
	if buf[17] != 1 {
		t.Errorf("AC header interface = %d, want 1", buf[17])
	}

	var streaming descriptor.Interface
	if err := descriptor.ParseInterface(buf[18:], &streaming); err != nil {
		t.Fatalf("MS interface parse error: %v", err)
	}
	if streaming.InterfaceNumber != 1 || streaming.NumEndpoints != 2 {
		t.Errorf("MS interface = %d with %d endpoints, want 1 with 2",
			streaming.InterfaceNumber, streaming.NumEndpoints)
	}
	if streaming.InterfaceSubClass != SubclassMIDIStreaming {
		t.Errorf("MS subclass = %02X, want %02X", streaming.InterfaceSubClass, SubclassMIDIStreaming)
	}

	// The MS header's wTotalLength covers everything from itself through
	// the last class-specific endpoint descriptor.
	if got := binary.LittleEndian.Uint16(buf[32:34]); got != msTotalLength {
		t.Errorf("MS wTotalLength = %d, want %d", got, msTotalLength)
	}

	// Jack topology: embedded IN, external IN, embedded OUT sourced from
	// the external IN, external OUT sourced from the embedded IN.
	if buf[36] != SubtypeMIDIInJack || buf[37] != JackTypeEmbedded || buf[38] != embeddedInJackID {
		t.Errorf("first jack = %02X/%02X id %d, want embedded IN id %d",
			buf[36], buf[37], buf[38], embeddedInJackID)
	}
	if buf[42] != SubtypeMIDIInJack || buf[43] != JackTypeExternal || buf[44] != externalInJackID {
		t.Errorf("second jack = %02X/%02X id %d, want external IN id %d",
			buf[42], buf[43], buf[44], externalInJackID)
	}
	if buf[48] != SubtypeMIDIOutJack || buf[49] != JackTypeEmbedded || buf[50] != embeddedOutJackID {
		t.Errorf("third jack = %02X/%02X id %d, want embedded OUT id %d",
			buf[48], buf[49], buf[50], embeddedOutJackID)
	}
	if buf[52] != externalInJackID {
		t.Errorf("embedded OUT source = %d, want %d", buf[52], externalInJackID)
	}
	if buf[57] != SubtypeMIDIOutJack || buf[58] != JackTypeExternal || buf[59] != externalOutJackID {
		t.Errorf("fourth jack = %02X/%02X id %d, want external OUT id %d",
			buf[57], buf[58], buf[59], externalOutJackID)
	}
	if buf[61] != embeddedInJackID {
		t.Errorf("external OUT source = %d, want %d", buf[61], embeddedInJackID)
	}

	// Audio-form bulk endpoints share endpoint number 1.
	if buf[64] != audioEndpointSize || buf[65] != descriptor.TypeEndpoint {
		t.Fatalf("descriptor at 64 = %02X type %02X, want audio endpoint", buf[64], buf[65])
	}
	if got := buf[66]; got != 0x01 {
		t.Errorf("bulk OUT address = 0x%02X, want 0x01", got)
	}
	if got := buf[80]; got != 0x81 {
		t.Errorf("bulk IN address = 0x%02X, want 0x81", got)
	}

	// Class-specific endpoint descriptors associate the embedded jacks.
	if buf[73] != csEndpointSize || buf[74] != descriptor.TypeCSEndpoint {
		t.Fatalf("descriptor at 73 = %02X type %02X, want CS endpoint", buf[73], buf[74])
	}
	if buf[77] != embeddedInJackID {
		t.Errorf("OUT endpoint jack = %d, want %d", buf[77], embeddedInJackID)
	}
	if buf[91] != embeddedOutJackID {
		t.Errorf("IN endpoint jack = %d, want %d", buf[91], embeddedOutJackID)
	}
}

func TestStreams_TotalLengths(t *testing.T) {
	if FunctionLength != 92 {
		t.Errorf("FunctionLength = %d, want 92", FunctionLength)
	}
	if msTotalLength != 65 {
		t.Errorf("msTotalLength = %d, want 65", msTotalLength)
	}
}

func TestStreams_AddDescriptor_ShortBuffer(t *testing.T) {
	s := New("MIDI")
	alloc := newTestAllocator()

	if _, err := s.AddDescriptor(make([]byte, FunctionLength-1), alloc); !errors.Is(err, pkg.ErrBufferTooSmall) {
		t.Errorf("error = %v, want ErrBufferTooSmall", err)
	}
}
