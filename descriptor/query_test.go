package descriptor

import (
	"bytes"
	"testing"
)

func newTestQuery(t *testing.T) (*Query, *Lifecycle) {
	t.Helper()
	cfg := minimalConfig()
	cfg.HID = &fakeHID{
		fakeContributor: fakeContributor{length: 25, write: -1, interfaces: 1, endpoints: 1, strings: 1},
		report:          []byte{0x05, 0x01, 0xC0},
	}
	l, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build: unexpected error: %v", err)
	}
	return NewQuery(l), l
}

func TestQuery_Descriptor_Device(t *testing.T) {
	q, l := newTestQuery(t)

	got := q.Descriptor(TypeDevice, 0, -1)
	if !bytes.Equal(got, l.DeviceDescriptor()) {
		t.Errorf("device response = % X, want % X", got, l.DeviceDescriptor())
	}
}

func TestQuery_Descriptor_Configuration(t *testing.T) {
	q, l := newTestQuery(t)

	got := q.Descriptor(TypeConfiguration, 0, -1)
	if !bytes.Equal(got, l.ConfigurationDescriptor()) {
		t.Errorf("configuration response = % X, want % X", got, l.ConfigurationDescriptor())
	}

	// Only configuration 0 exists.
	if got := q.Descriptor(TypeConfiguration, 1, -1); got != nil {
		t.Errorf("configuration index 1 = % X, want nil (stall)", got)
	}
}

func TestQuery_Descriptor_String(t *testing.T) {
	q, l := newTestQuery(t)

	for index := uint8(1); index <= 4; index++ {
		got := q.Descriptor(TypeString, index, -1)
		if !bytes.Equal(got, l.String(index)) {
			t.Errorf("string %d response = % X, want % X", index, got, l.String(index))
		}
	}

	for _, index := range []uint8{0, 5, MaxStrings + 1, 0xFF} {
		if got := q.Descriptor(TypeString, index, -1); got != nil {
			t.Errorf("string %d = % X, want nil (stall)", index, got)
		}
	}
}

func TestQuery_Descriptor_HIDReport(t *testing.T) {
	q, _ := newTestQuery(t)

	want := []byte{0x05, 0x01, 0xC0}
	if got := q.Descriptor(TypeHIDReport, 0, -1); !bytes.Equal(got, want) {
		t.Errorf("hid report response = % X, want % X", got, want)
	}
}

func TestQuery_Descriptor_HIDReport_Disabled(t *testing.T) {
	l, err := Build(minimalConfig())
	if err != nil {
		t.Fatalf("Build: unexpected error: %v", err)
	}
	q := NewQuery(l)

	if got := q.Descriptor(TypeHIDReport, 0, -1); got != nil {
		t.Errorf("hid report response = % X, want nil (stall)", got)
	}
}

func TestQuery_Descriptor_Truncation(t *testing.T) {
	q, _ := newTestQuery(t)

	// wLength shorter than the descriptor truncates without error.
	got := q.Descriptor(TypeDevice, 0, 8)
	if len(got) != 8 {
		t.Errorf("truncated length = %d, want 8", len(got))
	}

	// wLength longer than the descriptor returns the full blob.
	got = q.Descriptor(TypeDevice, 0, 0xFF)
	if len(got) != DeviceSize {
		t.Errorf("full length = %d, want %d", len(got), DeviceSize)
	}

	// A zero-length request is satisfied with zero bytes, not a stall.
	got = q.Descriptor(TypeDevice, 0, 0)
	if got == nil || len(got) != 0 {
		t.Errorf("zero-length response = %v, want empty non-nil", got)
	}
}

func TestQuery_Descriptor_UnknownType(t *testing.T) {
	q, _ := newTestQuery(t)

	for _, descType := range []uint8{0x00, TypeInterface, TypeEndpoint, 0x06, 0xFF} {
		if got := q.Descriptor(descType, 0, -1); got != nil {
			t.Errorf("type 0x%02X = % X, want nil (stall)", descType, got)
		}
	}
}

func TestQuery_Descriptor_AfterRelease(t *testing.T) {
	q, l := newTestQuery(t)
	l.Mount()

	for _, descType := range []uint8{TypeDevice, TypeConfiguration, TypeString, TypeHIDReport} {
		index := uint8(0)
		if descType == TypeString {
			index = 1
		}
		if got := q.Descriptor(descType, index, -1); got != nil {
			t.Errorf("type 0x%02X after release = % X, want nil (stall)", descType, got)
		}
	}
}
