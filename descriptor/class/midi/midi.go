// Package midi contributes a USB-MIDI 1.0 function descriptor to a
// composite device configuration: an AudioControl interface, a
// MIDIStreaming interface with one embedded/external jack pair per
// direction, and a bulk endpoint pair with class-specific endpoint
// descriptors.
package midi

import (
	"encoding/binary"

	"github.com/ardnew/usbdesc/descriptor"
	"github.com/ardnew/usbdesc/pkg"
)

// Audio class codes.
const (
	ClassAudio            = 0x01 // Audio class
	SubclassAudioControl  = 0x01 // AudioControl interface
	SubclassMIDIStreaming = 0x03 // MIDIStreaming interface
)

// Class-specific interface descriptor subtypes.
const (
	SubtypeHeader      = 0x01 // Class-specific header (AC and MS)
	SubtypeMIDIInJack  = 0x02 // MIDI IN jack
	SubtypeMIDIOutJack = 0x03 // MIDI OUT jack
)

// Jack types.
const (
	JackTypeEmbedded = 0x01 // Embedded (USB-facing) jack
	JackTypeExternal = 0x02 // External (connector-facing) jack
)

// SubtypeMSGeneral is the class-specific endpoint descriptor subtype.
const SubtypeMSGeneral = 0x01

// Specification releases (BCD).
const (
	adcVersion = 0x0100 // Audio Device Class 1.0
	msVersion  = 0x0100 // MIDIStreaming 1.0
)

// Descriptor sizes in bytes. Audio-class standard endpoint descriptors
// carry two extra bytes (bRefresh, bSynchAddress) over the usual seven.
const (
	acHeaderSize      = 9
	msHeaderSize      = 7
	inJackSize        = 6
	outJackSize       = 9
	audioEndpointSize = 9
	csEndpointSize    = 5
)

// Jack IDs for the single-cable topology, scoped to the MS interface.
const (
	embeddedInJackID  = 1
	externalInJackID  = 2
	embeddedOutJackID = 3
	externalOutJackID = 4
)

const bulkPacketSize = 64

// FunctionLength is the byte count of the complete MIDI function
// sub-descriptor.
const FunctionLength = 2*descriptor.InterfaceSize +
	acHeaderSize +
	msHeaderSize +
	2*inJackSize +
	2*outJackSize +
	2*(audioEndpointSize+csEndpointSize)

// msTotalLength is the wTotalLength declared in the class-specific MS
// header: everything from that header through the final class-specific
// endpoint descriptor.
const msTotalLength = msHeaderSize +
	2*inJackSize +
	2*outJackSize +
	2*(audioEndpointSize+csEndpointSize)

// Streams contributes one USB-MIDI function with a single virtual cable
// in each direction, consuming two interfaces (AudioControl and
// MIDIStreaming), one endpoint number, and one name string.
type Streams struct {
	name string
}

// New creates a MIDI contributor labeled with the given name.
func New(name string) *Streams {
	return &Streams{name: name}
}

// DescriptorLength reports the sub-descriptor byte count.
func (s *Streams) DescriptorLength() int {
	return FunctionLength
}

// AddDescriptor serializes the MIDI function sub-descriptor into buf.
func (s *Streams) AddDescriptor(buf []byte, alloc *descriptor.Allocator) (int, error) {
	if len(buf) < FunctionLength {
		return 0, pkg.ErrBufferTooSmall
	}

	nameIndex, err := alloc.Strings.Add(s.name)
	if err != nil {
		return 0, err
	}

	control := alloc.NextInterface()
	streaming := alloc.NextInterface()
	bulkEP := alloc.NextEndpoint()

	n := 0

	controlItf := descriptor.Interface{
		InterfaceNumber:   control,
		InterfaceClass:    ClassAudio,
		InterfaceSubClass: SubclassAudioControl,
		InterfaceIndex:    nameIndex,
	}
	n += controlItf.MarshalTo(buf[n:])

	// Class-specific AC header: one streaming interface in the collection.
	buf[n+0] = acHeaderSize
	buf[n+1] = descriptor.TypeCSInterface
	buf[n+2] = SubtypeHeader
	binary.LittleEndian.PutUint16(buf[n+3:], adcVersion)
	binary.LittleEndian.PutUint16(buf[n+5:], acHeaderSize)
	buf[n+7] = 1
	buf[n+8] = streaming
	n += acHeaderSize

	streamingItf := descriptor.Interface{
		InterfaceNumber:   streaming,
		NumEndpoints:      2,
		InterfaceClass:    ClassAudio,
		InterfaceSubClass: SubclassMIDIStreaming,
		InterfaceIndex:    nameIndex,
	}
	n += streamingItf.MarshalTo(buf[n:])

	// Class-specific MS header covering the jacks and endpoints below.
	buf[n+0] = msHeaderSize
	buf[n+1] = descriptor.TypeCSInterface
	buf[n+2] = SubtypeHeader
	binary.LittleEndian.PutUint16(buf[n+3:], msVersion)
	binary.LittleEndian.PutUint16(buf[n+5:], msTotalLength)
	n += msHeaderSize

	// MIDI IN jacks: embedded (USB side) fed by external (connector side).
	buf[n+0] = inJackSize
	buf[n+1] = descriptor.TypeCSInterface
	buf[n+2] = SubtypeMIDIInJack
	buf[n+3] = JackTypeEmbedded
	buf[n+4] = embeddedInJackID
	buf[n+5] = 0
	n += inJackSize

	buf[n+0] = inJackSize
	buf[n+1] = descriptor.TypeCSInterface
	buf[n+2] = SubtypeMIDIInJack
	buf[n+3] = JackTypeExternal
	buf[n+4] = externalInJackID
	buf[n+5] = 0
	n += inJackSize

	// MIDI OUT jacks, each with one input pin.
	buf[n+0] = outJackSize
	buf[n+1] = descriptor.TypeCSInterface
	buf[n+2] = SubtypeMIDIOutJack
	buf[n+3] = JackTypeEmbedded
	buf[n+4] = embeddedOutJackID
	buf[n+5] = 1
	buf[n+6] = externalInJackID
	buf[n+7] = 1
	buf[n+8] = 0
	n += outJackSize

	buf[n+0] = outJackSize
	buf[n+1] = descriptor.TypeCSInterface
	buf[n+2] = SubtypeMIDIOutJack
	buf[n+3] = JackTypeExternal
	buf[n+4] = externalOutJackID
	buf[n+5] = 1
	buf[n+6] = embeddedInJackID
	buf[n+7] = 1
	buf[n+8] = 0
	n += outJackSize

	// Bulk OUT endpoint, audio-class form, then its class-specific
	// descriptor associating the embedded IN jack.
	n += s.audioEndpointTo(buf[n:], bulkEP)
	buf[n+0] = csEndpointSize
	buf[n+1] = descriptor.TypeCSEndpoint
	buf[n+2] = SubtypeMSGeneral
	buf[n+3] = 1
	buf[n+4] = embeddedInJackID
	n += csEndpointSize

	// Bulk IN endpoint and its class-specific descriptor associating
	// the embedded OUT jack.
	n += s.audioEndpointTo(buf[n:], bulkEP|descriptor.EndpointDirectionIn)
	buf[n+0] = csEndpointSize
	buf[n+1] = descriptor.TypeCSEndpoint
	buf[n+2] = SubtypeMSGeneral
	buf[n+3] = 1
	buf[n+4] = embeddedOutJackID
	n += csEndpointSize

	pkg.LogDebug(pkg.ComponentClass, "MIDI descriptor added",
		"control", control,
		"streaming", streaming,
		"endpoint", bulkEP)

	return n, nil
}

// audioEndpointTo writes a 9-byte audio-class standard bulk endpoint
// descriptor (bRefresh and bSynchAddress zero) and returns its size.
func (s *Streams) audioEndpointTo(buf []byte, address uint8) int {
	buf[0] = audioEndpointSize
	buf[1] = descriptor.TypeEndpoint
	buf[2] = address
	buf[3] = descriptor.EndpointTypeBulk
	binary.LittleEndian.PutUint16(buf[4:6], bulkPacketSize)
	buf[6] = 0
	buf[7] = 0
	buf[8] = 0
	return audioEndpointSize
}

// Compile-time interface check
var _ descriptor.Contributor = (*Streams)(nil)
