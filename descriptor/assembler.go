package descriptor

import (
	"math"

	"github.com/efficientgo/core/errors"

	"github.com/ardnew/usbdesc/pkg"
)

// Device descriptor template defaults. Class is declared per interface so
// the host binds a driver to each function of the composite device.
const (
	defaultUSBVersion     = 0x0200 // USB 2.0
	defaultDeviceVersion  = 0x0100
	defaultMaxPacketSize0 = 64
	defaultMaxPower       = 50 // 100 mA, in 2 mA units
)

const hexDigits = "0123456789ABCDEF"

// namedContributor pairs a contributor with a label for error reporting.
type namedContributor struct {
	name string
	Contributor
}

// Assembler builds the device and configuration descriptors for one
// attach cycle. Contributors are serialized in the order they were added;
// callers add them in the fixed class precedence order (serial console,
// serial data, mass storage, MIDI, HID), which some host drivers depend
// on.
//
// An Assembler is single-use: Init, BuildDevice, then BuildConfiguration,
// all before the protocol engine starts servicing host requests.
type Assembler struct {
	manufacturer   string
	product        string
	serial         string
	endpointBudget uint8

	strings      StringTable
	alloc        Allocator
	contributors []namedContributor
}

// NewAssembler creates an assembler for a device with the given identity
// strings and hardware endpoint budget (number of endpoint numbers
// available beyond the control endpoint).
func NewAssembler(manufacturer, product string, endpointBudget uint8) *Assembler {
	return &Assembler{
		manufacturer:   manufacturer,
		product:        product,
		endpointBudget: endpointBudget,
	}
}

// Init derives the serial number string from the raw hardware UID and
// resets the string table and interface/endpoint cursors. The serial is
// the uppercase hex encoding of the UID, high nibble first, so its length
// is exactly twice the UID byte count.
func (a *Assembler) Init(uid []byte) error {
	if len(uid) == 0 {
		return pkg.ErrMissingUID
	}

	serial := make([]byte, 2*len(uid))
	for i, b := range uid {
		serial[2*i] = hexDigits[b>>4]
		serial[2*i+1] = hexDigits[b&0x0F]
	}
	a.serial = string(serial)

	a.strings.Reset()
	a.alloc.Reset(&a.strings)

	pkg.LogDebug(pkg.ComponentAssembler, "assembler initialized",
		"serial", a.serial)

	return nil
}

// Add appends a class contributor under the given label. Nil contributors
// are ignored so disabled classes can be passed through unconditionally.
func (a *Assembler) Add(name string, c Contributor) {
	if c == nil {
		return
	}
	a.contributors = append(a.contributors, namedContributor{name: name, Contributor: c})
}

// SerialNumber returns the serial string derived by Init.
func (a *Assembler) SerialNumber() string {
	return a.serial
}

// Strings returns the string descriptor table populated during the build.
func (a *Assembler) Strings() *StringTable {
	return &a.strings
}

// BuildDevice serializes the 18-byte device descriptor with the given
// vendor and product IDs, registering the manufacturer, product, and
// serial number strings in that order.
func (a *Assembler) BuildDevice(vid, pid uint16) ([]byte, error) {
	desc := Device{
		USBVersion:        defaultUSBVersion,
		DeviceClass:       ClassPerInterface,
		MaxPacketSize0:    defaultMaxPacketSize0,
		VendorID:          vid,
		ProductID:         pid,
		DeviceVersion:     defaultDeviceVersion,
		NumConfigurations: 1,
	}

	var err error
	if desc.ManufacturerIndex, err = a.strings.Add(a.manufacturer); err != nil {
		return nil, errors.Wrap(err, "failed to register manufacturer string")
	}
	if desc.ProductIndex, err = a.strings.Add(a.product); err != nil {
		return nil, errors.Wrap(err, "failed to register product string")
	}
	if desc.SerialNumberIndex, err = a.strings.Add(a.serial); err != nil {
		return nil, errors.Wrap(err, "failed to register serial number string")
	}

	buf := make([]byte, DeviceSize)
	desc.MarshalTo(buf)

	pkg.LogDebug(pkg.ComponentAssembler, "device descriptor built",
		"vid", vid,
		"pid", pid)

	return buf, nil
}

// BuildConfiguration serializes the composite configuration descriptor:
// the 9-byte header followed by each contributor's sub-descriptor in the
// order added. The buffer is sized from the declared contributor lengths
// before any serialization happens; a contributor that writes a different
// byte count than it declared aborts the build. The endpoint budget is
// checked only after all contributors have run, since the true endpoint
// demand is not known in advance.
func (a *Assembler) BuildConfiguration() ([]byte, error) {
	total := ConfigurationSize
	for _, c := range a.contributors {
		total += c.DescriptorLength()
	}
	if total > math.MaxUint16 {
		return nil, errors.Wrapf(pkg.ErrDescriptorTooLarge, "%d bytes", total)
	}

	buf := make([]byte, total)
	off := ConfigurationSize
	for _, c := range a.contributors {
		want := c.DescriptorLength()
		n, err := c.AddDescriptor(buf[off:off+want], &a.alloc)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to serialize %s descriptor", c.name)
		}
		if n != want {
			return nil, errors.Wrapf(pkg.ErrLengthMismatch,
				"%s wrote %d bytes, declared %d", c.name, n, want)
		}
		off += n
	}

	header := Configuration{
		TotalLength:        uint16(total),
		NumInterfaces:      a.alloc.Interfaces,
		ConfigurationValue: 1,
		Attributes:         ConfigAttrBusPowered,
		MaxPower:           defaultMaxPower,
	}
	header.MarshalTo(buf[:ConfigurationSize])

	// Endpoint 0 is reserved for control, so demand is the cursor less one.
	used := a.alloc.Endpoints - 1
	if used > a.endpointBudget {
		return nil, errors.Wrapf(pkg.ErrNotEnoughEndpoints,
			"need %d, budget %d", used, a.endpointBudget)
	}

	pkg.LogInfo(pkg.ComponentAssembler, "configuration descriptor built",
		"total", total,
		"interfaces", a.alloc.Interfaces,
		"endpoints", used)

	return buf, nil
}
