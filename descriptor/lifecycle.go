package descriptor

import (
	"context"
	"sync"
	"time"

	"github.com/efficientgo/core/errors"

	"github.com/ardnew/usbdesc/pkg"
)

// State is the lifecycle state of the built descriptor buffers.
type State uint8

// Lifecycle states. Transitions are one-way:
// Building -> Pending -> Released.
const (
	// StateBuilding means the buffers are still under construction and
	// not yet visible to descriptor queries from the host.
	StateBuilding State = iota

	// StatePending means the build succeeded and the buffers must be
	// reported as collector roots: nothing else in the live object graph
	// references them, and the host may still re-query them after a bus
	// reset until the device mounts.
	StatePending

	// StateReleased means the first mount event has been observed and
	// the buffer references have been dropped for reclamation.
	StateReleased
)

// String returns a string representation of the lifecycle state.
func (s State) String() string {
	switch s {
	case StateBuilding:
		return "building"
	case StatePending:
		return "pending"
	case StateReleased:
		return "released"
	default:
		return "unknown"
	}
}

// ReportProvider is implemented by contributors that carry an opaque HID
// report descriptor served separately from the configuration descriptor.
type ReportProvider interface {
	ReportDescriptor() []byte
}

// Config describes one composite device attach cycle. The class slots are
// serialized in fixed precedence order: serial console, serial data, mass
// storage, MIDI, HID. The order is not configurable; some host drivers
// require the serial interfaces first. A nil slot disables that class.
type Config struct {
	VendorID  uint16
	ProductID uint16

	Manufacturer string
	Product      string

	// UID is the raw hardware unique ID, read once at init. The serial
	// number string is its uppercase hex encoding.
	UID []byte

	// EndpointBudget is the number of endpoint numbers the hardware
	// provides beyond the control endpoint.
	EndpointBudget uint8

	SerialConsole Contributor
	SerialData    Contributor
	MassStorage   Contributor
	MIDI          Contributor
	HID           Contributor
}

// Lifecycle owns the descriptor buffers built for one attach cycle and
// tracks whether they are still required by the not-yet-mounted device.
// The buffers are never mutated after the build completes; Released drops
// the only references so the collector can reclaim them.
type Lifecycle struct {
	mu        sync.Mutex
	state     State
	device    []byte
	config    []byte
	hidReport []byte
	strings   *StringTable
}

// Build runs a full descriptor build for the given config and returns the
// lifecycle owning the results in StatePending. The build is
// all-or-nothing: on any error no lifecycle is returned and no partial
// descriptor is exposed.
func Build(cfg *Config) (*Lifecycle, error) {
	asm := NewAssembler(cfg.Manufacturer, cfg.Product, cfg.EndpointBudget)
	if err := asm.Init(cfg.UID); err != nil {
		return nil, err
	}

	asm.Add("serial console", cfg.SerialConsole)
	asm.Add("serial data", cfg.SerialData)
	asm.Add("mass storage", cfg.MassStorage)
	asm.Add("MIDI", cfg.MIDI)
	asm.Add("HID", cfg.HID)

	l := &Lifecycle{
		state:   StateBuilding,
		strings: asm.Strings(),
	}

	device, err := asm.BuildDevice(cfg.VendorID, cfg.ProductID)
	if err != nil {
		return nil, errors.Wrap(err, "device descriptor build failed")
	}
	config, err := asm.BuildConfiguration()
	if err != nil {
		return nil, errors.Wrap(err, "configuration descriptor build failed")
	}

	l.mu.Lock()
	l.device = device
	l.config = config
	if rp, ok := cfg.HID.(ReportProvider); ok {
		l.hidReport = rp.ReportDescriptor()
	}
	l.state = StatePending
	l.mu.Unlock()

	pkg.LogInfo(pkg.ComponentLifecycle, "descriptor set built",
		"configBytes", len(config),
		"strings", l.strings.Len())

	return l, nil
}

// State returns the current lifecycle state.
func (l *Lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// IsNeeded reports whether the built buffers must still be treated as
// live. It is true until the first mount event.
func (l *Lifecycle) IsNeeded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state != StateReleased
}

// VisitRoots reports the live descriptor buffers to the collector's root
// scan, once per collection cycle. After release it is a no-op.
func (l *Lifecycle) VisitRoots(visit func(buf []byte)) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == StateReleased {
		return
	}
	if l.device != nil {
		visit(l.device)
	}
	if l.config != nil {
		visit(l.config)
	}
	if l.hidReport != nil {
		visit(l.hidReport)
	}
}

// Mount records the first mount event, dropping the buffer references so
// they become reclaimable. Repeated mount events are no-ops; there is no
// transition back to Pending on re-enumeration.
func (l *Lifecycle) Mount() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != StatePending {
		return
	}
	l.device = nil
	l.config = nil
	l.hidReport = nil
	l.state = StateReleased

	pkg.LogDebug(pkg.ComponentLifecycle, "descriptor buffers released")
}

// WatchMount polls mounted at the given interval and drives the
// Pending -> Released transition on the first true result. It returns nil
// once mounted, or the context error if ctx is done first.
func (l *Lifecycle) WatchMount(ctx context.Context, mounted func() bool, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if mounted() {
				l.Mount()
				return nil
			}
		}
	}
}

// DeviceDescriptor returns the built 18-byte device descriptor, or nil
// after release.
func (l *Lifecycle) DeviceDescriptor() []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.device
}

// ConfigurationDescriptor returns the built configuration descriptor, or
// nil after release.
func (l *Lifecycle) ConfigurationDescriptor() []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.config
}

// HIDReportDescriptor returns the HID report descriptor, or nil when HID
// is disabled or after release.
func (l *Lifecycle) HIDReportDescriptor() []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hidReport
}

// String returns the serialized string descriptor for index, or nil for
// index 0, an unassigned index, or after release.
func (l *Lifecycle) String(index uint8) []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == StateReleased {
		return nil
	}
	return l.strings.Get(index)
}
