package descriptor

// Allocator carries the shared interface, endpoint, and string cursors
// threaded through each class contributor during configuration descriptor
// assembly. Contributors advance the cursors by however many interfaces,
// endpoints, and strings they consume; the assembler never recomputes
// them. It is always passed by pointer so every contributor sees the
// numbering left behind by its predecessors.
type Allocator struct {
	// Interfaces is the next unassigned interface number.
	// Numbering starts at 0 and must stay contiguous.
	Interfaces uint8

	// Endpoints is the next unassigned endpoint number.
	// Numbering starts at 1; endpoint 0 is reserved for control.
	// An IN/OUT pair sharing one number consumes a single slot.
	Endpoints uint8

	// Strings registers interface name strings as they are encountered.
	Strings *StringTable
}

// Reset restarts interface numbering at 0 and endpoint numbering at 1,
// and attaches the given string table.
func (a *Allocator) Reset(strings *StringTable) {
	a.Interfaces = 0
	a.Endpoints = 1
	a.Strings = strings
}

// NextInterface returns the next interface number and advances the cursor.
func (a *Allocator) NextInterface() uint8 {
	n := a.Interfaces
	a.Interfaces++
	return n
}

// NextEndpoint returns the next endpoint number and advances the cursor.
// The caller forms endpoint addresses from the returned number, e.g.
// n|EndpointDirectionIn for the IN direction. Budget enforcement happens
// after all contributors have run.
func (a *Allocator) NextEndpoint() uint8 {
	n := a.Endpoints
	a.Endpoints++
	return n
}

// Contributor is the contract between the assembler and each optionally
// enabled USB class. Implementations serialize their sub-descriptor into
// the shared configuration buffer, consuming interface/endpoint/string
// slots from the allocator as they go.
type Contributor interface {
	// DescriptorLength reports the exact number of bytes AddDescriptor
	// will write. It is queried before the configuration buffer is
	// allocated.
	DescriptorLength() int

	// AddDescriptor serializes the class sub-descriptor into buf,
	// which is sized to exactly DescriptorLength() bytes, registering
	// any interface name strings through alloc.Strings. Returns the
	// number of bytes written, which must equal DescriptorLength().
	AddDescriptor(buf []byte, alloc *Allocator) (int, error)
}
