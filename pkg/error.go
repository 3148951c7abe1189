package pkg

import "errors"

// Descriptor construction errors.
//
// All of these are fatal to the attach cycle: a build that fails exposes
// no descriptor at all, and the device does not enumerate.
var (
	// ErrNotEnoughEndpoints indicates the enabled classes demand more
	// endpoint numbers than the hardware provides. Known only after every
	// contributor has serialized, since endpoint demand is not declared
	// up front.
	ErrNotEnoughEndpoints = errors.New("not enough USB endpoints")

	// ErrTooManyStrings indicates a string registration would exceed the
	// string descriptor table capacity.
	ErrTooManyStrings = errors.New("too many USB interface strings")

	// ErrDescriptorTooLarge indicates the configuration descriptor would
	// exceed the 16-bit wTotalLength field.
	ErrDescriptorTooLarge = errors.New("configuration descriptor too large")

	// ErrLengthMismatch indicates a class contributor wrote a different
	// number of bytes than its declared descriptor length.
	ErrLengthMismatch = errors.New("contributor length mismatch")

	// ErrInvalidState indicates an operation was attempted in the wrong
	// lifecycle state.
	ErrInvalidState = errors.New("invalid lifecycle state")

	// ErrMissingUID indicates no hardware unique ID was supplied for
	// serial number derivation.
	ErrMissingUID = errors.New("missing hardware UID")
)

// Descriptor parse errors, used when inspecting serialized descriptors.
var (
	// ErrDescriptorTooShort indicates the descriptor data is too short.
	ErrDescriptorTooShort = errors.New("descriptor too short")

	// ErrDescriptorTypeMismatch indicates the descriptor type does not match expected.
	ErrDescriptorTypeMismatch = errors.New("descriptor type mismatch")

	// ErrBufferTooSmall indicates the provided buffer is too small.
	ErrBufferTooSmall = errors.New("buffer too small")
)
