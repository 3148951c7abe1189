// Package descriptor assembles the binary USB descriptors for a composite
// device at initialization time.
//
// A composite device exposes several independent functions (serial
// console, serial data channel, mass storage, MIDI, HID) under a single
// configuration. Each enabled class contributes a variable number of
// interfaces, endpoints, and name strings; this package composes the
// sub-descriptors into one byte-exact configuration blob and manages the
// lifetime of the built buffers.
//
// # Architecture
//
//   - Structured wire types ([Device], [Configuration], [Interface],
//     [Endpoint], [InterfaceAssociation]) serialize via MarshalTo
//   - [StringTable] collects UTF-16-style string descriptors, 16 slots
//   - [Contributor] is the contract each class package implements
//   - [Assembler] orchestrates the build in fixed class precedence order
//   - [Lifecycle] owns the results and reports them as collector roots
//     until the device mounts
//   - [Query] serves GET_DESCRIPTOR requests from the built set
//
// # Build sequence
//
// The build runs synchronously, once per attach cycle, strictly before
// the protocol engine services host requests:
//
//	l, err := descriptor.Build(&descriptor.Config{
//	    VendorID:       0x239A,
//	    ProductID:      0x80F4,
//	    Manufacturer:   "Example Corp",
//	    Product:        "Example Board",
//	    UID:            uid,
//	    EndpointBudget: 8,
//	    SerialConsole:  cdc.NewACM("Example console"),
//	    MassStorage:    msc.New("Example storage"),
//	})
//
// The build is all-or-nothing: if the enabled classes exceed the endpoint
// budget or the string table capacity, no descriptor is exposed and the
// device does not enumerate on that attach cycle.
//
// # Buffer lifetime
//
// After a successful build the buffers are referenced only by the
// [Lifecycle]. The collector's root scan calls [Lifecycle.VisitRoots]
// once per cycle to keep them live while the host may still query them.
// The first mount event drops the references; subsequent mount events
// are no-ops and the buffers are never rebuilt.
package descriptor
