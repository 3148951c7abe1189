package cdc

// CDC Class codes.
const (
	ClassCDC     = 0x02 // Communications Device Class
	ClassCDCData = 0x0A // CDC Data Class
)

// CDC Subclass codes.
const (
	SubclassNone = 0x00 // No subclass
	SubclassDLCM = 0x01 // Direct Line Control Model
	SubclassACM  = 0x02 // Abstract Control Model
	SubclassECM  = 0x06 // Ethernet Networking Control Model
)

// CDC Protocol codes.
const (
	ProtocolNone   = 0x00 // No protocol
	ProtocolAT     = 0x01 // AT Commands: V.250
	ProtocolVendor = 0xFF // Vendor-specific
)

// CDC Functional Descriptor subtypes.
const (
	SubtypeHeader         = 0x00 // Header Functional Descriptor
	SubtypeCallManagement = 0x01 // Call Management Functional Descriptor
	SubtypeACM            = 0x02 // Abstract Control Model Functional Descriptor
	SubtypeUnion          = 0x06 // Union Functional Descriptor
)

// CDCVersion is the CDC specification release (BCD) declared in the
// header functional descriptor.
const CDCVersion = 0x0120

// ACM functional descriptor capability bits (bmCapabilities).
const (
	ACMCapCommFeature = 0x01 // Comm_Feature requests
	ACMCapLineCoding  = 0x02 // Line coding and serial state
	ACMCapSendBreak   = 0x04 // Send_Break request
)

// Functional descriptor sizes in bytes.
const (
	headerFunctionalSize = 5
	callManagementSize   = 5
	acmFunctionalSize    = 4
	unionFunctionalSize  = 5
)

// Endpoint parameters for a full-speed ACM function.
const (
	notifyPacketSize = 8  // Interrupt IN notification endpoint
	notifyInterval   = 16 // Notification polling interval (ms)
	bulkPacketSize   = 64 // Bulk data endpoints
)
