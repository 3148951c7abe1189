package msc

// USB Mass Storage Class codes.
const (
	ClassMSC = 0x08 // Mass Storage Class
)

// MSC Subclass codes.
const (
	SubclassRBC  = 0x01 // Reduced Block Commands
	SubclassMMC5 = 0x02 // Multi-Media Commands (CD/DVD)
	SubclassUFI  = 0x04 // USB Floppy Interface
	SubclassSCSI = 0x06 // SCSI Transparent Command Set
)

// MSC Protocol codes.
const (
	ProtocolCBI      = 0x00 // Control/Bulk/Interrupt
	ProtocolBulkOnly = 0x50 // Bulk-Only Transport (BOT)
	ProtocolUAS      = 0x62 // USB Attached SCSI
)

// bulkPacketSize is the full-speed bulk endpoint packet size.
const bulkPacketSize = 64
