package descriptor

import "github.com/ardnew/usbdesc/pkg"

// Query answers GET_DESCRIPTOR requests from the protocol engine using
// the descriptor set owned by a lifecycle. It is the read-only callback
// surface the engine consumes; it never mutates the built buffers.
type Query struct {
	lifecycle *Lifecycle
}

// NewQuery creates a query handler over the given lifecycle.
func NewQuery(l *Lifecycle) *Query {
	return &Query{lifecycle: l}
}

// Descriptor returns the response for a GET_DESCRIPTOR request with the
// given descriptor type and index, truncated to maxLen (the request's
// wLength). A nil return means the request should be stalled: unknown
// type, unassigned string index, or buffers already released.
func (q *Query) Descriptor(descType, index uint8, maxLen int) []byte {
	var data []byte

	switch descType {
	case TypeDevice:
		data = q.lifecycle.DeviceDescriptor()

	case TypeConfiguration:
		// Single-configuration device; the index selects among
		// configurations and only 0 exists.
		if index != 0 {
			return nil
		}
		data = q.lifecycle.ConfigurationDescriptor()

	case TypeString:
		data = q.lifecycle.String(index)

	case TypeHIDReport:
		data = q.lifecycle.HIDReportDescriptor()

	default:
		pkg.LogDebug(pkg.ComponentQuery, "unsupported descriptor type",
			"type", descType)
		return nil
	}

	if data == nil {
		return nil
	}
	if maxLen >= 0 && len(data) > maxLen {
		data = data[:maxLen]
	}
	return data
}
