// Package diag provides human-readable views of EM API values for the
// test harness: label lookups for each wire enumeration, structured
// printers for decoded objects, and a hex dump for raw buffers. It is a
// read-only layer — nothing here affects the wire format.
package diag

import (
	"fmt"
	"io"

	"emapi/message"
	"emapi/protocol"
)

// Label tables, indexed by wire value. Built once, never mutated.
var (
	categoryNames = []string{
		"Request",
		"Response",
		"Event",
	}
	objectNames = []string{
		"Null",
		"Header",
		"Device List",
	}
	opcodeNames = []string{
		"Event Notification",
		"List Devices",
		"Connect Device",
		"Disconnect Device",
	}
	returnCodeNames = []string{
		"Success",
		"Background operation started",
		"Invalid input",
		"Unsupported",
		"Internal error",
		"Busy",
	}
)

func lookup(table []string, u uint8) (string, bool) {
	if int(u) >= len(table) {
		return "", false
	}
	return table[u], true
}

// CategoryName returns the label for a message category. The second result
// is false when the value has no defined label.
func CategoryName(u uint8) (string, bool) { return lookup(categoryNames, u) }

// ObjectName returns the label for a payload object type.
func ObjectName(u uint8) (string, bool) { return lookup(objectNames, u) }

// OpcodeName returns the label for an opcode.
func OpcodeName(u uint8) (string, bool) { return lookup(opcodeNames, u) }

// ReturnCodeName returns the label for a return code.
func ReturnCodeName(u uint8) (string, bool) { return lookup(returnCodeNames, u) }

// FprintHeader renders every header field on its own line, values in hex.
func FprintHeader(w io.Writer, h *protocol.Header) {
	fmt.Fprintf(w, "Header:\n")
	fmt.Fprintf(w, "  Version:      0x%02x\n", h.Version)
	fmt.Fprintf(w, "  Category:     0x%02x\n", uint8(h.Category))
	fmt.Fprintf(w, "  Tag:          0x%02x\n", h.Tag)
	fmt.Fprintf(w, "  Return Code:  0x%02x\n", uint8(h.RC))
	fmt.Fprintf(w, "  Opcode:       0x%02x\n", uint8(h.Opcode))
	fmt.Fprintf(w, "  Immediate A:  0x%02x\n", h.A)
	fmt.Fprintf(w, "  Len:          0x%04x\n", h.Len)
	fmt.Fprintf(w, "  Immediate B:  0x%08x\n", h.B)
}

// FprintDevice renders a single device listing entry.
func FprintDevice(w io.Writer, d *message.Device) {
	fmt.Fprintf(w, "%02d - %s\n", d.ID, d.Name)
}

// FprintObject renders obj according to its object-type tag. Unknown tags
// and type/tag mismatches print nothing — this is a diagnostic view, not a
// validator.
func FprintObject(w io.Writer, obj any, typ protocol.ObjectType) {
	switch typ {
	case protocol.ObjectHeader:
		if h, ok := obj.(*protocol.Header); ok {
			FprintHeader(w, h)
		}
	case protocol.ObjectDeviceList:
		if devs, ok := obj.([]message.Device); ok {
			for i := range devs {
				FprintDevice(w, &devs[i])
			}
		}
	}
}

// FprintBuf hex-dumps data in rows of width bytes, each row prefixed with
// its starting offset. A width below 1 falls back to 16.
func FprintBuf(w io.Writer, data []byte, width int) {
	if width < 1 {
		width = 16
	}
	for base := 0; base < len(data); base += width {
		fmt.Fprintf(w, "0x%04x:", base)
		end := base + width
		if end > len(data) {
			end = len(data)
		}
		for _, b := range data[base:end] {
			fmt.Fprintf(w, " %02x", b)
		}
		fmt.Fprintln(w)
	}
}
