// Package message defines the EM API message envelope and the convenience
// constructors that populate a header for each defined operation.
//
// A Message pairs the fixed header with the decoded payload object. Only
// one payload shape exists today (the device listing), so the envelope
// carries it directly; a payload-less message simply leaves Devices nil.
package message

import (
	"fmt"

	"emapi/protocol"
)

// Device is one entry of a device listing. On the wire it is a
// variable-length record: id, name length, then the raw name bytes. Name
// holds exactly the wire bytes — the protocol does not require a NUL
// terminator, and the codec never adds or strips one.
type Device struct {
	ID   uint8
	Name string
}

// Message is a decoded EM API message: the header plus the payload object,
// if the opcode carries one.
type Message struct {
	Hdr     protocol.Header
	Devices []Device // Device listing payload; nil when the message has none
}

// FillHeader populates every header field in one call and returns the total
// wire length of the message (header plus payload). Version is forced to 0,
// the only defined header version.
func FillHeader(h *protocol.Header, cat protocol.Category, tag uint8, rc protocol.ReturnCode, opcode protocol.Opcode, payloadLen uint16, a uint8, b uint32) (int, error) {
	if h == nil {
		return 0, fmt.Errorf("%w: nil header", protocol.ErrInvalidInput)
	}
	h.Version = 0
	h.Category = cat
	h.Tag = tag
	h.RC = rc
	h.Opcode = opcode
	h.Len = payloadLen
	h.A = a
	h.B = b
	return protocol.HeaderSize + int(payloadLen), nil
}

// FillConnect prepares a connect-device request: immediate A carries the
// process id, immediate B the device id. The request has no payload.
func FillConnect(m *Message, ppid uint8, dev uint32) error {
	if m == nil {
		return fmt.Errorf("%w: nil message", protocol.ErrInvalidInput)
	}
	m.Hdr = protocol.Header{
		Opcode: protocol.OpConnectDevice,
		A:      ppid,
		B:      dev,
	}
	return nil
}

// FillDisconnect prepares a disconnect-device request: immediate A carries
// the process id; immediate B is 1 to disconnect every device owned by that
// process, 0 to disconnect only its current device.
func FillDisconnect(m *Message, ppid uint8, all bool) error {
	if m == nil {
		return fmt.Errorf("%w: nil message", protocol.ErrInvalidInput)
	}
	m.Hdr = protocol.Header{
		Opcode: protocol.OpDisconnectDevice,
		A:      ppid,
	}
	if all {
		m.Hdr.B = 1
	}
	return nil
}

// FillListDevices prepares a list-devices request: immediate A is the
// number of entries requested — 0 is the defined wire spelling of "all
// devices", not an empty request — and immediate B is the index to start
// listing from.
func FillListDevices(m *Message, num uint8, start uint32) error {
	if m == nil {
		return fmt.Errorf("%w: nil message", protocol.ErrInvalidInput)
	}
	m.Hdr = protocol.Header{
		Opcode: protocol.OpListDevices,
		A:      num,
		B:      start,
	}
	return nil
}
