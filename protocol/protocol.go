// Package protocol implements the EM API wire format used to manage
// emulated devices: the fixed 12-byte message header, the enumerations
// carried in it, and the size limits of the protocol.
//
// Header layout (all multi-byte integers little-endian):
//
//	0        1    2   3      4    5     6     8          12
//	┌────────┬────┬───┬──────┬───┬─────┬─────┬──────────┬─────────────┐
//	│ver│cat │tag │rc │opcode│ a │rsvd │ len │    b     │ payload ... │
//	│4b │ 4b │    │   │      │   │ =0  │ u16 │   u32    │ len bytes   │
//	└────────┴────┴───┴──────┴───┴─────┴─────┴──────────┴─────────────┘
//
// The version sits in the high nibble of byte 0 and the category in the
// low nibble. The two immediates A and B carry opcode-specific scalar
// arguments so that simple operations need no payload at all.
//
// The package is a pure codec: it transforms buffers the caller owns and
// keeps no state, so concurrent use needs no locking.
package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Size limits of the protocol.
const (
	HeaderSize     int = 12   // Fixed header length in bytes
	MaxMessageSize int = 8192 // Maximum length of a full message (header + payload)
	MaxPayloadSize int = MaxMessageSize - HeaderSize
	MaxNameLen     int = 125 // Maximum length of a device name in bytes
	MaxDevices     int = 64  // Maximum device entries in a listing response
)

// Error kinds reported by the codec layers. Callers match them with
// errors.Is; higher layers wrap them with context via fmt.Errorf and %w.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrTruncated    = errors.New("truncated buffer")
	ErrOverflow     = errors.New("field overflow")
)

// Category distinguishes request, response, and event messages.
type Category uint8

const (
	CategoryRequest  Category = 0
	CategoryResponse Category = 1
	CategoryEvent    Category = 2
)

// Opcode identifies the operation a message performs.
type Opcode uint8

const (
	OpEvent            Opcode = 0x00 // Unsolicited event notification
	OpListDevices      Opcode = 0x01 // A: num requested (0 = all), B: start index
	OpConnectDevice    Opcode = 0x02 // A: process id, B: device id
	OpDisconnectDevice Opcode = 0x03 // A: process id, B: 1 = disconnect all
)

// ReturnCode is the outcome code carried in a response header.
type ReturnCode uint8

const (
	RCSuccess             ReturnCode = 0x0
	RCBackgroundOpStarted ReturnCode = 0x1
	RCInvalidInput        ReturnCode = 0x2
	RCUnsupported         ReturnCode = 0x3
	RCInternalError       ReturnCode = 0x4
	RCBusy                ReturnCode = 0x5
)

// ObjectType tags the payload shape of a message. The wire format carries
// no self-describing type marker, so the codec must be told which shape to
// expect; the registry package derives the tag from an opcode.
type ObjectType uint8

const (
	ObjectNull       ObjectType = 0 // No payload
	ObjectHeader     ObjectType = 1 // The 12-byte header itself
	ObjectDeviceList ObjectType = 2 // Packed device entries
)

// Header is the fixed 12-byte prefix of every EM API message.
type Header struct {
	Version  uint8      // Header format version, currently always 0 (4 bits on the wire)
	Category Category   // Request, Response, or Event (4 bits on the wire)
	Tag      uint8      // Correlation id chosen by the requester, echoed in the response
	RC       ReturnCode // Outcome code, meaningful only in responses
	Opcode   Opcode     // Operation identifier
	A        uint8      // Immediate A — opcode-specific scalar argument
	Len      uint16     // Payload length in bytes following the header
	B        uint32     // Immediate B — opcode-specific scalar argument
}

// EncodeHeader packs h into exactly HeaderSize bytes. Version and Category
// are masked to their 4-bit wire fields; values above 15 are silently
// truncated, so callers must range-check them beforehand.
func EncodeHeader(h *Header) []byte {
	buf := make([]byte, HeaderSize)
	buf[0] = (h.Version&0x0F)<<4 | uint8(h.Category)&0x0F
	buf[1] = h.Tag
	buf[2] = uint8(h.RC)
	buf[3] = uint8(h.Opcode)
	buf[4] = h.A
	// buf[5] is reserved and stays 0
	binary.LittleEndian.PutUint16(buf[6:8], h.Len)
	binary.LittleEndian.PutUint32(buf[8:12], h.B)
	return buf
}

// DecodeHeader unpacks the first HeaderSize bytes of buf. It is the exact
// inverse of EncodeHeader and never reads past the header, regardless of
// what Len claims about the payload.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, have %d", ErrInvalidInput, HeaderSize, len(buf))
	}
	return Header{
		Version:  buf[0] >> 4 & 0x0F,
		Category: Category(buf[0] & 0x0F),
		Tag:      buf[1],
		RC:       ReturnCode(buf[2]),
		Opcode:   Opcode(buf[3]),
		A:        buf[4],
		Len:      binary.LittleEndian.Uint16(buf[6:8]),
		B:        binary.LittleEndian.Uint32(buf[8:12]),
	}, nil
}
