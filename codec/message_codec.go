package codec

import (
	"fmt"

	"emapi/message"
	"emapi/protocol"
	"emapi/registry"
)

// payloadObject resolves which payload shape a message of the given
// category and opcode carries. Events never carry a payload.
func payloadObject(cat protocol.Category, op protocol.Opcode) protocol.ObjectType {
	switch cat {
	case protocol.CategoryRequest:
		return registry.RequestObject(op)
	case protocol.CategoryResponse:
		return registry.ResponseObject(op)
	default:
		return protocol.ObjectNull
	}
}

// EncodeMessage serializes a complete message: the payload object implied
// by the header's category and opcode, then the header in front of it.
// The header's Len field is overwritten with the actual payload length,
// and for a device listing immediate A is left to the caller — it is an
// opcode-level argument, not a framing field.
//
// The payload must fit the protocol's fixed message bound; a larger one
// fails with ErrOverflow.
func EncodeMessage(m *message.Message) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil message", protocol.ErrInvalidInput)
	}

	var payload []byte
	if payloadObject(m.Hdr.Category, m.Hdr.Opcode) == protocol.ObjectDeviceList {
		var err error
		payload, err = EncodeDevices(m.Devices)
		if err != nil {
			return nil, err
		}
	}
	if len(payload) > protocol.MaxPayloadSize {
		return nil, fmt.Errorf("%w: payload is %d bytes, limit is %d", protocol.ErrOverflow, len(payload), protocol.MaxPayloadSize)
	}

	m.Hdr.Len = uint16(len(payload))
	buf := make([]byte, 0, protocol.HeaderSize+len(payload))
	buf = append(buf, protocol.EncodeHeader(&m.Hdr)...)
	buf = append(buf, payload...)
	return buf, nil
}

// DecodeMessage parses a complete message from buf: header first, then the
// payload object implied by the decoded category and opcode. For a device
// listing the expected entry count comes from immediate A, bounded by
// MaxDevices. The header's Len field is checked against both the protocol
// limit and the bytes actually present before any payload parsing starts.
func DecodeMessage(buf []byte) (*message.Message, error) {
	hdr, err := protocol.DecodeHeader(buf)
	if err != nil {
		return nil, err
	}
	if int(hdr.Len) > protocol.MaxPayloadSize {
		return nil, fmt.Errorf("%w: header declares a %d byte payload, limit is %d", protocol.ErrOverflow, hdr.Len, protocol.MaxPayloadSize)
	}
	payload := buf[protocol.HeaderSize:]
	if int(hdr.Len) > len(payload) {
		return nil, fmt.Errorf("%w: header declares a %d byte payload, %d bytes follow", protocol.ErrTruncated, hdr.Len, len(payload))
	}
	payload = payload[:hdr.Len]

	m := &message.Message{Hdr: hdr}
	if payloadObject(hdr.Category, hdr.Opcode) == protocol.ObjectDeviceList {
		count := int(hdr.A)
		if count > protocol.MaxDevices {
			return nil, fmt.Errorf("%w: response claims %d device entries, limit is %d", protocol.ErrOverflow, count, protocol.MaxDevices)
		}
		devs, _, err := DecodeDevices(payload, count)
		if err != nil {
			return nil, err
		}
		m.Devices = devs
	}
	return m, nil
}
