// Package codec serializes and deserializes EM API payload objects.
//
// Typed entry points (EncodeDevices, DecodeDevices) cover the one
// variable-length payload shape; Serialize and Deserialize dispatch over
// the object-type tag for callers that resolve the shape at run time,
// such as the test harness. The whole-message helpers in message_codec.go
// combine the header codec, the opcode registry, and the payload codec
// into single encode/decode calls.
package codec

import (
	"fmt"

	"emapi/message"
	"emapi/protocol"
)

// Serialize converts obj into its wire representation according to typ.
//
//   - ObjectHeader: obj must be *protocol.Header; yields exactly 12 bytes.
//   - ObjectDeviceList: obj must be []message.Device.
//   - ObjectNull: not encodable — there is nothing to emit, and asking for
//     it indicates a dispatch bug, so it fails with ErrInvalidInput just
//     like an unknown tag.
func Serialize(obj any, typ protocol.ObjectType) ([]byte, error) {
	switch typ {
	case protocol.ObjectHeader:
		h, ok := obj.(*protocol.Header)
		if !ok {
			return nil, fmt.Errorf("%w: object type %d wants *protocol.Header, got %T", protocol.ErrInvalidInput, typ, obj)
		}
		return protocol.EncodeHeader(h), nil

	case protocol.ObjectDeviceList:
		devs, ok := obj.([]message.Device)
		if !ok {
			return nil, fmt.Errorf("%w: object type %d wants []message.Device, got %T", protocol.ErrInvalidInput, typ, obj)
		}
		return EncodeDevices(devs)

	default:
		return nil, fmt.Errorf("%w: cannot serialize object type %d", protocol.ErrInvalidInput, typ)
	}
}

// Deserialize parses data according to typ and returns the decoded object
// along with the number of bytes consumed. count is the expected number of
// entries for ObjectDeviceList (typically the immediate-A value of a
// listing response; pass 1 to decode a single entry) and is ignored for
// other types. ObjectNull consumes nothing and yields a nil object.
func Deserialize(data []byte, typ protocol.ObjectType, count int) (any, int, error) {
	switch typ {
	case protocol.ObjectNull:
		return nil, 0, nil

	case protocol.ObjectHeader:
		h, err := protocol.DecodeHeader(data)
		if err != nil {
			return nil, 0, err
		}
		return &h, protocol.HeaderSize, nil

	case protocol.ObjectDeviceList:
		devs, n, err := DecodeDevices(data, count)
		if err != nil {
			return nil, 0, err
		}
		return devs, n, nil

	default:
		return nil, 0, fmt.Errorf("%w: cannot deserialize object type %d", protocol.ErrInvalidInput, typ)
	}
}
