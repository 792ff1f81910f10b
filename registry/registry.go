// Package registry maps an EM API opcode to the payload object type
// expected in its request and in its response. The wire format carries no
// self-describing type marker, so this lookup is what lets a receiver pick
// the right deserializer for the bytes that follow the header.
package registry

import "emapi/protocol"

// RequestObject returns the object type carried in the payload of a
// request with the given opcode. All defined requests pass their
// arguments in the header immediates and carry no payload.
//
// Unknown opcodes map to ObjectNull rather than an error, so a codec
// built against an older opcode set still frames newer messages
// correctly; callers wanting strict validation must range-check the
// opcode themselves.
func RequestObject(op protocol.Opcode) protocol.ObjectType {
	switch op {
	case protocol.OpEvent:
		return protocol.ObjectNull
	case protocol.OpListDevices:
		return protocol.ObjectNull
	case protocol.OpConnectDevice:
		return protocol.ObjectNull
	case protocol.OpDisconnectDevice:
		return protocol.ObjectNull
	default:
		return protocol.ObjectNull
	}
}

// ResponseObject returns the object type carried in the payload of a
// response with the given opcode. Only the device listing returns data;
// everything else answers through the header's return code and immediates.
// Unknown opcodes map to ObjectNull, same as RequestObject.
func ResponseObject(op protocol.Opcode) protocol.ObjectType {
	switch op {
	case protocol.OpEvent:
		return protocol.ObjectNull
	case protocol.OpListDevices:
		return protocol.ObjectDeviceList
	case protocol.OpConnectDevice:
		return protocol.ObjectNull
	case protocol.OpDisconnectDevice:
		return protocol.ObjectNull
	default:
		return protocol.ObjectNull
	}
}
