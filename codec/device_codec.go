package codec

import (
	"fmt"

	"emapi/message"
	"emapi/protocol"
)

// EncodeDevices packs the entries back-to-back: for each device one id
// byte, one name-length byte, then exactly that many raw name bytes. The
// result is sum(2 + len(Name)) bytes. A name longer than MaxNameLen fails
// with ErrOverflow and more than MaxDevices entries fail with
// ErrInvalidInput, since neither could ever be decoded back.
func EncodeDevices(devs []message.Device) ([]byte, error) {
	if len(devs) > protocol.MaxDevices {
		return nil, fmt.Errorf("%w: %d device entries, limit is %d", protocol.ErrInvalidInput, len(devs), protocol.MaxDevices)
	}

	total := 0
	for i := range devs {
		if len(devs[i].Name) > protocol.MaxNameLen {
			return nil, fmt.Errorf("%w: device %d name is %d bytes, limit is %d", protocol.ErrOverflow, i, len(devs[i].Name), protocol.MaxNameLen)
		}
		total += 2 + len(devs[i].Name)
	}

	buf := make([]byte, total)
	k := 0
	for i := range devs {
		buf[k] = devs[i].ID
		buf[k+1] = uint8(len(devs[i].Name))
		k += 2
		k += copy(buf[k:], devs[i].Name)
	}
	return buf, nil
}

// DecodeDevices parses count packed entries from data and returns them
// along with the number of bytes consumed. The expected count comes from
// the caller because the wire carries no entry count of its own — a
// listing response states it in immediate A.
//
// Every declared name length is validated before it is used: a length
// running past the end of data fails with ErrTruncated, and a length
// beyond MaxNameLen fails with ErrOverflow. On failure no entries are
// returned.
func DecodeDevices(data []byte, count int) ([]message.Device, int, error) {
	if count < 0 {
		return nil, 0, fmt.Errorf("%w: negative entry count %d", protocol.ErrInvalidInput, count)
	}

	devs := make([]message.Device, 0, count)
	k := 0
	for i := 0; i < count; i++ {
		if len(data)-k < 2 {
			return nil, 0, fmt.Errorf("%w: entry %d needs id and length bytes, %d left", protocol.ErrTruncated, i, len(data)-k)
		}
		id := data[k]
		nameLen := int(data[k+1])
		k += 2

		if nameLen > protocol.MaxNameLen {
			return nil, 0, fmt.Errorf("%w: entry %d declares a %d byte name, limit is %d", protocol.ErrOverflow, i, nameLen, protocol.MaxNameLen)
		}
		if nameLen > len(data)-k {
			return nil, 0, fmt.Errorf("%w: entry %d declares a %d byte name, %d bytes left", protocol.ErrTruncated, i, nameLen, len(data)-k)
		}

		devs = append(devs, message.Device{
			ID:   id,
			Name: string(data[k : k+nameLen]),
		})
		k += nameLen
	}
	return devs, k, nil
}
