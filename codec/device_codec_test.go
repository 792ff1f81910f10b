package codec

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"emapi/message"
	"emapi/protocol"
)

func TestEncodeDevicesExactBytes(t *testing.T) {
	// The original writer counts a trailing NUL in the length byte; the
	// codec itself emits exactly the bytes the name holds, so the NUL is
	// part of the sample name here.
	devs := []message.Device{{ID: 0x21, Name: "Device name\x00"}}

	data, err := EncodeDevices(devs)
	if err != nil {
		t.Fatalf("EncodeDevices failed: %v", err)
	}

	want := []byte{0x21, 0x0C, 0x44, 0x65, 0x76, 0x69, 0x63, 0x65, 0x20, 0x6E, 0x61, 0x6D, 0x65, 0x00}
	if !bytes.Equal(data, want) {
		t.Errorf("EncodeDevices mismatch:\n got  % 02x\n want % 02x", data, want)
	}
}

func TestDevicesRoundTrip(t *testing.T) {
	cases := [][]message.Device{
		nil,
		{{ID: 1, Name: ""}},
		{{ID: 0, Name: "cxl-mem0"}, {ID: 1, Name: ""}, {ID: 2, Name: "cxl-accel0"}},
		{{ID: 255, Name: strings.Repeat("n", protocol.MaxNameLen)}},
	}

	// Full house: 64 entries with names of every length 0..125 cycled.
	full := make([]message.Device, protocol.MaxDevices)
	for i := range full {
		full[i] = message.Device{
			ID:   uint8(i),
			Name: strings.Repeat("x", (i*2)%(protocol.MaxNameLen+1)),
		}
	}
	cases = append(cases, full)

	for i, devs := range cases {
		data, err := EncodeDevices(devs)
		if err != nil {
			t.Fatalf("case %d: EncodeDevices failed: %v", i, err)
		}

		decoded, n, err := DecodeDevices(data, len(devs))
		if err != nil {
			t.Fatalf("case %d: DecodeDevices failed: %v", i, err)
		}
		if n != len(data) {
			t.Errorf("case %d: consumed %d bytes, encoder produced %d", i, n, len(data))
		}
		if len(decoded) != len(devs) {
			t.Fatalf("case %d: got %d entries, want %d", i, len(decoded), len(devs))
		}
		for j := range devs {
			if decoded[j] != devs[j] {
				t.Errorf("case %d entry %d: got %+v, want %+v", i, j, decoded[j], devs[j])
			}
		}
	}
}

func TestEncodeDevicesNameTooLong(t *testing.T) {
	devs := []message.Device{{ID: 1, Name: strings.Repeat("n", protocol.MaxNameLen+1)}}
	_, err := EncodeDevices(devs)
	if !errors.Is(err, protocol.ErrOverflow) {
		t.Errorf("got %v, want ErrOverflow", err)
	}
}

func TestEncodeDevicesTooManyEntries(t *testing.T) {
	devs := make([]message.Device, protocol.MaxDevices+1)
	_, err := EncodeDevices(devs)
	if !errors.Is(err, protocol.ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}

func TestDecodeDevicesTruncatedName(t *testing.T) {
	// Entry declares a 10 byte name but only 4 bytes follow.
	data := []byte{0x01, 0x0A, 'a', 'b', 'c', 'd'}
	devs, _, err := DecodeDevices(data, 1)
	if !errors.Is(err, protocol.ErrTruncated) {
		t.Errorf("got %v, want ErrTruncated", err)
	}
	if devs != nil {
		t.Errorf("failing decode returned entries: %+v", devs)
	}
}

func TestDecodeDevicesMissingEntry(t *testing.T) {
	// Two entries expected, buffer holds one and a half.
	data := []byte{0x01, 0x02, 'h', 'i', 0x02}
	_, _, err := DecodeDevices(data, 2)
	if !errors.Is(err, protocol.ErrTruncated) {
		t.Errorf("got %v, want ErrTruncated", err)
	}
}

func TestDecodeDevicesNameLenOverflow(t *testing.T) {
	// Declared length 126 exceeds the 125 byte name capacity even though
	// the buffer is large enough to hold it.
	data := append([]byte{0x01, 0x7E}, make([]byte, 200)...)
	_, _, err := DecodeDevices(data, 1)
	if !errors.Is(err, protocol.ErrOverflow) {
		t.Errorf("got %v, want ErrOverflow", err)
	}
}

func TestDecodeDevicesNegativeCount(t *testing.T) {
	_, _, err := DecodeDevices([]byte{0x01, 0x00}, -1)
	if !errors.Is(err, protocol.ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}

func TestDecodeDevicesZeroCount(t *testing.T) {
	// Zero expected entries consumes nothing, whatever the buffer holds.
	devs, n, err := DecodeDevices([]byte{0xFF, 0xFF}, 0)
	if err != nil {
		t.Fatalf("DecodeDevices failed: %v", err)
	}
	if n != 0 || len(devs) != 0 {
		t.Errorf("got %d entries, %d bytes consumed; want 0, 0", len(devs), n)
	}
}

func BenchmarkDevicesRoundTrip(b *testing.B) {
	devs := make([]message.Device, protocol.MaxDevices)
	for i := range devs {
		devs[i] = message.Device{ID: uint8(i), Name: fmt.Sprintf("device-%02d", i)}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		data, err := EncodeDevices(devs)
		if err != nil {
			b.Fatal(err)
		}
		if _, _, err := DecodeDevices(data, len(devs)); err != nil {
			b.Fatal(err)
		}
	}
}
