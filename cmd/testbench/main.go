// testbench exercises the EM API codec end to end. Each test builds a
// sample object, prints it, serializes it, hex-dumps the wire buffer,
// deserializes the buffer into a fresh object, and prints that, so a
// round-trip failure is visible at a glance.
//
// Usage: testbench [--width n] [test]
// With no test selector it lists the available tests.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"emapi/codec"
	"emapi/diag"
	"emapi/message"
	"emapi/protocol"
	"emapi/registry"
)

var testNames = []string{
	"string tables", // 0
	"header",        // 1
	"device entry",  // 2
	"list response", // 3
}

func main() {
	width := pflag.Int("width", 4, "bytes per hex dump row")
	pflag.Parse()

	if pflag.NArg() == 0 {
		for i, name := range testNames {
			fmt.Printf("TEST %d: %s\n", i, name)
		}
		return
	}

	sel, err := strconv.Atoi(pflag.Arg(0))
	if err != nil || sel < 0 || sel >= len(testNames) {
		fmt.Fprintf(os.Stderr, "unknown test selector %q\n", pflag.Arg(0))
		os.Exit(1)
	}
	fmt.Printf("TEST %d: %s\n", sel, testNames[sel])

	switch sel {
	case 1:
		verifyHeader(*width)
	case 2:
		verifyDevice(*width)
	case 3:
		verifyListResponse(*width)
	default:
		printStrings()
	}
}

// printStrings dumps every label table, including one past the end of each
// to show the explicit absent result.
func printStrings() {
	type table struct {
		name   string
		lookup func(uint8) (string, bool)
		max    uint8
	}
	for _, tb := range []table{
		{"category", diag.CategoryName, 3},
		{"object", diag.ObjectName, 3},
		{"opcode", diag.OpcodeName, 4},
		{"return code", diag.ReturnCodeName, 6},
	} {
		for u := uint8(0); u <= tb.max; u++ {
			if s, ok := tb.lookup(u); ok {
				fmt.Printf("%s %d: %s\n", tb.name, u, s)
			} else {
				fmt.Printf("%s %d: <undefined>\n", tb.name, u)
			}
		}
	}
}

// verifyObject runs the common round trip: print, serialize, dump,
// deserialize, print again.
func verifyObject(obj any, typ protocol.ObjectType, count, width int) {
	diag.FprintObject(os.Stdout, obj, typ)

	data, err := codec.Serialize(obj, typ)
	if err != nil {
		log.Fatalf("serialize: %v", err)
	}
	diag.FprintBuf(os.Stdout, data, width)

	decoded, n, err := codec.Deserialize(data, typ, count)
	if err != nil {
		log.Fatalf("deserialize: %v", err)
	}
	if n != len(data) {
		log.Fatalf("deserialize consumed %d of %d bytes", n, len(data))
	}
	diag.FprintObject(os.Stdout, decoded, typ)
}

func verifyHeader(width int) {
	hdr := protocol.Header{
		Category: protocol.CategoryResponse,
		Tag:      0x42,
		RC:       0xCD,
		Opcode:   0xAB,
		A:        0x23,
		Len:      0x1FFF,
		B:        0x12345678,
	}
	verifyObject(&hdr, protocol.ObjectHeader, 0, width)
}

func verifyDevice(width int) {
	devs := []message.Device{{ID: 0x21, Name: "Device name"}}
	verifyObject(devs, protocol.ObjectDeviceList, len(devs), width)
}

// verifyListResponse round-trips a complete list-devices response message:
// header and payload together, with the entry count riding in immediate A.
func verifyListResponse(width int) {
	devs := []message.Device{
		{ID: 0, Name: "cxl-mem0"},
		{ID: 1, Name: "cxl-mem1"},
		{ID: 2, Name: "cxl-accel0"},
	}
	var m message.Message
	if _, err := message.FillHeader(&m.Hdr, protocol.CategoryResponse, 0x01,
		protocol.RCSuccess, protocol.OpListDevices, 0, uint8(len(devs)), uint32(len(devs))); err != nil {
		log.Fatalf("fill header: %v", err)
	}
	m.Devices = devs

	diag.FprintHeader(os.Stdout, &m.Hdr)
	diag.FprintObject(os.Stdout, m.Devices, registry.ResponseObject(m.Hdr.Opcode))

	data, err := codec.EncodeMessage(&m)
	if err != nil {
		log.Fatalf("encode message: %v", err)
	}
	diag.FprintBuf(os.Stdout, data, width)

	decoded, err := codec.DecodeMessage(data)
	if err != nil {
		log.Fatalf("decode message: %v", err)
	}
	diag.FprintHeader(os.Stdout, &decoded.Hdr)
	diag.FprintObject(os.Stdout, decoded.Devices, registry.ResponseObject(decoded.Hdr.Opcode))
}
