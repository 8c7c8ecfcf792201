// Package hid encodes assembled reports into the 8-byte boot-protocol
// keyboard report and provides transmitters for getting them off the box.
package hid

import "github.com/phantomkb/phantom/report"

// ReportSize is the boot-protocol keyboard input report size in bytes.
const ReportSize = 8

// Encode packs a report into the boot-protocol layout.
//
// Report layout (8 bytes):
//
//	Byte 0: Modifiers (8 bits)
//	Byte 1: Reserved (0x00)
//	Bytes 2-7: Held key usage codes, most recent first
func Encode(r report.Report) []byte {
	b := make([]byte, ReportSize)
	b[0] = r.Modifiers
	b[1] = 0x00 // Reserved
	copy(b[2:], r.Keys[:])
	return b
}
