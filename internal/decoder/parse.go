// Package decoder turns the swing pad's raw USB HID report stream into
// discrete swing events.
//
// The pad has two rows of 8 IR sensors (back row toward the golfer,
// front row toward the target) sampled at a fixed tick rate. Each
// 60-byte input report carries 12 five-byte sub-packets:
//
//	Byte 0: front-row sensor bitmask (bits 0-7)
//	Byte 1: back-row sensor bitmask (bits 0-7)
//	Byte 2: signature byte (0x81 origin, 0x4A front row, 0x52 back row continued)
//	Byte 3-4: big-endian 16-bit timing tick count
//
// A valid swing requires an origin sub-packet whose front byte is zero
// (the club entered over the back row) followed by at least one
// front-row sub-packet (the club crossed toward the target).
package decoder

import (
	"encoding/binary"
	"fmt"
)

// USB identity and report framing constants for the swing pad.
const (
	VendorID  = 0x0547 // USB vendor ID
	ProductID = 0x3294 // USB product ID

	ReportSize          = 60                        // bytes per HID input report
	SubPacketSize       = 5                         // bytes per sub-packet
	SubPacketsPerReport = ReportSize / SubPacketSize // 12

	SensorsPerRow = 8 // one bit per sensor in each row bitmask
)

// Sub-packet signature bytes (byte index 2 within each sub-packet).
const (
	SigOrigin      = 0x81 // start of timing accumulation
	SigFrontRow    = 0x4A // club crossed the front sensor row
	SigBackRowCont = 0x52 // additional back-row activity before the front crossing
)

// Outbound single-byte control codes, each sent as a zero-padded output
// report of ReportSize bytes.
const (
	CmdEnableSensors = 0x50 // enable sensor scanning
	CmdLEDRed        = 0x51 // red indicator, swing detection paused
	CmdLEDGreen      = 0x52 // green indicator, swing detection armed
	CmdShutdown      = 0x80 // shut down sensors and LED
)

// Physical and timing constants from the sensor geometry.
const (
	// RowSpacing is the distance between the front and back sensor rows
	// in hardware units.
	RowSpacing = 185
	// ElementSpacing is the distance between adjacent sensor elements
	// within a row, in the same hardware units.
	ElementSpacing = 15
	// TickFactor converts timing ticks into the hardware time base used
	// by the speed formula.
	TickFactor = 18
	// SpeedConversionFactor scales the hardware-unit velocity to mph.
	SpeedConversionFactor = 2236.94

	// ballTimingHigh and ballTimingLow bracket the signature of the
	// ball breaking the front row after the club: one long gap followed
	// shortly by a much shorter one.
	ballTimingHigh = 0x25
	ballTimingLow  = 0x20
)

// Plausible club speed bounds in mph; readings outside are sensor noise.
const (
	MinSpeedMPH = 1
	MaxSpeedMPH = 160
)

// SubPacket is one timed sensor sample from an input report.
type SubPacket struct {
	Front     byte   // front-row sensor bitmask
	Back      byte   // back-row sensor bitmask
	Signature byte   // role tag: SigOrigin, SigFrontRow or SigBackRowCont
	Timing    uint16 // tick count since the previous sample
}

// ParseReport splits a raw input report into its sub-packets. The report
// must be at least ReportSize bytes; trailing bytes are ignored.
func ParseReport(data []byte) ([]SubPacket, error) {
	if len(data) < ReportSize {
		return nil, fmt.Errorf("short report: got %d bytes, need %d", len(data), ReportSize)
	}

	subs := make([]SubPacket, 0, SubPacketsPerReport)
	for off := 0; off < ReportSize; off += SubPacketSize {
		subs = append(subs, SubPacket{
			Front:     data[off],
			Back:      data[off+1],
			Signature: data[off+2],
			Timing:    binary.BigEndian.Uint16(data[off+3 : off+5]),
		})
	}
	return subs, nil
}

// SensorBits returns the indices of the set bits in a row bitmask, in
// ascending order. Index 0 is the leftmost sensor element.
func SensorBits(mask byte) []int {
	if mask == 0 {
		return nil
	}
	bits := make([]int, 0, SensorsPerRow)
	for j := 0; j < SensorsPerRow; j++ {
		if mask>>j&0x01 == 1 {
			bits = append(bits, j)
		}
	}
	return bits
}

// CommandReport builds the zero-padded output report for a control code.
// The leading byte is the HID report ID (0x00 for the default report).
func CommandReport(cmd byte) []byte {
	report := make([]byte, ReportSize+1)
	report[1] = cmd
	return report
}
