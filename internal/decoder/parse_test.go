package decoder

import (
	"math/bits"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// buildSub encodes one 5-byte sub-packet.
func buildSub(front, back, sig byte, timing uint16) []byte {
	return []byte{front, back, sig, byte(timing >> 8), byte(timing & 0xFF)}
}

// buildReport packs sub-packets into a 60-byte report, zero-padding the
// remainder. Zero-signature padding is ignored by the accumulator.
func buildReport(subs ...[]byte) []byte {
	report := make([]byte, ReportSize)
	off := 0
	for _, s := range subs {
		copy(report[off:], s)
		off += SubPacketSize
	}
	return report
}

func TestParseReportFields(t *testing.T) {
	report := buildReport(
		buildSub(0x00, 0x18, SigOrigin, 0x0123),
		buildSub(0x81, 0x00, SigFrontRow, 0x00FF),
	)

	subs, err := ParseReport(report)
	if err != nil {
		t.Fatalf("ParseReport: %v", err)
	}
	if len(subs) != SubPacketsPerReport {
		t.Fatalf("got %d sub-packets, want %d", len(subs), SubPacketsPerReport)
	}

	want := []SubPacket{
		{Front: 0x00, Back: 0x18, Signature: SigOrigin, Timing: 0x0123},
		{Front: 0x81, Back: 0x00, Signature: SigFrontRow, Timing: 0x00FF},
	}
	if diff := cmp.Diff(want, subs[:2]); diff != "" {
		t.Errorf("sub-packet mismatch (-want +got):\n%s", diff)
	}

	// Padding decodes to zero values.
	if subs[11] != (SubPacket{}) {
		t.Errorf("padding sub-packet = %+v, want zero value", subs[11])
	}
}

func TestParseReportTimingIsBigEndian(t *testing.T) {
	report := buildReport([]byte{0x00, 0x00, SigOrigin, 0x12, 0x34})
	subs, err := ParseReport(report)
	if err != nil {
		t.Fatalf("ParseReport: %v", err)
	}
	if subs[0].Timing != 0x1234 {
		t.Errorf("Timing = 0x%04X, want 0x1234", subs[0].Timing)
	}
}

func TestParseReportRejectsShortInput(t *testing.T) {
	for _, n := range []int{0, 1, SubPacketSize, ReportSize - 1} {
		if _, err := ParseReport(make([]byte, n)); err == nil {
			t.Errorf("ParseReport accepted %d-byte report", n)
		}
	}
}

// Every 8-bit mask must decode to exactly its set bit indices, with
// min/max matching the lowest/highest set index.
func TestSensorBitsExhaustive(t *testing.T) {
	for mask := 0; mask <= 0xFF; mask++ {
		got := SensorBits(byte(mask))
		if len(got) != bits.OnesCount8(byte(mask)) {
			t.Fatalf("mask 0x%02X: decoded %d indices, want %d", mask, len(got), bits.OnesCount8(byte(mask)))
		}
		for _, j := range got {
			if mask>>j&1 != 1 {
				t.Fatalf("mask 0x%02X: index %d not set", mask, j)
			}
		}
		if mask != 0 {
			if got[0] != bits.TrailingZeros8(byte(mask)) {
				t.Errorf("mask 0x%02X: min index %d, want %d", mask, got[0], bits.TrailingZeros8(byte(mask)))
			}
			if got[len(got)-1] != 7-bits.LeadingZeros8(byte(mask)) {
				t.Errorf("mask 0x%02X: max index %d, want %d", mask, got[len(got)-1], 7-bits.LeadingZeros8(byte(mask)))
			}
		}
	}
}

func TestCommandReport(t *testing.T) {
	report := CommandReport(CmdEnableSensors)
	if len(report) != ReportSize+1 {
		t.Fatalf("command report is %d bytes, want %d", len(report), ReportSize+1)
	}
	if report[0] != 0x00 {
		t.Errorf("report ID byte = 0x%02X, want 0x00", report[0])
	}
	if report[1] != CmdEnableSensors {
		t.Errorf("command byte = 0x%02X, want 0x%02X", report[1], CmdEnableSensors)
	}
	for i, b := range report[2:] {
		if b != 0 {
			t.Errorf("padding byte %d = 0x%02X, want 0x00", i+2, b)
		}
	}
}
