package decoder

import (
	"errors"
	"math"
	"testing"

	"github.com/ironsight-data/ironsight/internal/swing"
)

func ingestAll(a *accumulator, subs ...SubPacket) {
	for _, sp := range subs {
		a.ingest(sp)
	}
}

func TestCompletionCondition(t *testing.T) {
	tests := []struct {
		name     string
		subs     []SubPacket
		complete bool
	}{
		{
			"back origin plus front crossing",
			[]SubPacket{
				{Back: 0x08, Signature: SigOrigin, Timing: 200},
				{Front: 0x10, Signature: SigFrontRow, Timing: 100},
			},
			true,
		},
		{
			"front-byte origin does not arm",
			[]SubPacket{
				{Front: 0x04, Back: 0x08, Signature: SigOrigin, Timing: 200},
				{Front: 0x10, Signature: SigFrontRow, Timing: 100},
			},
			false,
		},
		{
			"back origin alone",
			[]SubPacket{{Back: 0x08, Signature: SigOrigin, Timing: 200}},
			false,
		},
		{
			"front crossing alone",
			[]SubPacket{{Front: 0x10, Signature: SigFrontRow, Timing: 100}},
			false,
		},
		{
			"continued back rows never complete",
			[]SubPacket{
				{Back: 0x08, Signature: SigBackRowCont, Timing: 200},
				{Back: 0x04, Signature: SigBackRowCont, Timing: 50},
			},
			false,
		},
		{
			"order does not matter within accumulation",
			[]SubPacket{
				{Front: 0x10, Signature: SigFrontRow, Timing: 100},
				{Back: 0x08, Signature: SigOrigin, Timing: 200},
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAccumulator()
			ingestAll(a, tt.subs...)
			if a.complete() != tt.complete {
				t.Errorf("complete() = %v, want %v", a.complete(), tt.complete)
			}
		})
	}
}

func TestComputeSpeed(t *testing.T) {
	// Origin 200 ticks + first front crossing 100 ticks = 300 ticks.
	a := newAccumulator()
	ingestAll(a,
		SubPacket{Back: 0x08, Signature: SigOrigin, Timing: 200},
		SubPacket{Front: 0x08, Signature: SigFrontRow, Timing: 100},
	)

	m, err := a.compute(swing.Iron7)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	want := float64(RowSpacing) / float64(300*TickFactor) * SpeedConversionFactor
	if math.Abs(m.SpeedMPH-want) > 1e-9 {
		t.Errorf("SpeedMPH = %v, want %v", m.SpeedMPH, want)
	}
	if m.Club != swing.Iron7 {
		t.Errorf("Club = %v, want %v", m.Club, swing.Iron7)
	}
}

// Later front crossings are the ball, not the club: only the first
// crossing sets the speed timing.
func TestComputeSpeedUsesFirstFrontCrossing(t *testing.T) {
	a := newAccumulator()
	ingestAll(a,
		SubPacket{Back: 0x08, Signature: SigOrigin, Timing: 150},
		SubPacket{Front: 0x08, Signature: SigFrontRow, Timing: 150},
		SubPacket{Front: 0x08, Signature: SigFrontRow, Timing: 5},
	)

	m, err := a.compute(swing.Driver)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	want := float64(RowSpacing) / float64(300*TickFactor) * SpeedConversionFactor
	if math.Abs(m.SpeedMPH-want) > 1e-9 {
		t.Errorf("SpeedMPH = %v, want %v (elapsed at first crossing)", m.SpeedMPH, want)
	}
}

func TestComputeSpeedMonotonicInElapsedTicks(t *testing.T) {
	speedFor := func(originTicks uint16) float64 {
		a := newAccumulator()
		ingestAll(a,
			SubPacket{Back: 0x08, Signature: SigOrigin, Timing: originTicks},
			SubPacket{Front: 0x08, Signature: SigFrontRow, Timing: 100},
		)
		m, err := a.compute(swing.Iron7)
		if err != nil {
			t.Fatalf("compute(origin=%d): %v", originTicks, err)
		}
		return m.SpeedMPH
	}

	prev := speedFor(100)
	for _, ticks := range []uint16{200, 400, 800, 1600} {
		got := speedFor(ticks)
		if got >= prev {
			t.Errorf("speed not decreasing: %v ticks -> %v mph (prev %v)", ticks, got, prev)
		}
		prev = got
	}
}

func TestComputeRejectsImplausibleSpeeds(t *testing.T) {
	tests := []struct {
		name   string
		origin uint16
		front  uint16
	}{
		// 50 ticks -> ~460 mph, far above the 160 mph ceiling.
		{"too fast", 25, 25},
		// 30000 ticks -> ~0.77 mph, below the 1 mph floor.
		{"too slow", 29900, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAccumulator()
			ingestAll(a,
				SubPacket{Back: 0x08, Signature: SigOrigin, Timing: tt.origin},
				SubPacket{Front: 0x08, Signature: SigFrontRow, Timing: tt.front},
			)
			if _, err := a.compute(swing.Driver); !errors.Is(err, ErrImplausibleSpeed) {
				t.Errorf("compute() error = %v, want ErrImplausibleSpeed", err)
			}
		})
	}
}

func TestComputeRejectsMissingTiming(t *testing.T) {
	// Completion without any front timing cannot happen through ingest,
	// but a zero-tick crossing can.
	a := newAccumulator()
	if _, err := a.compute(swing.Driver); !errors.Is(err, ErrNoTiming) {
		t.Errorf("compute() on empty accumulator = %v, want ErrNoTiming", err)
	}
}

func TestBallTimingCorrection(t *testing.T) {
	// A front gap above the high threshold followed by one below the
	// low threshold marks the ball crossing; its ticks are subtracted
	// from the speed accumulator.
	a := newAccumulator()
	ingestAll(a,
		SubPacket{Back: 0x08, Signature: SigOrigin, Timing: 252},
		SubPacket{Front: 0x08, Signature: SigFrontRow, Timing: 48}, // 0x30 > 0x25
		SubPacket{Front: 0x08, Signature: SigFrontRow, Timing: 16}, // 0x10 < 0x20
	)

	if a.ballSubtract != 48 {
		t.Fatalf("ballSubtract = %d, want 48", a.ballSubtract)
	}

	m, err := a.compute(swing.Iron7)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	// speedElapsed 300 minus the 48-tick ball gap.
	want := float64(RowSpacing) / float64(252*TickFactor) * SpeedConversionFactor
	if math.Abs(m.SpeedMPH-want) > 1e-9 {
		t.Errorf("SpeedMPH = %v, want %v", m.SpeedMPH, want)
	}
}

func TestBallCorrectionDiscardsNonPositiveTiming(t *testing.T) {
	a := newAccumulator()
	ingestAll(a,
		SubPacket{Back: 0x08, Signature: SigOrigin, Timing: 0},
		SubPacket{Front: 0x08, Signature: SigFrontRow, Timing: 38}, // 0x26 > 0x25
		SubPacket{Front: 0x08, Signature: SigFrontRow, Timing: 16},
	)

	if _, err := a.compute(swing.Iron7); !errors.Is(err, ErrBallCorrection) {
		t.Errorf("compute() error = %v, want ErrBallCorrection", err)
	}
}

func TestFaceAngleSignFollowsFrontRowSide(t *testing.T) {
	build := func(frontMask, backMask byte) swing.ClubMeasurement {
		a := newAccumulator()
		ingestAll(a,
			SubPacket{Back: backMask, Signature: SigOrigin, Timing: 200},
			SubPacket{Front: frontMask, Signature: SigFrontRow, Timing: 100},
		)
		m, err := a.compute(swing.Iron7)
		if err != nil {
			t.Fatalf("compute: %v", err)
		}
		return m
	}

	// Activations left of center (indices < 4) flip the sign negative.
	left := build(0x06, 0x05)  // front {1,2}, back {0,2}
	right := build(0x60, 0xA0) // front {5,6}, back {5,7}

	if left.FaceAngleDeg >= 0 {
		t.Errorf("left-side face angle = %v, want negative", left.FaceAngleDeg)
	}
	if right.FaceAngleDeg <= 0 {
		t.Errorf("right-side face angle = %v, want positive", right.FaceAngleDeg)
	}

	// Magnitude: weighted lateral travel over row spacing.
	// front travel (2-1)*15=15, back travel (2-0)*15=30, weighted 25.
	wantMag := math.Atan2(25, RowSpacing) * 180 / math.Pi
	if math.Abs(math.Abs(left.FaceAngleDeg)-wantMag) > 1e-9 {
		t.Errorf("face magnitude = %v, want %v", math.Abs(left.FaceAngleDeg), wantMag)
	}
}

func TestSwingPathClampedToFifteenDegrees(t *testing.T) {
	a := newAccumulator()
	ingestAll(a,
		SubPacket{Back: 0x01, Signature: SigOrigin, Timing: 200}, // back {0}
		SubPacket{Front: 0x80, Signature: SigFrontRow, Timing: 100}, // front {7}
	)
	m, err := a.compute(swing.Driver)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	// Raw shift (7-0)+(7-0)=14 sensor widths is far past the clamp.
	if m.PathDeg != 15 {
		t.Errorf("PathDeg = %v, want clamped 15", m.PathDeg)
	}
}

func TestContactPointFromBackRow(t *testing.T) {
	a := newAccumulator()
	ingestAll(a,
		SubPacket{Back: 0xC0, Signature: SigOrigin, Timing: 200}, // back {6,7}, avg 6.5
		SubPacket{Front: 0x10, Signature: SigFrontRow, Timing: 100},
	)
	m, err := a.compute(swing.Iron7)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if math.Abs(m.ContactPoint-2.5) > 1e-9 {
		t.Errorf("ContactPoint = %v, want 2.5 (heel side)", m.ContactPoint)
	}
}

func TestMalformedFieldsAreToleratedNotFatal(t *testing.T) {
	// Front tag with a non-zero back byte is logged but accumulation
	// continues and the swing still completes.
	a := newAccumulator()
	ingestAll(a,
		SubPacket{Back: 0x08, Signature: SigOrigin, Timing: 200},
		SubPacket{Front: 0x10, Back: 0x02, Signature: SigFrontRow, Timing: 100},
	)
	if !a.complete() {
		t.Error("swing with malformed front packet did not complete")
	}
	if _, err := a.compute(swing.Iron7); err != nil {
		t.Errorf("compute: %v", err)
	}
}
