package decoder

import (
	"errors"
	"math"

	"github.com/ironsight-data/ironsight/internal/monitoring"
	"github.com/ironsight-data/ironsight/internal/swing"
	"github.com/ironsight-data/ironsight/internal/units"
)

// Swing rejection reasons. Rejected swings are logged and dropped; they
// never abort the decoder.
var (
	// ErrNoTiming means no usable front-crossing timing was accumulated.
	ErrNoTiming = errors.New("no valid speed timing for swing")
	// ErrBallCorrection means the ball-timing subtraction consumed the
	// whole elapsed-time budget.
	ErrBallCorrection = errors.New("speed timing non-positive after ball correction")
	// ErrImplausibleSpeed means the computed speed is outside the
	// plausible club speed range and is treated as sensor noise.
	ErrImplausibleSpeed = errors.New("club speed outside plausible range")
)

type activation struct {
	index  int
	timing uint16
}

// accumulator is the per-swing detection state. A fresh value is created
// at the start of every detection cycle and discarded after the swing is
// computed, so no state leaks between swings.
type accumulator struct {
	backOrigin     bool
	frontTriggered bool

	frontActivations []activation
	backActivations  []activation

	minFront, maxFront int
	minBack, maxBack   int

	// elapsed sums every sub-packet's timing ticks; speedElapsed
	// snapshots it at the first front-row crossing, since later front
	// crossings are the ball, not the club.
	elapsed      int
	firstFront   bool
	speedElapsed int

	potentialBallRead bool
	ballSubtract      int

	history []SubPacket
}

func newAccumulator() *accumulator {
	return &accumulator{
		minFront: SensorsPerRow,
		maxFront: -1,
		minBack:  SensorsPerRow,
		maxBack:  -1,
	}
}

// ingest folds one sub-packet into the accumulator. Malformed fields
// (e.g. a front tag with back-row bits set) are logged and tolerated;
// only the completion condition is strict.
func (a *accumulator) ingest(sp SubPacket) {
	a.history = append(a.history, sp)

	switch sp.Signature {
	case SigOrigin:
		if sp.Front == 0 {
			a.backOrigin = true
			monitoring.Logf("decoder: origin (back) back=0x%02X timing=%d", sp.Back, sp.Timing)
		} else {
			monitoring.Logf("decoder: origin (front) front=0x%02X timing=%d", sp.Front, sp.Timing)
		}
		a.noteFront(sp.Front, sp.Timing)
		a.noteBack(sp.Back, sp.Timing)
		a.elapsed += int(sp.Timing)

	case SigBackRowCont:
		if sp.Front != 0 {
			monitoring.Logf("decoder: back-row packet with unexpected front=0x%02X", sp.Front)
		}
		a.noteBack(sp.Back, sp.Timing)
		a.elapsed += int(sp.Timing)

	case SigFrontRow:
		a.frontTriggered = true
		if sp.Back != 0 {
			monitoring.Logf("decoder: front-row packet with unexpected back=0x%02X", sp.Back)
		}
		a.noteFront(sp.Front, sp.Timing)
		a.elapsed += int(sp.Timing)

		if !a.firstFront {
			a.firstFront = true
			a.speedElapsed = a.elapsed
		}

		// A long timing gap followed shortly by a short one means the
		// ball broke the front row after the club. Subtract the long
		// gap so speed reflects the club alone.
		if sp.Timing > ballTimingHigh {
			a.potentialBallRead = true
		} else if a.potentialBallRead && sp.Timing < ballTimingLow {
			if prev := len(a.history) - 2; prev >= 0 {
				a.ballSubtract = int(a.history[prev].Timing)
				monitoring.Logf("decoder: ball read detected, subtracting %d ticks", a.ballSubtract)
			}
			a.potentialBallRead = false
		}
	}
}

// complete reports whether the swing completion condition has been met:
// a back-row origin and at least one front-row crossing since reset.
func (a *accumulator) complete() bool {
	return a.backOrigin && a.frontTriggered
}

func (a *accumulator) noteFront(mask byte, timing uint16) {
	for _, j := range SensorBits(mask) {
		a.frontActivations = append(a.frontActivations, activation{j, timing})
		if j < a.minFront {
			a.minFront = j
		}
		if j > a.maxFront {
			a.maxFront = j
		}
	}
}

func (a *accumulator) noteBack(mask byte, timing uint16) {
	for _, j := range SensorBits(mask) {
		a.backActivations = append(a.backActivations, activation{j, timing})
		if j < a.minBack {
			a.minBack = j
		}
		if j > a.maxBack {
			a.maxBack = j
		}
	}
}

func avgIndex(acts []activation, fallback float64) float64 {
	if len(acts) == 0 {
		return fallback
	}
	sum := 0.0
	for _, act := range acts {
		sum += float64(act.index)
	}
	return sum / float64(len(acts))
}

// compute derives the club measurement from the accumulated activations.
// It returns one of the rejection errors above when the data cannot
// support a plausible swing.
func (a *accumulator) compute(club swing.ClubType) (swing.ClubMeasurement, error) {
	speedElapsed := a.speedElapsed
	if speedElapsed <= 0 {
		return swing.ClubMeasurement{}, ErrNoTiming
	}
	if a.ballSubtract > 0 {
		speedElapsed -= a.ballSubtract
	}
	if speedElapsed <= 0 {
		return swing.ClubMeasurement{}, ErrBallCorrection
	}

	speedMPH := float64(RowSpacing) / float64(speedElapsed*TickFactor) * SpeedConversionFactor
	if speedMPH < MinSpeedMPH || speedMPH > MaxSpeedMPH {
		return swing.ClubMeasurement{}, ErrImplausibleSpeed
	}

	// Face angle from lateral travel across the rows. The back row sits
	// closer to ball contact, so it gets double weight. A row with no
	// activations contributes zero travel.
	xTravelFront, xTravelBack := 0.0, 0.0
	if a.maxFront >= a.minFront {
		xTravelFront = float64(a.maxFront-a.minFront) * ElementSpacing
	}
	if a.maxBack >= a.minBack {
		xTravelBack = float64(a.maxBack-a.minBack) * ElementSpacing
	}
	xTravel := (xTravelFront + 2*xTravelBack) / 3
	faceAngle := units.Degrees(math.Atan2(xTravel, RowSpacing))

	center := float64(SensorsPerRow) / 2
	avgFront := avgIndex(a.frontActivations, center)
	avgBack := avgIndex(a.backActivations, center)
	if avgFront < center {
		faceAngle = -faceAngle
	}

	// Swing path from the shift of the activation window between rows.
	pathRaw := 0.0
	if a.maxFront >= 0 && a.maxBack >= 0 {
		pathRaw = float64((a.maxFront - a.maxBack) + (a.minFront - a.minBack))
	}
	pathDeg := units.Degrees(pathRaw * (float64(ElementSpacing) / RowSpacing))
	pathDeg = units.Clamp(pathDeg, -15, 15)

	// Contact from the back row only: the front row reads the ball too.
	contact := avgBack - center

	return swing.ClubMeasurement{
		SpeedMPH:     speedMPH,
		FaceAngleDeg: faceAngle,
		PathDeg:      pathDeg,
		ContactPoint: contact,
		Club:         club,
	}, nil
}
