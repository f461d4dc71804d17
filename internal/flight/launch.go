// Package flight converts club measurements into ball launch conditions
// and simulates the resulting 3D ball flight. Both stages are pure: no
// I/O, no retained state, safe for concurrent callers.
package flight

import (
	"math"

	"github.com/ironsight-data/ironsight/internal/swing"
	"github.com/ironsight-data/ironsight/internal/units"
)

// spinTiltFactor converts face-to-path angle into spin axis tilt.
const spinTiltFactor = 0.7

// LaunchFromClub estimates ball launch conditions from a club
// measurement using a D-plane style model: ball speed from the smash
// factor, launch direction split between face and path, spin from
// dynamic loft and ball speed, spin axis from face-to-path.
func LaunchFromClub(m swing.ClubMeasurement) swing.BallLaunch {
	spec := swing.LookupClub(m.Club)

	ballSpeed := m.SpeedMPH * spec.SmashFactor

	// Dynamic loft: static loft opened or closed by the face.
	dynamicLoft := spec.LoftDeg + m.FaceAngleDeg*0.7

	// Taller-lofted clubs launch a higher fraction of their loft:
	// ~0.80 for a driver, ~0.92 for a lob wedge.
	loftRatio := 0.75 + spec.LoftDeg/200
	vla := units.Clamp(dynamicLoft*loftRatio, 2, 55)

	// Launch direction: mostly face, with a path share that grows for
	// clubs with less gear effect.
	faceContrib := 0.75
	switch m.Club {
	case swing.Driver:
		faceContrib = 0.85
	case swing.Putter:
		faceContrib = 0.90
	}
	hla := m.FaceAngleDeg*faceContrib + m.PathDeg*(1-faceContrib)

	backspin := estimateBackspin(ballSpeed, dynamicLoft, spec)

	// Spin axis tilt from face-to-path: positive tilts right (fade),
	// negative tilts left (draw).
	faceToPath := m.FaceAngleDeg - m.PathDeg
	spinAxis := 0.0
	if backspin > 0 {
		spinAxis = units.Degrees(math.Atan2(
			faceToPath*spinTiltFactor*backspin/3000,
			backspin/1000,
		))
	}
	spinAxis = units.Clamp(spinAxis, -45, 45)

	return swing.BallLaunch{
		BallSpeedMPH: ballSpeed,
		VLADeg:       vla,
		HLADeg:       hla,
		BackspinRPM:  backspin,
		SpinAxisDeg:  spinAxis,
	}
}

// estimateBackspin scales the club's typical backspin by the dynamic
// loft deviation (~200 rpm per added degree) and by ball speed relative
// to an amateur baseline (faster = less spin for the same club).
func estimateBackspin(ballSpeedMPH, dynamicLoft float64, spec swing.ClubSpec) float64 {
	spinAdjust := (dynamicLoft - spec.LoftDeg) * 200

	baseline := spec.SmashFactor * 85
	speedRatio := ballSpeedMPH / math.Max(baseline, 1)
	speedFactor := 1 + (1-speedRatio)*0.3

	backspin := (spec.BackspinRPM + spinAdjust) * speedFactor
	return units.Clamp(backspin, 500, 14000)
}
