package flight

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ironsight-data/ironsight/internal/swing"
	"github.com/ironsight-data/ironsight/internal/units"
)

// Physical constants: standard air at sea level and a regulation ball.
const (
	airDensity   = 1.225   // kg/m^3
	gravity      = 9.81    // m/s^2
	ballMass     = 0.04593 // kg
	ballRadius   = 0.02135 // m
	airViscosity = 1.81e-5 // kg/(m*s)

	// spinDecayRate models spin loss in flight, ~1% per second.
	spinDecayRate = 0.01
)

var ballArea = math.Pi * ballRadius * ballRadius

// SimParams configures a trajectory simulation. Wind direction is the
// compass bearing the wind blows FROM (0 = down the target line toward
// the golfer, i.e. a pure headwind).
type SimParams struct {
	WindSpeedMPH float64
	WindDirDeg   float64
	// MaxStep bounds the integrator step size in seconds.
	MaxStep float64
	// MaxTime bounds the simulated flight time in seconds.
	MaxTime float64
}

// DefaultSimParams returns calm conditions with the standard solver bounds.
func DefaultSimParams() SimParams {
	return SimParams{MaxStep: 0.01, MaxTime: 15}
}

// minimalResult is the well-defined degenerate trajectory: a single
// origin point and zero distances. Returned instead of propagating
// numerical faults or integrating unlaunchable input.
func minimalResult() swing.TrajectoryResult {
	return swing.TrajectoryResult{Points: []swing.Point3{{}}}
}

// ComputeTrajectory integrates the equations of motion for a spinning
// ball under gravity, quadratic drag and Magnus lift, using fixed-step
// RK4. The returned point sequence is ordered by simulation time; the
// run terminates at ground contact or at the MaxTime bound.
//
// Coordinate system in the result (yards): X lateral (positive right),
// Y altitude, Z downrange toward the target.
func ComputeTrajectory(launch swing.BallLaunch, p SimParams) swing.TrajectoryResult {
	if p.MaxStep <= 0 {
		p.MaxStep = 0.01
	}
	if p.MaxTime <= 0 {
		p.MaxTime = 15
	}

	// Near-zero ball speed cannot produce a flight.
	if launch.BallSpeedMPH < 1 {
		return minimalResult()
	}

	v0 := units.MPS(launch.BallSpeedMPH)
	vla := units.Radians(launch.VLADeg)
	hla := units.Radians(launch.HLADeg)

	vel := r3.Vec{
		X: v0 * math.Cos(vla) * math.Sin(hla),
		Y: v0 * math.Sin(vla),
		Z: v0 * math.Cos(vla) * math.Cos(hla),
	}
	pos := r3.Vec{}

	spinRPS := launch.BackspinRPM / 60
	spinAxis := units.Radians(launch.SpinAxisDeg)

	windV := units.MPS(p.WindSpeedMPH)
	windRad := units.Radians(p.WindDirDeg)
	wind := r3.Vec{
		X: -windV * math.Sin(windRad),
		Z: -windV * math.Cos(windRad),
	}

	// accel evaluates the net acceleration at simulated time t. Drag
	// and lift act on velocity relative to the air; gravity does not.
	accel := func(t float64, vel r3.Vec) r3.Vec {
		rel := r3.Sub(vel, wind)
		vRel := r3.Norm(rel)
		if vRel < 0.1 {
			return r3.Vec{Y: -gravity}
		}
		unit := r3.Scale(1/vRel, rel)

		currentSpin := spinRPS * math.Exp(-spinDecayRate*t)
		spinRatio := currentSpin * 2 * math.Pi * ballRadius / vRel

		q := 0.5 * airDensity * ballArea * vRel * vRel
		drag := r3.Scale(-q*dragCoefficient(spinRatio, vRel)/ballMass, unit)

		liftForce := q * liftCoefficient(spinRatio) / ballMass

		// Split lift into the backspin-aligned (upward) and
		// sidespin-aligned (lateral) components of the tilted axis.
		var liftY float64
		vHoriz := math.Hypot(rel.X, rel.Z)
		if vHoriz > 0.1 {
			liftY = liftForce * math.Cos(spinAxis) * vHoriz / vRel
		} else {
			liftY = liftForce * math.Cos(spinAxis)
		}
		liftX := liftForce * math.Sin(spinAxis)

		return r3.Vec{
			X: drag.X + liftX,
			Y: drag.Y + liftY - gravity,
			Z: drag.Z,
		}
	}

	h := p.MaxStep
	t := 0.0
	points := []swing.Point3{{}}
	apex := 0.0
	landed := false

	for t < p.MaxTime {
		prevPos := pos
		pos, vel = rk4Step(t, pos, vel, h, accel)
		t += h

		if pos.Y > apex {
			apex = pos.Y
		}

		// Ground contact: altitude crossed zero while descending.
		if pos.Y < 0 && vel.Y < 0 && prevPos.Y > 0 {
			frac := prevPos.Y / (prevPos.Y - pos.Y)
			pos = r3.Add(prevPos, r3.Scale(frac, r3.Sub(pos, prevPos)))
			pos.Y = 0
			t += (frac - 1) * h
			landed = true
		}

		points = append(points, swing.Point3{
			X: units.Yards(pos.X),
			Y: units.Yards(math.Max(0, pos.Y)),
			Z: units.Yards(pos.Z),
		})
		if landed {
			break
		}
	}

	carry := math.Hypot(units.Yards(pos.X), units.Yards(pos.Z))
	if math.IsNaN(carry) || math.IsInf(carry, 0) {
		return minimalResult()
	}

	// Roll shrinks with launch angle and spin: low flat shots run out,
	// high spinny ones stop.
	rollFactor := math.Max(0.02, 0.15-launch.VLADeg/200-launch.BackspinRPM/100000)

	return swing.TrajectoryResult{
		Points:       points,
		CarryYards:   carry,
		TotalYards:   carry * (1 + rollFactor),
		ApexYards:    units.Yards(apex),
		LateralYards: units.Yards(pos.X),
		FlightTimeS:  t,
	}
}

// ComputeShot runs the full pipeline from a club measurement to a
// simulated trajectory.
func ComputeShot(m swing.ClubMeasurement, p SimParams) (swing.BallLaunch, swing.TrajectoryResult) {
	launch := LaunchFromClub(m)
	return launch, ComputeTrajectory(launch, p)
}

// rk4Step advances position and velocity by one fixed step of the
// classic fourth-order Runge-Kutta method.
func rk4Step(t float64, pos, vel r3.Vec, h float64, accel func(float64, r3.Vec) r3.Vec) (r3.Vec, r3.Vec) {
	k1v := accel(t, vel)
	k1p := vel

	v2 := r3.Add(vel, r3.Scale(h/2, k1v))
	k2v := accel(t+h/2, v2)
	k2p := v2

	v3 := r3.Add(vel, r3.Scale(h/2, k2v))
	k3v := accel(t+h/2, v3)
	k3p := v3

	v4 := r3.Add(vel, r3.Scale(h, k3v))
	k4v := accel(t+h, v4)
	k4p := v4

	velOut := r3.Add(vel, r3.Scale(h/6,
		r3.Add(r3.Add(k1v, r3.Scale(2, k2v)), r3.Add(r3.Scale(2, k3v), k4v))))
	posOut := r3.Add(pos, r3.Scale(h/6,
		r3.Add(r3.Add(k1p, r3.Scale(2, k2p)), r3.Add(r3.Scale(2, k3p), k4p))))
	return posOut, velOut
}

// dragCoefficient models the drag crisis of a dimpled ball: above the
// critical Reynolds number the dimples trip the boundary layer and drag
// drops sharply. Spin adds a small drag penalty.
func dragCoefficient(spinRatio, velocity float64) float64 {
	re := airDensity * velocity * 2 * ballRadius / airViscosity

	cd := 0.40 // pre-critical, only very slow balls
	if re > 1e5 {
		cd = 0.225
	}
	return math.Min(cd+0.10*spinRatio, 0.55)
}

// liftCoefficient is an approximately linear fit of Magnus lift against
// spin ratio for a dimpled ball, saturating at high spin.
func liftCoefficient(spinRatio float64) float64 {
	if spinRatio < 0.01 {
		return 0
	}
	return math.Min(0.12+0.8*spinRatio, 0.32)
}
