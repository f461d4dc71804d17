// Package swing defines the data contract shared by every swing-event
// producer (the USB pad reader and the synthetic generator) and every
// consumer (the flight engine, the shot log, the tools).
package swing

import "context"

// ClubMeasurement is the raw per-swing output of a swing-event source.
// It is immutable once emitted: producers hand ownership to the consumer
// and never touch the value again.
type ClubMeasurement struct {
	// SpeedMPH is the club head speed at impact.
	SpeedMPH float64
	// FaceAngleDeg is the face angle at impact. Positive = open.
	FaceAngleDeg float64
	// PathDeg is the swing path. Positive = in-to-out.
	PathDeg float64
	// ContactPoint is the face contact offset in sensor units.
	// Zero = center, negative = toe, positive = heel.
	ContactPoint float64
	// Club is the currently selected club.
	Club ClubType
	// TempoRatio is the backswing-to-downswing time ratio. Zero means
	// the source did not measure tempo.
	TempoRatio float64
}

// BallLaunch holds estimated ball launch conditions derived from a
// ClubMeasurement. These are computed, never measured.
type BallLaunch struct {
	BallSpeedMPH float64
	// VLADeg is the vertical launch angle, clamped to [2, 55].
	VLADeg float64
	// HLADeg is the horizontal launch angle. Positive = right of target.
	HLADeg float64
	// BackspinRPM is clamped to [500, 14000].
	BackspinRPM float64
	// SpinAxisDeg is the spin axis tilt, clamped to [-45, 45].
	// Positive = tilted right (fade), negative = tilted left (draw).
	SpinAxisDeg float64
}

// Point3 is a single trajectory sample in yards.
type Point3 struct {
	// Lateral displacement. Positive = right of target.
	X float64
	// Altitude above the ground. Never negative after clamping.
	Y float64
	// Downrange distance toward the target.
	Z float64
}

// TrajectoryResult is the full output of a trajectory simulation.
// Points are ordered by simulation time with no duplicates.
type TrajectoryResult struct {
	Points       []Point3
	CarryYards   float64
	TotalYards   float64
	ApexYards    float64
	LateralYards float64
	FlightTimeS  float64
}

// EventKind identifies the type of a source event.
type EventKind int

const (
	// EventSwing carries a completed ClubMeasurement.
	EventSwing EventKind = iota
	// EventConnected signals the device (or simulation) came online.
	EventConnected
	// EventDisconnected signals the device was lost. The source keeps
	// retrying; this is status, not a terminal condition.
	EventDisconnected
	// EventError carries a non-fatal device error description.
	EventError
)

// String returns the event kind name for logging.
func (k EventKind) String() string {
	switch k {
	case EventSwing:
		return "swing"
	case EventConnected:
		return "connected"
	case EventDisconnected:
		return "disconnected"
	case EventError:
		return "error"
	}
	return "unknown"
}

// Event is a single notification from a swing-event source.
// Swing is non-nil only for EventSwing; Err only for EventError.
type Event struct {
	Kind  EventKind
	Swing *ClubMeasurement
	Err   error
}

// Source produces swing events on an irregular schedule. The hardware
// reader and the mock generator both implement it so downstream code
// cannot tell real hardware from simulation.
type Source interface {
	// Run drives the source until ctx is cancelled. It owns all
	// connection and accumulation state; no other goroutine may touch
	// that state while Run is live.
	Run(ctx context.Context) error
	// Events returns the channel on which the source delivers events.
	// Each detected swing is delivered exactly once, in order.
	Events() <-chan Event
	// SetClub changes the club attached to subsequent measurements.
	SetClub(ClubType)
}
