// Package units provides shared unit conversions for the swing pipeline.
// Sensor output and user-facing values are imperial (mph, yards); the
// flight integrator works in SI internally.
package units

import "math"

// Conversion factors.
const (
	MPHToMPS      = 0.44704
	MPSToMPH      = 1.0 / MPHToMPS
	MetersToYards = 1.09361
	YardsToMeters = 1.0 / MetersToYards
	RPMToRadPerS  = 2 * math.Pi / 60
)

// MPH converts meters per second to miles per hour.
func MPH(mps float64) float64 { return mps * MPSToMPH }

// MPS converts miles per hour to meters per second.
func MPS(mph float64) float64 { return mph * MPHToMPS }

// Yards converts meters to yards.
func Yards(m float64) float64 { return m * MetersToYards }

// Meters converts yards to meters.
func Meters(yd float64) float64 { return yd * YardsToMeters }

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// Clamp limits v to the inclusive range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
