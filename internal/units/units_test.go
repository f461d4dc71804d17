package units

import (
	"math"
	"testing"
)

func TestSpeedConversions(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"0 mph to mps", MPS(0), 0},
		{"100 mph to mps", MPS(100), 44.704},
		{"1 mps to mph", MPH(1), 2.2369362920544},
		{"44.704 mps to mph", MPH(44.704), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestDistanceConversions(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"100 m to yards", Yards(100), 109.361},
		{"0 m to yards", Yards(0), 0},
		{"109.361 yd to meters", Meters(109.361), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 1e-6 {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestAngleRoundTrip(t *testing.T) {
	for _, deg := range []float64{-180, -45, 0, 10.5, 90, 360} {
		back := Degrees(Radians(deg))
		if math.Abs(back-deg) > 1e-10 {
			t.Errorf("round-trip %v deg: got %v", deg, back)
		}
	}
	if math.Abs(Radians(180)-math.Pi) > 1e-12 {
		t.Errorf("Radians(180) = %v, want pi", Radians(180))
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"below range", -20, -15, 15, -15},
		{"above range", 99, -15, 15, 15},
		{"inside range", 3.5, -15, 15, 3.5},
		{"at lower bound", -15, -15, 15, -15},
		{"at upper bound", 15, -15, 15, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}
