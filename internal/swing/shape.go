package swing

// ShotShape classifies the shot from its launch direction and spin axis.
// The spin axis picks the curvature family, the horizontal launch angle
// distinguishes pushes and pulls when there is no curvature.
func (b BallLaunch) ShotShape() string {
	var curve string
	switch {
	case b.SpinAxisDeg > -2 && b.SpinAxisDeg < 2:
		curve = "Straight"
	case b.SpinAxisDeg >= 2 && b.SpinAxisDeg < 8:
		curve = "Fade"
	case b.SpinAxisDeg >= 8:
		curve = "Slice"
	case b.SpinAxisDeg <= -2 && b.SpinAxisDeg > -8:
		curve = "Draw"
	default:
		curve = "Hook"
	}

	if curve != "Straight" {
		return curve
	}
	switch {
	case b.HLADeg >= 2:
		return "Push"
	case b.HLADeg <= -2:
		return "Pull"
	}
	return "Straight"
}
