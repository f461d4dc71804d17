package swing

// ClubType names a club in the reference table.
type ClubType string

const (
	Driver     ClubType = "Driver"
	Wood3      ClubType = "3-Wood"
	Wood5      ClubType = "5-Wood"
	Wood7      ClubType = "7-Wood"
	Hybrid2    ClubType = "2-Hybrid"
	Hybrid3    ClubType = "3-Hybrid"
	Hybrid4    ClubType = "4-Hybrid"
	Hybrid5    ClubType = "5-Hybrid"
	Iron2      ClubType = "2-Iron"
	Iron3      ClubType = "3-Iron"
	Iron4      ClubType = "4-Iron"
	Iron5      ClubType = "5-Iron"
	Iron6      ClubType = "6-Iron"
	Iron7      ClubType = "7-Iron"
	Iron8      ClubType = "8-Iron"
	Iron9      ClubType = "9-Iron"
	PitchWedge ClubType = "PW"
	GapWedge   ClubType = "GW"
	SandWedge  ClubType = "SW"
	LobWedge   ClubType = "LW"
	Putter     ClubType = "Putter"
)

// ClubSpec holds the static reference values for one club.
type ClubSpec struct {
	// LoftDeg is the standard static loft.
	LoftDeg float64
	// SmashFactor is the typical ball-speed to club-speed ratio.
	SmashFactor float64
	// BackspinRPM is the typical backspin at standard club speed.
	BackspinRPM float64
}

// DefaultClubSpec is returned by LookupClub for unknown club names so a
// bad identifier degrades to mid-iron behaviour instead of failing.
var DefaultClubSpec = ClubSpec{LoftDeg: 30.0, SmashFactor: 1.35, BackspinRPM: 5000}

// clubTable is the fixed club reference table. Loaded once, never
// mutated at runtime.
var clubTable = map[ClubType]ClubSpec{
	Driver:     {10.5, 1.48, 2700},
	Wood3:      {15.0, 1.44, 3500},
	Wood5:      {18.0, 1.42, 4300},
	Wood7:      {21.0, 1.40, 4800},
	Hybrid2:    {17.0, 1.40, 3800},
	Hybrid3:    {19.0, 1.39, 4200},
	Hybrid4:    {22.0, 1.38, 4600},
	Hybrid5:    {25.0, 1.37, 5000},
	Iron2:      {17.0, 1.38, 3800},
	Iron3:      {20.0, 1.37, 4200},
	Iron4:      {23.0, 1.36, 4700},
	Iron5:      {26.0, 1.35, 5500},
	Iron6:      {30.0, 1.34, 6200},
	Iron7:      {34.0, 1.33, 7000},
	Iron8:      {38.0, 1.32, 7800},
	Iron9:      {42.0, 1.30, 8600},
	PitchWedge: {46.0, 1.28, 9300},
	GapWedge:   {50.0, 1.25, 10000},
	SandWedge:  {54.0, 1.22, 10500},
	LobWedge:   {58.0, 1.18, 11000},
	Putter:     {3.0, 1.00, 300},
}

// LookupClub resolves a club identifier against the reference table,
// falling back to DefaultClubSpec for unknown identifiers.
func LookupClub(c ClubType) ClubSpec {
	if spec, ok := clubTable[c]; ok {
		return spec
	}
	return DefaultClubSpec
}

// Clubs returns every club identifier in the reference table.
func Clubs() []ClubType {
	out := make([]ClubType, 0, len(clubTable))
	for c := range clubTable {
		out = append(out, c)
	}
	return out
}
