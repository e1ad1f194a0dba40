package decode

import (
	"strconv"

	"github.com/kilianp07/carinfo/core/stream"
)

// DrivingMode is the raw driving experience switch code.
type DrivingMode int

const (
	ModeComfort     DrivingMode = 2
	ModeBasic       DrivingMode = 3
	ModeSport       DrivingMode = 4
	ModeSportPlus   DrivingMode = 5
	ModeRace        DrivingMode = 6
	ModeEcoPro      DrivingMode = 7
	ModeEcoProPlus  DrivingMode = 8
	ModeComfortPlus DrivingMode = 9
)

var modeNames = map[DrivingMode]string{
	ModeComfort:     "Comfort",
	ModeComfortPlus: "Comfort+",
	ModeBasic:       "Basic",
	ModeSport:       "Sport",
	ModeSportPlus:   "Sport+",
	ModeRace:        "Race",
	ModeEcoPro:      "EcoPro",
	ModeEcoProPlus:  "EcoPro+",
}

// String returns the mode name, or the raw code between dashes.
func (m DrivingMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return dashed(int(m))
}

// Sporty reports whether the mode selects sport gear positions.
func (m DrivingMode) Sporty() bool {
	return m == ModeSport || m == ModeSportPlus || m == ModeRace
}

// DrivingModeLabel renders a possibly absent mode; absence is "".
func DrivingModeLabel(code stream.Option[int]) string {
	v, ok := code.Get()
	if !ok {
		return ""
	}
	return DrivingMode(v).String()
}

// SportMode reports whether a possibly absent mode is sporty.
func SportMode(code stream.Option[int]) bool {
	v, ok := code.Get()
	return ok && DrivingMode(v).Sporty()
}

// GearLabel renders a gear code: N, R, P, then D1..D12 or S1..S12 for the
// forward positions depending on sport mode.
func GearLabel(gear int, sport bool) string {
	switch {
	case gear == 1:
		return "N"
	case gear == 2:
		return "R"
	case gear == 3:
		return "P"
	case gear >= 5 && gear <= 16:
		prefix := "D"
		if sport {
			prefix = "S"
		}
		return prefix + strconv.Itoa(gear-4)
	}
	return "-"
}

// GearboxTorqueConverter is the automatic gearbox type with known clutch
// states.
const GearboxTorqueConverter = 1

var torqueConverterClutch = map[int]string{
	0: "Coupled",
	1: "Sailing",
	2: "Uncoupled",
	3: "Open",
}

// ClutchLabel names the clutch state for torque converter gearboxes and
// falls back to the raw code for every other gearbox type.
func ClutchLabel(position, gearboxType int) string {
	if gearboxType == GearboxTorqueConverter {
		if name, ok := torqueConverterClutch[position]; ok {
			return name
		}
	}
	return dashed(position)
}

func dashed(v int) string { return "-" + strconv.Itoa(v) + "-" }
