package decode

import "github.com/kilianp07/carinfo/core/stream"

// Brake contact bits.
const (
	BrakeSoft          = 2
	BrakeStrong        = 4
	BrakeCruiseControl = 8
)

// ParkingBrakeMarker flags an engaged parking brake.
const ParkingBrakeMarker = "( ! )"

// ParkingBrakeSet reports whether a raw parking brake code means engaged.
func ParkingBrakeSet(code stream.Option[int]) bool {
	v, ok := code.Get()
	return ok && (v == 2 || v == 8 || v == 32)
}

// BrakeLabel picks the most significant active brake bit: cruise control
// braking, then strong, then soft. Lower bits are ignored once a higher one
// is set. An absent contact value counts as no braking.
func BrakeLabel(contact stream.Option[int], parkingBrakeSet bool) string {
	bits, _ := contact.Get()
	label := "-"
	switch {
	case bits&BrakeCruiseControl != 0:
		label = "Cruise Control"
	case bits&BrakeStrong != 0:
		label = "Strong"
	case bits&BrakeSoft != 0:
		label = "Soft"
	}
	if !parkingBrakeSet {
		return label
	}
	if label == "-" {
		return ParkingBrakeMarker
	}
	return label + " " + ParkingBrakeMarker
}
