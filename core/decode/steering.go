package decode

import "fmt"

// Steering is a decoded steering wheel angle.
type Steering struct {
	Degrees float64
	// Side is "L", "R", or "" when centered.
	Side string
}

// SteeringOf splits a signed angle into magnitude and side. Positive angles
// turn left.
func SteeringOf(angle float64) Steering {
	switch {
	case angle > 0:
		return Steering{Degrees: angle, Side: "L"}
	case angle < 0:
		return Steering{Degrees: -angle, Side: "R"}
	}
	return Steering{}
}

func (s Steering) String() string { return fmt.Sprintf("%.1f°%s", s.Degrees, s.Side) }
