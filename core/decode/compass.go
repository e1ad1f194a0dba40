package decode

import "math"

// Direction is one of the eight compass sectors.
type Direction int

const (
	DirectionUnknown Direction = iota - 1
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var directionNames = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// String returns the abbreviation, "" for DirectionUnknown.
func (d Direction) String() string {
	if d < North || d > NorthWest {
		return ""
	}
	return directionNames[d]
}

// Arrow returns an arrow glyph pointing towards d.
func (d Direction) Arrow() string {
	if d < North || d > NorthWest {
		return ""
	}
	return [...]string{"↑", "↗", "→", "↘", "↓", "↙", "←", "↖"}[d]
}

// ClockwiseHeading converts the counter-clockwise heading reported by the
// navigation system into a clockwise bearing in [0, 360).
func ClockwiseHeading(raw float64) float64 {
	h := math.Mod(360-raw, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// sectorStarts holds the first bearing of each sector from NE to NW. The
// sectors west of south are wider than the rest: W spans 55° and NW starts
// at 302.5. Anything below NE or from 347.5 on is north.
var sectorStarts = [...]struct {
	from float64
	dir  Direction
}{
	{22.5, NorthEast},
	{67.5, East},
	{112.5, SouthEast},
	{157.5, South},
	{202.5, SouthWest},
	{247.5, West},
	{302.5, NorthWest},
	{347.5, North},
}

// DirectionOf buckets a clockwise bearing into a compass sector.
func DirectionOf(heading float64) Direction {
	if math.IsNaN(heading) || math.IsInf(heading, 0) {
		return DirectionUnknown
	}
	h := math.Mod(heading, 360)
	if h < 0 {
		h += 360
	}
	d := North
	for _, s := range sectorStarts {
		if h < s.from {
			break
		}
		d = s.dir
	}
	return d
}
