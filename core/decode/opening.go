package decode

import (
	"fmt"

	"github.com/kilianp07/carinfo/core/cds"
)

// OpeningState classifies a window or the sunroof.
type OpeningState int

const (
	Closed OpeningState = iota
	Tilted
	Opened
)

func (s OpeningState) String() string {
	switch s {
	case Closed:
		return "Closed"
	case Tilted:
		return "Tilted"
	case Opened:
		return "Opened"
	}
	return ""
}

// StatusFullyOpen is the status code forcing a 100% opening.
const StatusFullyOpen = 2

// WindowState is the decoded state of a window or sunroof.
type WindowState struct {
	State   OpeningState
	Percent int
}

func (w WindowState) String() string {
	if w.State == Opened {
		return fmt.Sprintf("%s, %d%%", w.State, w.Percent)
	}
	return w.State.String()
}

// DecodeOpening derives the state from one report. Positions are reported in
// steps of 2%. The result depends on this report only.
func DecodeOpening(status, tilt, position int) WindowState {
	switch {
	case status == StatusFullyOpen:
		return WindowState{State: Opened, Percent: 100}
	case position > 0:
		return WindowState{State: Opened, Percent: min(position*2, 100)}
	case tilt > 0:
		return WindowState{State: Tilted}
	case status == 0:
		return WindowState{State: Closed}
	}
	return WindowState{State: Opened}
}

// WindowFromPayload decodes a window payload such as
// {"windowDriverFront": {"status": 1, "position": 25}}. Missing values count
// as zero.
func WindowFromPayload(p cds.Payload, key string) WindowState {
	obj, _ := p.Object(key)
	status, _ := obj.Int("status")
	position, _ := obj.Int("position")
	return DecodeOpening(status, 0, position)
}

// SunroofFromPayload decodes {"sunroof": {"status", "openPosition",
// "tiltPosition"}}.
func SunroofFromPayload(p cds.Payload) WindowState {
	obj, _ := p.Object("sunroof")
	status, _ := obj.Int("status")
	open, _ := obj.Int("openPosition")
	tilt, _ := obj.Int("tiltPosition")
	return DecodeOpening(status, tilt, open)
}
