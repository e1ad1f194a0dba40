package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kilianp07/carinfo/core/cds"
)

func TestDecodeOpening(t *testing.T) {
	tests := []struct {
		name                   string
		status, tilt, position int
		want                   WindowState
	}{
		{"closed", 0, 0, 0, WindowState{Closed, 0}},
		{"opened", 1, 0, 25, WindowState{Opened, 50}},
		{"fully open overrides position", 2, 0, 0, WindowState{Opened, 100}},
		{"fully open with position", 2, 0, 10, WindowState{Opened, 100}},
		{"tilted", 0, 5, 0, WindowState{Tilted, 0}},
		{"tilted with status", 1, 5, 0, WindowState{Tilted, 0}},
		{"slid open while tilted", 1, 5, 10, WindowState{Opened, 20}},
		{"clamped", 1, 0, 80, WindowState{Opened, 100}},
		{"moving without position", 1, 0, 0, WindowState{Opened, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeOpening(tt.status, tt.tilt, tt.position))
		})
	}
}

func TestDecodeOpeningIsMemoryless(t *testing.T) {
	first := DecodeOpening(1, 0, 25)
	_ = DecodeOpening(2, 0, 0)
	assert.Equal(t, first, DecodeOpening(1, 0, 25))
}

func TestOpeningFromPayload(t *testing.T) {
	w := WindowFromPayload(cds.Payload{"windowDriverFront": map[string]any{"status": 1.0, "position": 25.0}}, "windowDriverFront")
	assert.Equal(t, WindowState{Opened, 50}, w)
	assert.Equal(t, "Opened, 50%", w.String())

	assert.Equal(t, WindowState{Closed, 0}, WindowFromPayload(cds.Payload{}, "windowDriverRear"))

	s := SunroofFromPayload(cds.Payload{"sunroof": map[string]any{"status": 0.0, "tiltPosition": 3.0}})
	assert.Equal(t, "Tilted", s.String())
	assert.Equal(t, "Closed", SunroofFromPayload(cds.Payload{"sunroof": "garbage"}).String())
}

func TestSteeringOf(t *testing.T) {
	assert.Equal(t, "12.5°L", SteeringOf(12.5).String())
	assert.Equal(t, "3.0°R", SteeringOf(-3).String())
	assert.Equal(t, "0.0°", SteeringOf(0).String())
}
