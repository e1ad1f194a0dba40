package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kilianp07/carinfo/core/stream"
)

func TestBrakeLabelPriority(t *testing.T) {
	tests := []struct {
		name    string
		contact stream.Option[int]
		parking bool
		want    string
	}{
		{"absent", stream.None[int](), false, "-"},
		{"none", stream.Some(0), false, "-"},
		{"pedal only", stream.Some(1), false, "-"},
		{"soft", stream.Some(2), false, "Soft"},
		{"strong", stream.Some(4), false, "Strong"},
		{"soft and strong", stream.Some(2 | 4), false, "Strong"},
		{"all bits", stream.Some(2 | 4 | 8), false, "Cruise Control"},
		{"fullstop ignored", stream.Some(16), false, "-"},
		{"parking only", stream.Some(0), true, "( ! )"},
		{"parking absent contact", stream.None[int](), true, "( ! )"},
		{"strong with parking", stream.Some(2 | 4), true, "Strong ( ! )"},
		{"cruise with parking", stream.Some(2 | 4 | 8), true, "Cruise Control ( ! )"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BrakeLabel(tt.contact, tt.parking))
		})
	}
}

func TestParkingBrakeSet(t *testing.T) {
	for _, code := range []int{2, 8, 32} {
		assert.True(t, ParkingBrakeSet(stream.Some(code)), code)
	}
	for _, code := range []int{0, 1, 4, 16, 64} {
		assert.False(t, ParkingBrakeSet(stream.Some(code)), code)
	}
	assert.False(t, ParkingBrakeSet(stream.None[int]()))
}
