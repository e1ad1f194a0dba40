package cds

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCaptureJSONL(t *testing.T) {
	in := `# morning drive
{"property":"vehicle.units","payload":{"units":{"distance":1}}}

{"property":"sensors.fuel","payload":{"fuel":{"tanklevel":40,"range":300}}}
`
	recs, err := ReadCapture(strings.NewReader(in), FormatJSONL)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, VehicleUnits, recs[0].Property)
	assert.Equal(t, SensorsFuel, recs[1].Property)
	fuel, ok := recs[1].Payload.Object("fuel")
	require.True(t, ok)
	v, ok := fuel.Float("range")
	assert.True(t, ok)
	assert.Equal(t, 300.0, v)
}

func TestReadCaptureYAML(t *testing.T) {
	in := `
- property: sensors.fuel
  payload:
    fuel:
      tanklevel: 40
      range: 300
- property: driving.gear
  payload:
    gear: 3
`
	recs, err := ReadCapture(strings.NewReader(in), FormatYAML)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	fuel, ok := recs[0].Payload.Object("fuel")
	require.True(t, ok)
	v, ok := fuel.Float("tanklevel")
	assert.True(t, ok)
	assert.Equal(t, 40.0, v)
	gear, ok := recs[1].Payload.Int("gear")
	assert.True(t, ok)
	assert.Equal(t, 3, gear)

	data, err := recs[1].JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"gear":3}`, string(data))

	recs, err = ReadCapture(strings.NewReader(""), FormatYAML)
	assert.NoError(t, err)
	assert.Empty(t, recs)
}

func TestReadCaptureErrors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		format CaptureFormat
		want   string
	}{
		{"broken line", "{\"property\":\"x\"\n", FormatJSONL, "line 1"},
		{"array payload", `{"property":"sensors.fuel","payload":[1]}`, FormatJSONL, "line 1"},
		{"missing property", `{"payload":{"a":1}}`, FormatJSONL, "missing property"},
		{"missing payload", "- property: sensors.fuel\n", FormatYAML, "missing payload"},
		{"not a sequence", "property: x\n", FormatYAML, "decode capture"},
		{"unknown format", "", CaptureFormat("csv"), "unknown capture format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCapture(strings.NewReader(tt.in), tt.format)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatOf("drive.YML"))
	assert.Equal(t, FormatYAML, FormatOf("drive.yaml"))
	assert.Equal(t, FormatJSONL, FormatOf("drive.jsonl"))
	assert.Equal(t, FormatJSONL, FormatOf("drive"))
}
