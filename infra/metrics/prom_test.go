package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/carinfo/core/metrics"
)

func TestPromSink_RecordValue(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry("carinfo", reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordValue(coremetrics.Sample{Name: "fuel_level", Value: 40}))
	require.NoError(t, sink.RecordValue(coremetrics.Sample{Name: "fuel_level", Value: 10.5}))

	expected := `
# HELP carinfo_vehicle_metric_value Latest value of a numeric vehicle metric
# TYPE carinfo_vehicle_metric_value gauge
carinfo_vehicle_metric_value{metric="fuel_level"} 10.5
`
	assert.NoError(t, testutil.CollectAndCompare(sink.values, strings.NewReader(expected)))
	assert.Equal(t, 2.0, testutil.ToFloat64(sink.updates.WithLabelValues("fuel_level")))
}

func TestPromSink_RecordLabelReplacesSeries(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry("carinfo", reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordLabel(coremetrics.Label{Name: "gps_city", Value: "Munich"}))
	require.NoError(t, sink.RecordLabel(coremetrics.Label{Name: "gps_city", Value: "Berlin"}))

	expected := `
# HELP carinfo_vehicle_metric_info Latest text of a vehicle metric, always 1
# TYPE carinfo_vehicle_metric_info gauge
carinfo_vehicle_metric_info{metric="gps_city",value="Berlin"} 1
`
	assert.NoError(t, testutil.CollectAndCompare(sink.info, strings.NewReader(expected)))
}

func TestPromSink_RecordMessage(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry("carinfo", reg)
	require.NoError(t, err)
	require.NoError(t, sink.RecordMessage("sensors.fuel", true))
	require.NoError(t, sink.RecordMessage("sensors.fuel", false))
	require.NoError(t, sink.RecordMessage("sensors.fuel", true))
	assert.Equal(t, 2.0, testutil.ToFloat64(sink.messages.WithLabelValues("sensors.fuel", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.messages.WithLabelValues("sensors.fuel", "false")))
}

func TestPromSink_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry("carinfo", reg)
	require.NoError(t, err)
	second, err := NewPromSinkWithRegistry("carinfo", reg)
	require.NoError(t, err)

	require.NoError(t, first.RecordValue(coremetrics.Sample{Name: "ev_level", Value: 80}))
	assert.Equal(t, 80.0, testutil.ToFloat64(second.values.WithLabelValues("ev_level")))
}
