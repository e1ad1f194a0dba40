package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kilianp07/carinfo/config"
	"github.com/kilianp07/carinfo/core/cds"
	"github.com/kilianp07/carinfo/core/factory"
	coremetrics "github.com/kilianp07/carinfo/core/metrics"
	"github.com/kilianp07/carinfo/infra/logger"
	infmqtt "github.com/kilianp07/carinfo/infra/mqtt"
	"github.com/kilianp07/carinfo/test/util"
)

// TestServiceExportsBrokerUpdates runs the whole service against a broker and
// scrapes the derived values from /metrics.
func TestServiceExportsBrokerUpdates(t *testing.T) {
	broker := util.RequireBroker(t)

	cfg := &config.Config{
		MQTT: infmqtt.Config{Broker: broker, QoS: 1},
		Metrics: coremetrics.Config{
			Group:          "overview",
			PrometheusPort: "127.0.0.1:19464",
			Sinks: []factory.ModuleConfig{{
				Type: "prometheus",
				Conf: map[string]any{"namespace": "carinfo_it"},
			}},
		},
	}
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())

	svc, err := New(cfg)
	require.NoError(t, err)
	defer svc.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = svc.Run(ctx) }()

	feeder, err := infmqtt.NewBus(infmqtt.Config{Broker: broker, QoS: 1, Retain: true}, cds.NewHub(nil, nil),
		infmqtt.WithLogger(logger.NopLogger{}))
	require.NoError(t, err)
	defer feeder.Disconnect()

	// Retained, so the order against the service's subscriptions is irrelevant.
	require.NoError(t, feeder.PublishProperty(cds.VehicleUnits, []byte(`{"units":{"fuel":1,"distance":1,"temperature":1}}`)))
	require.NoError(t, feeder.PublishProperty(cds.SensorsFuel, []byte(`{"fuel":{"tanklevel":40,"range":300}}`)))
	require.NoError(t, feeder.PublishProperty(cds.DrivingDisplayRangeEV, []byte(`{"displayRangeElectricVehicle":120}`)))

	url := "http://127.0.0.1:19464/metrics"
	util.WaitForMetric(t, url, `carinfo_it_vehicle_metric_value{metric="fuel_range"} 180`)
	util.WaitForMetric(t, url, `carinfo_it_vehicle_metric_value{metric="fuel_level"} 40`)
	util.WaitForMetric(t, url, `carinfo_it_property_messages_total{ok="true",property="sensors.fuel"}`)
}
