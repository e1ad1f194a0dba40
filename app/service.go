package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/kilianp07/carinfo/config"
	"github.com/kilianp07/carinfo/core/carinfo"
	"github.com/kilianp07/carinfo/core/cds"
	coremetrics "github.com/kilianp07/carinfo/core/metrics"
	coremqtt "github.com/kilianp07/carinfo/core/mqtt"
	"github.com/kilianp07/carinfo/infra/logger"
	"github.com/kilianp07/carinfo/infra/metrics"
	infmqtt "github.com/kilianp07/carinfo/infra/mqtt"
	"github.com/kilianp07/carinfo/infra/telemetry"
)

// transport is the broker side of the hub.
type transport interface {
	cds.Watcher
	Disconnect()
}

var newTransport = func(cfg infmqtt.Config, sink coremqtt.PropertySink, opts ...infmqtt.Option) (transport, error) {
	return infmqtt.NewBus(cfg, sink, opts...)
}

var newTelemetry = func(mqttCfg infmqtt.Config, cfg config.TelemetryConfig) (snapshotter, error) {
	return telemetry.NewManager(mqttCfg, cfg, nil)
}

type snapshotter interface {
	Start(ctx context.Context, m *carinfo.Metrics)
}

// Service wires the broker, the property hub, the metric graph and the
// exporters together.
type Service struct {
	Hub     *cds.Hub
	Metrics *carinfo.Metrics

	transport transport
	exporter  *metrics.Exporter
	telemetry snapshotter
	names     []string
	promPort  string
	log       logger.Logger
}

// New creates a Service from the configuration and connects to the broker.
func New(cfg *config.Config) (*Service, error) {
	if err := logger.Configure(cfg.Logging.Level); err != nil {
		return nil, err
	}
	logger.UseConsole(cfg.Logging.Console)
	logg := logger.New("service")

	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	hub := cds.NewHub(nil, logger.New("cds"))
	opts := []infmqtt.Option{infmqtt.WithLogger(logger.New("mqtt_bus"))}
	if rec, ok := sink.(coremetrics.MessageRecorder); ok {
		opts = append(opts, infmqtt.WithRecorder(rec))
	}
	tr, err := newTransport(cfg.MQTT, hub, opts...)
	if err != nil {
		return nil, fmt.Errorf("mqtt bus: %w", err)
	}
	hub.SetWatcher(tr)

	svc := &Service{
		Hub:       hub,
		Metrics:   carinfo.New(hub),
		transport: tr,
		exporter:  metrics.NewExporter(sink, logger.New("exporter")),
		promPort:  cfg.Metrics.PrometheusPort,
		log:       logg,
	}
	if g, ok := carinfo.FindGroup(cfg.Metrics.Group); ok {
		svc.names = g.Metrics
	}
	if cfg.Telemetry.Enabled {
		svc.telemetry, err = newTelemetry(cfg.MQTT, cfg.Telemetry)
		if err != nil {
			tr.Disconnect()
			return nil, fmt.Errorf("telemetry: %w", err)
		}
	}
	return svc, nil
}

// Run exports metrics until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	s.exporter.Start(ctx, s.Metrics, s.names)
	var wg sync.WaitGroup
	if s.promPort != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := metrics.StartPromServer(ctx, s.promPort, nil, s.log); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if s.telemetry != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.telemetry.Start(ctx, s.Metrics)
		}()
	}
	s.log.Infof("service started")
	<-ctx.Done()
	s.exporter.Wait()
	wg.Wait()
	return nil
}

// Close disconnects from the broker and closes the hub.
func (s *Service) Close() error {
	s.transport.Disconnect()
	s.Hub.Close()
	return nil
}
