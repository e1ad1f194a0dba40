// Package telemetry publishes periodic snapshots of the derived vehicle
// metrics to the broker.
package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/carinfo/config"
	"github.com/kilianp07/carinfo/core/carinfo"
	"github.com/kilianp07/carinfo/infra/logger"
	infmqtt "github.com/kilianp07/carinfo/infra/mqtt"
)

type publisher interface {
	IsConnected() bool
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
}

var newClient = func(opts *paho.ClientOptions) (publisher, error) {
	cli := paho.NewClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return cli, nil
}

// Snapshot is the published document.
type Snapshot struct {
	Time   time.Time      `json:"time"`
	Values map[string]any `json:"values"`
}

// Manager keeps the latest value of every selected metric and publishes them
// together on a fixed period.
type Manager struct {
	cfg config.TelemetryConfig
	cli publisher
	log logger.Logger
	now func() time.Time

	mu     sync.Mutex
	values map[string]any

	published   prometheus.Counter
	failed      prometheus.Counter
	lastPublish prometheus.Gauge
}

// NewManager connects a dedicated MQTT client and registers the publisher
// metrics on reg, the default registerer when nil.
func NewManager(mqttCfg infmqtt.Config, cfg config.TelemetryConfig, reg prometheus.Registerer) (*Manager, error) {
	mqttCfg.SetDefaults()
	opts, err := infmqtt.NewClientOptions(mqttCfg)
	if err != nil {
		return nil, err
	}
	opts.SetClientID(mqttCfg.ClientID + "-telemetry")
	cli, err := newClient(opts)
	if err != nil {
		return nil, fmt.Errorf("telemetry connect: %w", err)
	}
	return newManager(cli, cfg, reg)
}

func newManager(cli publisher, cfg config.TelemetryConfig, reg prometheus.Registerer) (*Manager, error) {
	cfg.SetDefaults()
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Manager{cfg: cfg, cli: cli, log: logger.New("telemetry"), now: time.Now, values: make(map[string]any)}
	var err error
	if m.published, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "telemetry_snapshots_total",
		Help: "Number of published metric snapshots",
	})); err != nil {
		return nil, err
	}
	if m.failed, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "telemetry_snapshot_failures_total",
		Help: "Number of snapshots that could not be published",
	})); err != nil {
		return nil, err
	}
	if m.lastPublish, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "telemetry_last_snapshot_timestamp_seconds",
		Help: "Unix timestamp of the last published snapshot",
	})); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Start tracks the configured metric group of m and publishes a snapshot
// every interval until ctx is done. It blocks.
func (m *Manager) Start(ctx context.Context, metrics *carinfo.Metrics) {
	cancel := m.track(metrics)
	defer cancel()

	ticker := time.NewTicker(m.cfg.Interval())
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := m.publish(); err != nil {
				m.log.Warnf("snapshot: %v", err)
			}
		case <-ctx.Done():
			if m.cli.IsConnected() {
				m.cli.Disconnect(250)
			}
			return
		}
	}
}

func (m *Manager) track(metrics *carinfo.Metrics) func() {
	keep := func(string) bool { return true }
	if g, ok := carinfo.FindGroup(m.cfg.Group); ok {
		set := make(map[string]bool, len(g.Metrics))
		for _, n := range g.Metrics {
			set[n] = true
		}
		keep = func(n string) bool { return set[n] }
	}
	var cancels []func()
	for name, s := range metrics.Gauges() {
		if keep(name) {
			cancels = append(cancels, s.Subscribe(func(v float64) { m.set(name, v) }))
		}
	}
	for name, s := range metrics.Labels() {
		if keep(name) {
			cancels = append(cancels, s.Subscribe(func(v string) { m.set(name, v) }))
		}
	}
	return func() {
		for _, c := range cancels {
			c()
		}
	}
}

func (m *Manager) set(name string, v any) {
	if f, ok := v.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
		return
	}
	m.mu.Lock()
	m.values[name] = v
	m.mu.Unlock()
}

// Snapshot returns a copy of the latest values.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	values := make(map[string]any, len(m.values))
	for k, v := range m.values {
		values[k] = v
	}
	return Snapshot{Time: m.now(), Values: values}
}

func (m *Manager) publish() error {
	snap := m.Snapshot()
	if len(snap.Values) == 0 {
		return nil
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		m.failed.Inc()
		return err
	}
	token := m.cli.Publish(m.cfg.Topic, m.cfg.QoS, m.cfg.Retain, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		m.failed.Inc()
		return fmt.Errorf("publish %s: %w", m.cfg.Topic, err)
	}
	m.published.Inc()
	m.lastPublish.Set(float64(snap.Time.Unix()))
	return nil
}
