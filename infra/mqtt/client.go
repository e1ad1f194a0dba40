package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/kilianp07/carinfo/core/cds"
	coremetrics "github.com/kilianp07/carinfo/core/metrics"
	coremqtt "github.com/kilianp07/carinfo/core/mqtt"
	"github.com/kilianp07/carinfo/infra/logger"
)

// ErrNotConnected mirrors the core transport error.
var ErrNotConnected = coremqtt.ErrNotConnected

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Broker      string      `json:"broker"`
	ClientID    string      `json:"client_id"`
	Username    string      `json:"username"`
	Password    string      `json:"password"`
	TopicPrefix string      `json:"topic_prefix"`
	QoS         byte        `json:"qos"`
	Retain      bool        `json:"retain"`
	UseTLS      bool        `json:"use_tls"`
	ClientCert  string      `json:"client_cert"`
	ClientKey   string      `json:"client_key"`
	CABundle    string      `json:"ca_bundle"`
	AuthMethod  string      `json:"auth_method"`
	LWTTopic    string      `json:"lwt_topic"`
	LWTPayload  string      `json:"lwt_payload"`
	LWTQoS      byte        `json:"lwt_qos"`
	LWTRetain   bool        `json:"lwt_retain"`
	MaxRetries  int         `json:"max_retries"`
	BackoffMS   int         `json:"backoff_ms"`
	TLSConfig   *tls.Config `json:"-"`
}

// DefaultTopicPrefix is the topic namespace of the property bus.
const DefaultTopicPrefix = "carinfo/cds"

// SetDefaults fills in the optional fields.
func (c *Config) SetDefaults() {
	if c.TopicPrefix == "" {
		c.TopicPrefix = DefaultTopicPrefix
	}
	c.TopicPrefix = strings.TrimSuffix(c.TopicPrefix, "/")
	if c.ClientID == "" {
		c.ClientID = "carinfo-" + uuid.NewString()
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.BackoffMS <= 0 {
		c.BackoffMS = 100
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Broker == "" {
		return fmt.Errorf("mqtt: broker is required")
	}
	if c.QoS > 2 || c.LWTQoS > 2 {
		return fmt.Errorf("mqtt: qos must be 0, 1 or 2")
	}
	if strings.ContainsAny(c.TopicPrefix, "+#") {
		return fmt.Errorf("mqtt: topic prefix %q contains wildcards", c.TopicPrefix)
	}
	return nil
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
	Unsubscribe(topics ...string) paho.Token
}

type subscriber interface {
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Bus bridges the property hub to an MQTT broker. Each property is carried on
// its own topic, <prefix>/<property id>, with a JSON object payload. Topics
// are subscribed while the hub has consumers for the property.
type Bus struct {
	cli        pahoClient
	sink       coremqtt.PropertySink
	prefix     string
	qos        byte
	retain     bool
	logger     logger.Logger
	recorder   coremetrics.MessageRecorder
	maxRetries int
	backoff    time.Duration

	mu      sync.Mutex
	watched map[cds.PropertyID]bool
}

// Option customizes a Bus.
type Option func(*Bus)

// WithLogger replaces the default "mqtt_bus" logger.
func WithLogger(l logger.Logger) Option { return func(b *Bus) { b.logger = l } }

// WithRecorder counts received messages.
func WithRecorder(r coremetrics.MessageRecorder) Option { return func(b *Bus) { b.recorder = r } }

// NewBus connects to the broker. Properties listed by sink.Interested are
// subscribed on every (re)connect.
func NewBus(cfg Config, sink coremqtt.PropertySink, opts ...Option) (*Bus, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	clientOpts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	b := &Bus{
		sink:       sink,
		prefix:     cfg.TopicPrefix,
		qos:        cfg.QoS,
		retain:     cfg.Retain,
		logger:     logger.New("mqtt_bus"),
		maxRetries: cfg.MaxRetries,
		backoff:    time.Duration(cfg.BackoffMS) * time.Millisecond,
		watched:    make(map[cds.PropertyID]bool),
	}
	for _, o := range opts {
		o(b)
	}

	clientOpts.OnConnect = func(c paho.Client) {
		b.logger.Infof("MQTT connected")
		b.resubscribe(c)
	}
	clientOpts.OnConnectionLost = func(_ paho.Client, err error) {
		b.logger.Errorf("connection lost: %v", err)
	}
	clientOpts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		b.logger.Warnf("reconnecting to MQTT broker")
	}
	c := newMQTTClient(clientOpts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	b.cli = c
	return b, nil
}

// NewClientOptions builds mqtt client options from Config.
func NewClientOptions(cfg Config) (*paho.ClientOptions, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.AuthMethod == "username_password" || cfg.AuthMethod == "both" || cfg.AuthMethod == "" {
		if cfg.Username != "" {
			opts.SetUsername(cfg.Username)
		}
		if cfg.Password != "" {
			opts.SetPassword(cfg.Password)
		}
	}
	if cfg.UseTLS {
		tlsCfg, err := cfg.LoadTLSConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	if cfg.LWTTopic != "" {
		opts.SetWill(cfg.LWTTopic, cfg.LWTPayload, cfg.LWTQoS, cfg.LWTRetain)
	}
	return opts, nil
}

// LoadTLSConfig loads the TLS configuration from the file paths in the config.
func (c Config) LoadTLSConfig() (*tls.Config, error) {
	if c.TLSConfig != nil {
		return c.TLSConfig, nil
	}
	if c.ClientCert == "" || c.ClientKey == "" || c.CABundle == "" {
		return nil, fmt.Errorf("tls config requires client_cert, client_key and ca_bundle")
	}
	cert, err := tls.LoadX509KeyPair(c.ClientCert, c.ClientKey)
	if err != nil {
		return nil, fmt.Errorf("load cert: %w", err)
	}
	caBytes, err := os.ReadFile(c.CABundle)
	if err != nil {
		return nil, fmt.Errorf("read ca: %w", err)
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(caBytes)
	return &tls.Config{Certificates: []tls.Certificate{cert}, RootCAs: pool, MinVersion: tls.VersionTLS12}, nil
}

// Topic returns the topic carrying id.
func (b *Bus) Topic(id cds.PropertyID) string { return b.prefix + "/" + string(id) }

// Property returns the property carried on topic.
func (b *Bus) Property(topic string) (cds.PropertyID, bool) {
	rest, ok := strings.CutPrefix(topic, b.prefix+"/")
	if !ok || rest == "" {
		return "", false
	}
	return cds.PropertyID(rest), true
}

// Watch implements cds.Watcher.
func (b *Bus) Watch(id cds.PropertyID) {
	b.mu.Lock()
	if b.watched[id] {
		b.mu.Unlock()
		return
	}
	b.watched[id] = true
	b.mu.Unlock()
	if b.cli != nil && b.cli.IsConnected() {
		b.subscribe(b.cli, id)
	}
}

// Unwatch implements cds.Watcher.
func (b *Bus) Unwatch(id cds.PropertyID) {
	b.mu.Lock()
	if !b.watched[id] {
		b.mu.Unlock()
		return
	}
	delete(b.watched, id)
	b.mu.Unlock()
	if b.cli == nil || !b.cli.IsConnected() {
		return
	}
	topic := b.Topic(id)
	b.logger.Debugw("unsubscribe", map[string]any{"topic": topic})
	b.await(b.cli.Unsubscribe(topic), "unsubscribe "+topic)
}

func (b *Bus) resubscribe(c subscriber) {
	ids := b.sink.Interested()
	b.mu.Lock()
	for _, id := range ids {
		b.watched[id] = true
	}
	b.mu.Unlock()
	for _, id := range ids {
		b.subscribe(c, id)
	}
}

func (b *Bus) subscribe(c subscriber, id cds.PropertyID) {
	topic := b.Topic(id)
	b.logger.Debugw("subscribe", map[string]any{"topic": topic, "qos": b.qos})
	b.await(c.Subscribe(topic, b.qos, b.handler(id)), "subscribe "+topic)
}

// await checks the token off the calling goroutine: Watch may run inside a
// message handler, where waiting would block the client's router.
func (b *Bus) await(token paho.Token, what string) {
	go func() {
		if token.Wait() && token.Error() != nil {
			b.logger.Errorf("%s: %v", what, token.Error())
		}
	}()
}

func (b *Bus) handler(id cds.PropertyID) paho.MessageHandler {
	return func(_ paho.Client, msg paho.Message) {
		b.deliver(id, msg.Payload())
	}
}

func (b *Bus) deliver(id cds.PropertyID, data []byte) {
	err := b.sink.PublishJSON(id, data)
	if b.recorder != nil {
		_ = b.recorder.RecordMessage(string(id), err == nil)
	}
	switch {
	case err == nil:
	case errors.Is(err, cds.ErrHubClosed):
		b.logger.Debugw("hub closed, message dropped", map[string]any{"property": string(id)})
	default:
		b.logger.Warnf("drop %s update: %v", id, err)
	}
}

// PublishProperty sends a property update to the broker, retrying with
// exponential backoff.
func (b *Bus) PublishProperty(id cds.PropertyID, payload []byte) error {
	if b.cli == nil || !b.cli.IsConnected() {
		return ErrNotConnected
	}
	topic := b.Topic(id)
	var publishErr error
	for attempt := 0; attempt <= b.maxRetries; attempt++ {
		token := b.cli.Publish(topic, b.qos, b.retain, payload)
		token.Wait()
		publishErr = token.Error()
		if publishErr == nil {
			return nil
		}
		b.logger.Errorf("publish attempt %d on %s failed: %v", attempt+1, topic, publishErr)
		time.Sleep(b.backoff * time.Duration(1<<attempt))
	}
	return fmt.Errorf("publish %s: %w", topic, publishErr)
}

// Watched lists the properties currently subscribed.
func (b *Bus) Watched() []cds.PropertyID {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]cds.PropertyID, 0, len(b.watched))
	for id := range b.watched {
		ids = append(ids, id)
	}
	return ids
}

// Disconnect gracefully closes the MQTT connection.
func (b *Bus) Disconnect() {
	if b.cli != nil && b.cli.IsConnected() {
		b.cli.Disconnect(250)
	}
}
