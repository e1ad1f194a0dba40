// Package util holds helpers for the broker integration tests. Container
// tests only run when DOCKER_AVAILABLE is "1" or "true".
package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	BrokerReadyTimeout = 10 * time.Second
	MetricTimeout      = 10 * time.Second

	pollInterval  = 50 * time.Millisecond
	mosquittoConf = "listener 1883\nallow_anonymous true\npersistence false\nlog_dest stdout\n"
)

// DockerAvailable reports whether container tests are enabled.
func DockerAvailable() bool {
	v := os.Getenv("DOCKER_AVAILABLE")
	return v == "true" || v == "1"
}

// RequireBroker starts a throwaway Mosquitto broker for t and returns its
// tcp:// URL. The test is skipped when containers are disabled and the broker
// is removed when the test ends.
func RequireBroker(t testing.TB) string {
	t.Helper()
	if !DockerAvailable() {
		t.Skip("DOCKER_AVAILABLE not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	confPath := filepath.Join(t.TempDir(), "mosquitto.conf")
	if err := os.WriteFile(confPath, []byte(mosquittoConf), 0o644); err != nil {
		t.Fatalf("write broker config: %v", err)
	}
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "eclipse-mosquitto:2.0",
			ExposedPorts: []string{"1883/tcp"},
			WaitingFor:   wait.ForListeningPort("1883/tcp"),
			Files: []tc.ContainerFile{{
				HostFilePath:      confPath,
				ContainerFilePath: "/mosquitto/config/mosquitto.conf",
				FileMode:          0o644,
			}},
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start mosquitto: %v", err)
	}
	t.Cleanup(func() { _ = cont.Terminate(context.Background()) })

	endpoint, err := cont.PortEndpoint(ctx, "1883/tcp", "tcp")
	if err != nil {
		t.Fatalf("broker endpoint: %v", err)
	}
	if err := brokerReady(endpoint); err != nil {
		t.Fatalf("broker not ready: %v", err)
	}
	return endpoint
}

// brokerReady retries a plain connect until the broker accepts clients.
func brokerReady(broker string) error {
	deadline := time.Now().Add(BrokerReadyTimeout)
	opts := paho.NewClientOptions().AddBroker(broker).SetClientID("probe-" + uuid.NewString())
	for {
		cli := paho.NewClient(opts)
		token := cli.Connect()
		if token.WaitTimeout(time.Second) && token.Error() == nil {
			cli.Disconnect(100)
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("connect %s: %v", broker, token.Error())
		}
		time.Sleep(pollInterval)
	}
}

// WaitForMetric polls a /metrics endpoint until its body contains line.
func WaitForMetric(t testing.TB, url, line string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), MetricTimeout)
	defer cancel()
	var last string
	for {
		if body, err := scrape(ctx, url); err == nil {
			if strings.Contains(body, line) {
				return
			}
			last = body
		}
		select {
		case <-ctx.Done():
			t.Fatalf("metric %q not exposed on %s; last scrape:\n%s", line, url, last)
		case <-time.After(pollInterval):
		}
	}
}

func scrape(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	return string(body), err
}
