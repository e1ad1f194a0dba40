package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/carinfo/config"
	"github.com/kilianp07/carinfo/core/carinfo"
	"github.com/kilianp07/carinfo/core/cds"
	coremqtt "github.com/kilianp07/carinfo/core/mqtt"
	"github.com/kilianp07/carinfo/infra/logger"
	infmqtt "github.com/kilianp07/carinfo/infra/mqtt"
)

var replayOpts struct {
	group    string
	metrics  []string
	publish  bool
	follow   bool
	interval time.Duration
}

var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "Feed a capture of property updates through the metric engine",
	Long: "Reads a JSONL or YAML capture of {property, payload} records, pushes them\n" +
		"through the metric engine and prints the resulting metric values.\n" +
		"With --publish the records are also sent to the configured broker.",
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	f := replayCmd.Flags()
	f.StringVarP(&replayOpts.group, "group", "g", "", "metric group to print")
	f.StringSliceVarP(&replayOpts.metrics, "metric", "m", nil, "metric names to print")
	f.BoolVar(&replayOpts.publish, "publish", false, "also publish the records to the broker")
	f.BoolVarP(&replayOpts.follow, "follow", "f", false, "print every update, not only the final values")
	f.DurationVar(&replayOpts.interval, "interval", 0, "pause between records")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()
	records, err := cds.ReadCapture(file, cds.FormatOf(args[0]))
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	var pub coremqtt.PropertyPublisher
	if replayOpts.publish {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		// Nothing is subscribed: the records are only sent.
		bus, err := infmqtt.NewBus(cfg.MQTT, cds.NewHub(nil, nil), infmqtt.WithLogger(logger.New("replay")))
		if err != nil {
			return fmt.Errorf("mqtt bus: %w", err)
		}
		defer bus.Disconnect()
		pub = bus
	}
	r := replayer{
		out:      cmd.OutOrStdout(),
		errOut:   cmd.ErrOrStderr(),
		pub:      pub,
		follow:   replayOpts.follow,
		interval: replayOpts.interval,
	}
	return r.run(ctx, records, replayOpts.group, replayOpts.metrics)
}

type replayer struct {
	out      io.Writer
	errOut   io.Writer
	pub      coremqtt.PropertyPublisher
	follow   bool
	interval time.Duration
}

func (r replayer) run(ctx context.Context, records []cds.Record, group string, names []string) error {
	hub := cds.NewHub(nil, nil)
	defer hub.Close()
	m := carinfo.New(hub)
	selected, err := selectMetrics(m, group, names)
	if err != nil {
		return err
	}

	latest := make(map[string]string)
	cancel := follow(m, selected, func(name, value string) {
		latest[name] = value
		if r.follow {
			fmt.Fprintf(r.out, "%s %s\n", name, value)
		}
	})
	defer cancel()

	for i, rec := range records {
		if i > 0 && r.interval > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.interval):
			}
		}
		if !cds.Known(rec.Property) {
			fmt.Fprintf(r.errOut, "record %d: unknown property %s\n", i+1, rec.Property)
		}
		hub.Publish(rec.Property, rec.Payload)
		if r.pub != nil {
			data, err := rec.JSON()
			if err != nil {
				return fmt.Errorf("record %d: %w", i+1, err)
			}
			if err := r.pub.PublishProperty(rec.Property, data); err != nil {
				return fmt.Errorf("publish %s: %w", rec.Property, err)
			}
		}
	}
	if r.follow {
		return nil
	}
	keys := make([]string, 0, len(latest))
	for k := range latest {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(r.out, "%s %s\n", k, latest[k]); err != nil {
			return err
		}
	}
	return nil
}
