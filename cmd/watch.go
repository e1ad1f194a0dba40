package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/carinfo/app"
	"github.com/kilianp07/carinfo/config"
)

var (
	watchGroup   string
	watchMetrics []string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print metric updates received from the broker",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchGroup, "group", "g", "", "metric group (overview, driving, gps, windows)")
	watchCmd.Flags().StringSliceVarP(&watchMetrics, "metric", "m", nil, "metric names to print")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	// The exporters are not started, only the hub and the broker connection.
	cfg.Telemetry.Enabled = false
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	names, err := selectMetrics(svc.Metrics, watchGroup, watchMetrics)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	cancel := follow(svc.Metrics, names, func(name, value string) {
		if _, err := fmt.Fprintf(out, "%s %s %s\n", time.Now().Format(time.TimeOnly), name, value); err != nil {
			stop()
		}
	})
	defer cancel()
	<-ctx.Done()
	return nil
}
