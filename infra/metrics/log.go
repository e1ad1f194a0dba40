package metrics

import (
	coremetrics "github.com/kilianp07/carinfo/core/metrics"
	"github.com/kilianp07/carinfo/infra/logger"
)

// LogSink writes every update as a structured debug entry.
type LogSink struct {
	log logger.Logger
}

// NewLogSink creates a LogSink. A nil logger uses the "metrics" component logger.
func NewLogSink(l logger.Logger) *LogSink {
	if l == nil {
		l = logger.New("metrics")
	}
	return &LogSink{log: l}
}

func (s *LogSink) RecordValue(sample coremetrics.Sample) error {
	s.log.Debugw("metric", map[string]any{"metric": sample.Name, "value": sample.Value})
	return nil
}

func (s *LogSink) RecordLabel(l coremetrics.Label) error {
	s.log.Debugw("metric", map[string]any{"metric": l.Name, "value": l.Value})
	return nil
}
