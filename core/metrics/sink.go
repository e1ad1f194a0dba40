package metrics

import "time"

// Sample is one numeric metric value.
type Sample struct {
	Name  string
	Value float64
	Time  time.Time
}

// Label is one textual metric value.
type Label struct {
	Name  string
	Value string
	Time  time.Time
}

// Sink records metric updates.
type Sink interface {
	RecordValue(s Sample) error
}

// LabelRecorder records textual metrics.
type LabelRecorder interface {
	RecordLabel(l Label) error
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) RecordValue(Sample) error { return nil }
func (NopSink) RecordLabel(Label) error  { return nil }

// MultiSink fans updates out to several sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordValue forwards the sample to all sinks, returning the first error encountered.
func (m *MultiSink) RecordValue(s Sample) error {
	for _, sink := range m.Sinks {
		if err := sink.RecordValue(s); err != nil {
			return err
		}
	}
	return nil
}

// RecordLabel forwards the label to the sinks supporting it.
func (m *MultiSink) RecordLabel(l Label) error {
	for _, sink := range m.Sinks {
		if rec, ok := sink.(LabelRecorder); ok {
			if err := rec.RecordLabel(l); err != nil {
				return err
			}
		}
	}
	return nil
}

// MessageRecorder counts raw property messages received by a transport.
type MessageRecorder interface {
	RecordMessage(property string, ok bool) error
}

func (NopSink) RecordMessage(string, bool) error { return nil }

// RecordMessage forwards the message count to the sinks supporting it.
func (m *MultiSink) RecordMessage(property string, ok bool) error {
	for _, sink := range m.Sinks {
		if rec, isRec := sink.(MessageRecorder); isRec {
			if err := rec.RecordMessage(property, ok); err != nil {
				return err
			}
		}
	}
	return nil
}
