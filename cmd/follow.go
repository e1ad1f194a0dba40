package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/kilianp07/carinfo/core/carinfo"
)

// selectMetrics resolves the --group and --metric flags into metric names.
// Without either, every metric is selected.
func selectMetrics(m *carinfo.Metrics, group string, names []string) ([]string, error) {
	known := make(map[string]bool)
	for n := range m.Gauges() {
		known[n] = true
	}
	for n := range m.Labels() {
		known[n] = true
	}
	var out []string
	if group != "" {
		g, ok := carinfo.FindGroup(group)
		if !ok {
			return nil, fmt.Errorf("unknown metric group %q", group)
		}
		out = append(out, g.Metrics...)
	}
	for _, n := range names {
		if !known[n] {
			return nil, fmt.Errorf("unknown metric %q", n)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		for n := range known {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out, nil
}

// follow subscribes to the named metrics and reports every update as text.
// emit is never called concurrently. The returned func unsubscribes.
func follow(m *carinfo.Metrics, names []string, emit func(name, value string)) func() {
	var mu sync.Mutex
	report := func(name, value string) {
		mu.Lock()
		defer mu.Unlock()
		emit(name, value)
	}
	gauges, labels := m.Gauges(), m.Labels()
	var cancels []func()
	for _, name := range names {
		if s, ok := gauges[name]; ok {
			cancels = append(cancels, s.Subscribe(func(v float64) {
				report(name, strconv.FormatFloat(v, 'f', -1, 64))
			}))
		}
		if s, ok := labels[name]; ok {
			cancels = append(cancels, s.Subscribe(func(v string) { report(name, v) }))
		}
	}
	return func() {
		for _, c := range cancels {
			c()
		}
	}
}
