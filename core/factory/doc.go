// Package factory provides a small generic registry used to instantiate modules
// from configuration. Modules are defined by a type string and a map of raw
// settings. Factories decode the settings into typed structs and return the
// concrete implementation.
//
// Example usage:
//
//	reg := factory.NewRegistry[metrics.Sink]()
//	reg.Register("log", func(conf map[string]any) (metrics.Sink, error) {
//	    var c struct{ Level string `json:"level"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return newLogSink(c.Level), nil
//	})
//	s, err := reg.Create(factory.ModuleConfig{Type: "log", Conf: map[string]any{"level": "info"}})
package factory
