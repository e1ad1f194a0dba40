package factory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct{ A int }

type sampleConf struct {
	A int `json:"a"`
}

func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*sample]()
	require.NoError(t, reg.Register("s", func(conf map[string]any) (*sample, error) {
		var c sampleConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &sample{A: c.A}, nil
	}))
	inst, err := reg.Create(ModuleConfig{Type: "s", Conf: map[string]any{"a": 3}})
	require.NoError(t, err)
	assert.Equal(t, 3, inst.A)
	assert.Equal(t, []string{"s"}, reg.Names())
}

func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	require.NoError(t, reg.Register("x", func(map[string]any) (int, error) { return 1, nil }))
	assert.Error(t, reg.Register("x", func(map[string]any) (int, error) { return 2, nil }))
	assert.Error(t, reg.Register("y", nil))
	_, err := reg.Create(ModuleConfig{Type: "y"})
	assert.ErrorContains(t, err, `unknown module type "y"`)
}

func TestDecodeWeakTypes(t *testing.T) {
	var c struct {
		Port     int           `json:"port"`
		Enabled  bool          `json:"enabled"`
		Interval time.Duration `json:"interval"`
	}
	require.NoError(t, Decode(map[string]any{"port": "9100", "enabled": "true", "interval": "2s"}, &c))
	assert.Equal(t, 9100, c.Port)
	assert.True(t, c.Enabled)
	assert.Equal(t, 2*time.Second, c.Interval)
}
