package cds

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/spf13/cast"
)

// Payload is the decoded body of one property update. Payloads are shared
// between subscribers and must be treated as read-only.
type Payload map[string]any

// DecodePayload parses a JSON object.
func DecodePayload(data []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("decode payload: not an object")
	}
	return p, nil
}

// Object returns the nested object stored under key.
func (p Payload) Object(key string) (Payload, bool) {
	switch v := p[key].(type) {
	case map[string]any:
		return Payload(v), true
	case Payload:
		return v, true
	}
	return nil, false
}

// Float returns the number stored under key. Numeric strings are accepted;
// booleans, objects and non-finite numbers are not.
func (p Payload) Float(key string) (float64, bool) {
	v, ok := p[key]
	if !ok || !primitive(v) {
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Int returns the integer stored under key, truncating fractional numbers.
// Strings are read as base-10 numbers. Values outside the int range are
// rejected rather than wrapped.
func (p Payload) Int(key string) (int, bool) {
	f, ok := p.Float(key)
	if !ok || f < math.MinInt || f >= -math.MinInt {
		return 0, false
	}
	return int(f), true
}

// String returns the text stored under key. Numbers are rendered as text.
func (p Payload) String(key string) (string, bool) {
	v, ok := p[key]
	if !ok || !primitive(v) {
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return s, true
}

func primitive(v any) bool {
	switch v.(type) {
	case nil, bool, map[string]any, Payload, []any:
		return false
	}
	return true
}
