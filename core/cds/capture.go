package cds

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record is one recorded property update.
type Record struct {
	Property PropertyID `json:"property" yaml:"property"`
	Payload  Payload    `json:"payload" yaml:"payload"`
}

// CaptureFormat names the encoding of a capture file.
type CaptureFormat string

const (
	FormatJSONL CaptureFormat = "jsonl"
	FormatYAML  CaptureFormat = "yaml"
)

// FormatOf picks the capture format from a file name. Anything that is not
// YAML is read as JSON lines.
func FormatOf(path string) CaptureFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSONL
	}
}

// ReadCapture decodes a capture. JSONL captures hold one record per line;
// blank lines and lines starting with # are skipped. YAML captures hold a
// sequence of records.
func ReadCapture(r io.Reader, format CaptureFormat) ([]Record, error) {
	switch format {
	case FormatYAML:
		return readYAML(r)
	case FormatJSONL:
		return readJSONL(r)
	default:
		return nil, fmt.Errorf("unknown capture format %q", format)
	}
}

func readJSONL(r io.Reader) ([]Record, error) {
	var out []Record
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 || text[0] == '#' {
			continue
		}
		var raw struct {
			Property PropertyID      `json:"property"`
			Payload  json.RawMessage `json:"payload"`
		}
		if err := json.Unmarshal(text, &raw); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		p, err := DecodePayload(raw.Payload)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec := Record{Property: raw.Property, Payload: p}
		if err := rec.validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func readYAML(r io.Reader) ([]Record, error) {
	var out []Record
	if err := yaml.NewDecoder(r).Decode(&out); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode capture: %w", err)
	}
	for i, rec := range out {
		if err := rec.validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	return out, nil
}

func (r Record) validate() error {
	if r.Property == "" {
		return fmt.Errorf("missing property")
	}
	if r.Payload == nil {
		return fmt.Errorf("%s: missing payload", r.Property)
	}
	return nil
}

// JSON encodes the payload the way it travels on the broker.
func (r Record) JSON() ([]byte, error) { return json.Marshal(r.Payload) }
