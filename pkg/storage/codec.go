package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Snapshot is the serialized form of a whole store: composite key to attribute map.
type Snapshot map[string]map[string]any

// Codec defines how a snapshot is read from and written to the backing file.
type Codec interface {
	// Name identifies the format (e.g. "json").
	Name() string
	// Encode converts the snapshot to bytes.
	Encode(s Snapshot) ([]byte, error)
	// Decode reads a snapshot from r. Empty input yields an empty snapshot.
	Decode(r io.Reader) (Snapshot, error)
}

// DefaultCodecs returns the standard set of codecs keyed by file extension.
func DefaultCodecs(strict, indent bool) map[string]Codec {
	j := NewJSONCodec(strict, indent)
	y := NewYAMLCodec()
	return map[string]Codec{
		".json": j,
		".yaml": y,
		".yml":  y,
	}
}

// CodecFor picks the codec matching path's extension, JSON otherwise.
func CodecFor(path string, strict, indent bool) Codec {
	codecs := DefaultCodecs(strict, indent)
	if c, ok := codecs[strings.ToLower(filepath.Ext(path))]; ok {
		return c
	}
	return codecs[".json"]
}

// CodecByName returns the default codec called name ("json", "yaml" or "yml").
func CodecByName(name string, strict, indent bool) (Codec, error) {
	c, ok := DefaultCodecs(strict, indent)["."+strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", name)
	}
	return c, nil
}

// --- JSON Codec ---

// JSONCodec handles the default JSON backing file.
type JSONCodec struct {
	// Strict decodes numbers as json.Number to avoid precision loss.
	Strict bool
	// Indent pretty-prints the document.
	Indent bool
}

// NewJSONCodec creates a new JSON codec.
func NewJSONCodec(strict, indent bool) *JSONCodec {
	return &JSONCodec{Strict: strict, Indent: indent}
}

func (c *JSONCodec) Name() string { return "json" }

func (c *JSONCodec) Encode(s Snapshot) ([]byte, error) {
	if s == nil {
		s = Snapshot{}
	}
	if c.Indent {
		return json.MarshalIndent(s, "", "  ")
	}
	return json.Marshal(s)
}

func (c *JSONCodec) Decode(r io.Reader) (Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Snapshot{}, nil
	}

	var payload map[string]any
	decoder := json.NewDecoder(bytes.NewReader(data))
	if c.Strict {
		decoder.UseNumber()
	}
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return toSnapshot(payload)
}

// --- YAML Codec ---

// YAMLCodec stores the snapshot as a YAML mapping.
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec.
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

func (c *YAMLCodec) Name() string { return "yaml" }

func (c *YAMLCodec) Encode(s Snapshot) ([]byte, error) {
	if s == nil {
		s = Snapshot{}
	}
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(s); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *YAMLCodec) Decode(r io.Reader) (Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return toSnapshot(payload)
}

// --- Helpers ---

// toSnapshot checks that every top-level value is itself a mapping.
func toSnapshot(payload map[string]any) (Snapshot, error) {
	s := make(Snapshot, len(payload))
	for key, v := range payload {
		attrs, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("entry %q is %T, not an object", key, v)
		}
		s[key] = attrs
	}
	return s, nil
}
