package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Schema Serialization API
// =============================================================================

// Marshal serializes a Schema to pretty-printed JSON bytes.
func Marshal(s *Schema) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Schema.
// Nil slices are normalized to empty slices so downstream code can iterate
// without nil checks.
func Unmarshal(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}
	normalize(&s)
	return &s, nil
}

// Read decodes a JSON schema from an io.Reader.
func Read(r io.Reader) (*Schema, error) {
	var s Schema
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	normalize(&s)
	return &s, nil
}

// ReadFile reads a JSON file and returns the decoded Schema.
func ReadFile(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Write encodes a Schema as indented JSON to an io.Writer.
func Write(s *Schema, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}
	return nil
}

// WriteFile writes a Schema to a JSON file with 0644 permissions.
func WriteFile(s *Schema, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(s, f)
}

func normalize(s *Schema) {
	if s.Tables == nil {
		s.Tables = []Table{}
	}
	if s.Relations == nil {
		s.Relations = []Relation{}
	}
}
