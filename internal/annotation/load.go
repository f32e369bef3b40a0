package annotation

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// Save writes annotations as an indented JSON array.
func Save(annotations []*Annotation, path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(annotations)
}

// Load reads an annotations file. The payload is decoded loosely first and
// then mapped onto the typed union, so files produced by other tooling (or
// hand labeling) with extra keys still load.
func Load(path string) ([]*Annotation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing annotations %q: %w", path, err)
	}

	return Decode(items)
}

// Decode maps loosely-typed annotation objects onto the tagged union.
func Decode(items []any) ([]*Annotation, error) {
	var annotations []*Annotation

	cfg := &mapstructure.DecoderConfig{
		Result:  &annotations,
		TagName: "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decoding annotations: %w", err)
	}

	return annotations, nil
}
