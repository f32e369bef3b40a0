package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Partition file names inside the dataset directory.
const (
	TrainFile = "train.jsonl"
	EvalFile  = "eval.jsonl"
	TestFile  = "test.jsonl"
)

// Save writes the three partitions as line-delimited JSON into dir, creating
// it when necessary.
func (s *Split) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating dataset dir: %w", err)
	}

	partitions := []struct {
		name    string
		samples []*Sample
	}{
		{TrainFile, s.Train},
		{EvalFile, s.Eval},
		{TestFile, s.Test},
	}

	for _, p := range partitions {
		if err := WriteJSONL(p.samples, filepath.Join(dir, p.name)); err != nil {
			return fmt.Errorf("writing %s: %w", p.name, err)
		}
	}

	return nil
}

// WriteJSONL writes one {"text": …} object per line. HTML escaping is off so
// the prompt delimiters survive bit-exact.
func WriteJSONL(samples []*Sample, path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetEscapeHTML(false)
	for _, sample := range samples {
		if err := enc.Encode(sample); err != nil {
			return err
		}
	}

	return nil
}
