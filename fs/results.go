// Package fs writes extraction output to disk. The pipeline core owns no
// persistence; this is caller-side plumbing used by the CLI.
package fs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/skillet"
)

// Output is the JSON document written after a batch run.
type Output struct {
	Summary *skillet.BatchSummary      `json:"summary,omitempty"`
	Results []skillet.ExtractionResult `json:"results"`
}

// WriteResults writes a batch outcome to path as indented JSON. The file
// appears atomically: content goes to a temp file first and is renamed
// into place, so readers never observe a partial write.
func WriteResults(path string, summary *skillet.BatchSummary, results []skillet.ExtractionResult) error {
	return writeJSON(path, Output{Summary: summary, Results: results})
}

// WriteResult writes a single-page extraction outcome to path.
func WriteResult(path string, result skillet.ExtractionResult) error {
	return writeJSON(path, result)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
