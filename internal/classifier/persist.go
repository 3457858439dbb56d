package classifier

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads a model artifact from path. The artifact is the JSON
// serialization of Model; everything beyond the weight matrices is
// informational.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model artifact: %w", err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding model artifact %s: %w", path, err)
	}
	return &m, nil
}

// Save writes the model artifact to path, creating parent directories.
func (m *Model) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding model artifact: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating model directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing model artifact: %w", err)
	}
	return nil
}
