package fsutil

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// SaveJSON writes data as indented JSON, creating parent directories as needed.
func SaveJSON(path string, data interface{}) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	bs, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(bs, '\n'), 0o644)
}
