package playlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// State is the sidebar selection persisted between runs.
type State struct {
	Filter string `json:"filter"`
	Index  int    `json:"index"`
}

// LoadState reads state from path. A missing or empty file yields the zero
// State and no error.
func LoadState(path string) (State, error) {
	var s State
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("playlist: open state %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return s, fmt.Errorf("playlist: read state %s: %w", path, err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("playlist: decode state %s: %w", path, err)
	}
	if s.Index < 0 {
		s.Index = 0
	}
	return s, nil
}

// SaveState writes state to path atomically.
func SaveState(path string, s State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("playlist: mkdir: %w", err)
	}
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("playlist: open tmp: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&s); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("playlist: encode state: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("playlist: close tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("playlist: rename tmp: %w", err)
	}
	return nil
}
