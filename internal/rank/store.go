package rank

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrNotRanked is returned by Load when no ranked list has been generated yet.
var ErrNotRanked = errors.New("ranked list not found: run rank first")

// Save writes the ranked list as indented JSON, replacing any previous list.
func Save(path string, list RankedList) error {
	payload, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ranked list: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write ranked list: %w", err)
	}
	return nil
}

// Load reads a ranked list written by Save.
// A missing file yields ErrNotRanked.
func Load(path string) (RankedList, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return RankedList{}, fmt.Errorf("%w (%s)", ErrNotRanked, path)
	}
	if err != nil {
		return RankedList{}, fmt.Errorf("read ranked list: %w", err)
	}

	var list RankedList
	if err := json.Unmarshal(raw, &list); err != nil {
		return RankedList{}, fmt.Errorf("decode ranked list: %w", err)
	}
	return list, nil
}
