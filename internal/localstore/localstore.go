// Package localstore persists the pieces of UI state that should survive a
// restart without a share fragment. Per the product contract that is a
// single value: the selected discipline. It lives in
// .skilldash/local.json under the workspace.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const fileName = "local.json"

// state is the on-disk shape. The JSON key matches the browser-era
// local-storage key so existing shared docs keep their meaning.
type state struct {
	SelectedDiscipline string `json:"selectedDiscipline"`
}

// Store reads and writes the local state file.
type Store struct {
	dir string
}

// New returns a Store rooted at the workspace dotdir.
func New(workspace string) *Store {
	return &Store{dir: filepath.Join(workspace, ".skilldash")}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, fileName)
}

// LoadDiscipline returns the persisted discipline, or "" when nothing has
// been persisted yet. A missing file is not an error.
func (s *Store) LoadDiscipline() (string, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read local state: %w", err)
	}
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		// A corrupt state file behaves like an absent one.
		return "", nil
	}
	return st.SelectedDiscipline, nil
}

// SaveDiscipline writes the discipline, creating the dotdir on first use.
func (s *Store) SaveDiscipline(name string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.MarshalIndent(state{SelectedDiscipline: name}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path(), data, 0o644); err != nil {
		return fmt.Errorf("write local state: %w", err)
	}
	return nil
}
