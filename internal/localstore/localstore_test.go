package localstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := New(t.TempDir())
	got, err := s.LoadDiscipline()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveThenLoad(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.SaveDiscipline("Nursing"))

	got, err := s.LoadDiscipline()
	require.NoError(t, err)
	assert.Equal(t, "Nursing", got)
}

func TestSaveOverwrites(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.SaveDiscipline("Nursing"))
	require.NoError(t, s.SaveDiscipline("Business"))

	got, err := s.LoadDiscipline()
	require.NoError(t, err)
	assert.Equal(t, "Business", got)
}

func TestCorruptFileBehavesLikeAbsent(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".skilldash"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".skilldash", "local.json"), []byte("{not json"), 0o644))

	got, err := s.LoadDiscipline()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileUsesLocalStorageKey(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	require.NoError(t, s.SaveDiscipline("Nursing"))

	data, err := os.ReadFile(filepath.Join(dir, ".skilldash", "local.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"selectedDiscipline"`)
}
