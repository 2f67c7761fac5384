package prefs

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetSet(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "prefs.db"))
	defer s.Close()

	p := s.Scope("client-a")
	_, ok := p.Get(KeyTheme)
	assert.False(t, ok, "unset key should be absent")

	p.Set(KeyTheme, "dark")
	v, ok := p.Get(KeyTheme)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)

	p.Set(KeyTheme, "light")
	v, _ = p.Get(KeyTheme)
	assert.Equal(t, "light", v)

	_, ok = s.Scope("client-b").Get(KeyTheme)
	assert.False(t, ok, "clients must not share preferences")
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	s := Open(path)
	s.Scope("client-a").Set(KeyLanguage, "fr")
	require.NoError(t, s.Close())

	s = Open(path)
	defer s.Close()
	v, ok := s.Scope("client-a").Get(KeyLanguage)
	assert.True(t, ok)
	assert.Equal(t, "fr", v)
}

func TestStoreFallsBackToMemory(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "prefs.db"))
	p := s.Scope("client-a")
	p.Set(KeyLanguage, "es")

	// Closing the handle makes every following statement fail.
	require.NoError(t, s.db.Close())

	v, ok := p.Get(KeyLanguage)
	assert.True(t, ok)
	assert.Equal(t, "es", v)

	p.Set(KeyTheme, "dark")
	v, ok = p.Get(KeyTheme)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
	assert.True(t, s.usingMemory())
}

func TestStoreUnopenablePath(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "missing-dir", "prefs.db"))
	defer s.Close()

	p := s.Scope("client-a")
	p.Set(KeyTheme, "dark")
	v, ok := p.Get(KeyTheme)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
}

func TestPrune(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "prefs.db"))
	defer s.Close()

	s.Scope("old").Set(KeyTheme, "dark")
	_, err := s.db.Exec(`UPDATE preferences SET updated_at = datetime('now', '-13 months') WHERE client_id = 'old'`)
	require.NoError(t, err)
	s.Scope("new").Set(KeyTheme, "light")

	n, err := s.Prune(365 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
