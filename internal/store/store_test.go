package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStore_SetGetDelete(t *testing.T) {
	s := NewMemStore()

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("key", "value"))
	value, ok, err := s.Get("key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", value)

	require.NoError(t, s.Delete("key"))
	_, ok, err = s.Get("key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemStore_EmptyValueIsPresent(t *testing.T) {
	s := NewMemStore()
	require.NoError(t, s.Set("key", ""))

	value, ok, err := s.Get("key")
	require.NoError(t, err)
	assert.True(t, ok, "an empty stored value is distinct from an absent key")
	assert.Equal(t, "", value)
}

func TestMemStore_NotifiesOnChange(t *testing.T) {
	s := NewMemStore()

	var gotValue string
	var gotOK bool
	calls := 0
	s.OnExternalChange("key", func(value string, ok bool) {
		gotValue, gotOK = value, ok
		calls++
	})

	require.NoError(t, s.Set("key", "new"))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "new", gotValue)
	assert.True(t, gotOK)

	require.NoError(t, s.Delete("key"))
	assert.Equal(t, 2, calls)
	assert.False(t, gotOK)
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	s := NewFileStore(path)

	_, ok, err := s.Get("key")
	require.NoError(t, err)
	assert.False(t, ok, "missing file reads as empty store")

	require.NoError(t, s.Set("key", "value"))
	value, ok, err := s.Get("key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", value)

	// A second handle on the same path sees the write.
	other := NewFileStore(path)
	value, ok, err = other.Get("key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", value)

	require.NoError(t, s.Delete("key"))
	_, ok, err = s.Get("key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_CorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	s := NewFileStore(path)
	_, _, err := s.Get("key")
	assert.Error(t, err)
}

func TestFileStore_PreservesOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s := NewFileStore(path)

	require.NoError(t, s.Set("a", "1"))
	require.NoError(t, s.Set("b", "2"))
	require.NoError(t, s.Delete("a"))

	value, ok, err := s.Get("b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", value)
}
