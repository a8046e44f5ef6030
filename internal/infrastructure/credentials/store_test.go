package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shop/storefront/internal/domain/identity"
)

func TestStore_SessionRoundtrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	session := &identity.Session{
		Token: "tok1",
		User:  identity.User{ID: "u1", Name: "Dana", Email: "dana@example.com", Role: identity.RoleUser},
	}
	require.NoError(t, store.Save(session))
	assert.Equal(t, "tok1", store.Token())

	// A second store over the same directory reads it back from disk
	fresh, err := NewStore(dir)
	require.NoError(t, err)
	loaded, err := fresh.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "tok1", loaded.Token)
	assert.Equal(t, "Dana", loaded.User.Name)
}

func TestStore_LoadMissingFileMeansSignedOut(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	session, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Empty(t, store.Token())
}

func TestStore_CorruptSessionFileMeansSignedOut(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, authFile), []byte("{not json"), 0o600))

	store, err := NewStore(dir)
	require.NoError(t, err)

	session, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestStore_Clear(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(&identity.Session{Token: "tok1"}))

	require.NoError(t, store.Clear())
	assert.Empty(t, store.Token())
	_, statErr := os.Stat(filepath.Join(dir, authFile))
	assert.True(t, os.IsNotExist(statErr))

	// Clearing an already empty store is not an error
	require.NoError(t, store.Clear())
}

func TestStore_SaveWritesAtomically(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(&identity.Session{Token: "tok1"}))

	// No temp files survive a successful write
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, authFile, entries[0].Name())
}

func TestStore_PreferencesRoundtrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.SavePreferences(Preferences{Sort: "-price", Limit: 24}))

	fresh, err := NewStore(dir)
	require.NoError(t, err)
	prefs, err := fresh.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, "-price", prefs.Sort)
	assert.Equal(t, 24, prefs.Limit)
}

func TestStore_MissingPreferencesAreZero(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	prefs, err := store.LoadPreferences()
	require.NoError(t, err)
	assert.Zero(t, prefs)
}
