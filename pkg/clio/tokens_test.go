package clio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTokenStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	store := NewFileTokenStore(path)

	require.NoError(t, store.Save(Credentials{
		AccessToken:  "tok-abc",
		RefreshToken: "refresh-abc",
	}))

	cred, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", cred.AccessToken)
	assert.Equal(t, "refresh-abc", cred.RefreshToken)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "token file must not be world-readable")
}

func TestFileTokenStore_MissingFile(t *testing.T) {
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "absent.json"))

	cred, err := store.Load()
	require.NoError(t, err)
	assert.True(t, cred.Empty())
}

func TestFileTokenStore_Overwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	store := NewFileTokenStore(path)

	require.NoError(t, store.Save(Credentials{AccessToken: "first"}))
	require.NoError(t, store.Save(Credentials{AccessToken: "second", RefreshToken: "r2"}))

	cred, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", cred.AccessToken)
	assert.Equal(t, "r2", cred.RefreshToken)
}

func TestCredentials_Empty(t *testing.T) {
	assert.True(t, Credentials{}.Empty())
	assert.False(t, Credentials{AccessToken: "tok"}.Empty())
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "", maskToken("short"))
	assert.Equal(t, "abcdefgh…6789", maskToken("abcdefghijklm123456789"))
}
