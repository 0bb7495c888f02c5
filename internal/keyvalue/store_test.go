package keyvalue

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	t.Run("string round trip", func(t *testing.T) {
		require.NoError(t, store.SetString("wallet_token", "token-value"))

		value, ok := store.GetString("wallet_token")
		assert.True(t, ok)
		assert.Equal(t, "token-value", value)
	})

	t.Run("bool round trip", func(t *testing.T) {
		require.NoError(t, store.SetBool("is_reusable_wallet_token", true))

		value, ok := store.GetBool("is_reusable_wallet_token")
		assert.True(t, ok)
		assert.True(t, value)
	})

	t.Run("absent key", func(t *testing.T) {
		_, ok := store.GetString("missing")
		assert.False(t, ok)
		_, ok = store.GetBool("missing")
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.SetString("k", "v"))
		require.NoError(t, store.Delete("k"))

		_, ok := store.GetString("k")
		assert.False(t, ok)

		assert.NoError(t, store.Delete("k"))
	})

	t.Run("bool accessor on non-bool value", func(t *testing.T) {
		require.NoError(t, store.SetString("name", "Ivan"))

		_, ok := store.GetBool("name")
		assert.False(t, ok)
	})
}

func testKey() []byte {
	return bytes.Repeat([]byte{0x42}, 32)
}

func TestFileStore(t *testing.T) {
	t.Run("values survive reopening the store", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.json")

		store, err := NewFileStore(path, testKey())
		require.NoError(t, err)
		require.NoError(t, store.SetString("wallet_token", "secret-token"))
		require.NoError(t, store.SetBool("is_reusable_wallet_token", true))

		reopened, err := NewFileStore(path, testKey())
		require.NoError(t, err)

		value, ok := reopened.GetString("wallet_token")
		assert.True(t, ok)
		assert.Equal(t, "secret-token", value)

		flag, ok := reopened.GetBool("is_reusable_wallet_token")
		assert.True(t, ok)
		assert.True(t, flag)
	})

	t.Run("values are not stored in plaintext", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.json")

		store, err := NewFileStore(path, testKey())
		require.NoError(t, err)
		require.NoError(t, store.SetString("wallet_token", "secret-token"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "secret-token")
	})

	t.Run("wrong key treats values as absent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.json")

		store, err := NewFileStore(path, testKey())
		require.NoError(t, err)
		require.NoError(t, store.SetString("wallet_token", "secret-token"))

		wrongKey := bytes.Repeat([]byte{0x24}, 32)
		reopened, err := NewFileStore(path, wrongKey)
		require.NoError(t, err)

		_, ok := reopened.GetString("wallet_token")
		assert.False(t, ok)
	})

	t.Run("delete persists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.json")

		store, err := NewFileStore(path, testKey())
		require.NoError(t, err)
		require.NoError(t, store.SetString("k", "v"))
		require.NoError(t, store.Delete("k"))

		reopened, err := NewFileStore(path, testKey())
		require.NoError(t, err)
		_, ok := reopened.GetString("k")
		assert.False(t, ok)
	})

	t.Run("invalid key size", func(t *testing.T) {
		_, err := NewFileStore(filepath.Join(t.TempDir(), "store.json"), []byte("short"))
		assert.Error(t, err)
	})

	t.Run("corrupted file is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		_, err := NewFileStore(path, testKey())
		assert.Error(t, err)
	})
}
