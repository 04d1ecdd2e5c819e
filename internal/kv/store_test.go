package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	file, err := NewFileStore(filepath.Join(dir, "store.json"))
	require.NoError(t, err)
	db, err := NewSQLiteStore(filepath.Join(dir, "store.db"))
	require.NoError(t, err)

	stores := map[string]Store{
		BackendMemory: NewMemoryStore(),
		BackendFile:   file,
		BackendSQLite: db,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestStore_Contract(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.GetItem(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.SetItem(ctx, "b", "two"))
			require.NoError(t, s.SetItem(ctx, "a", "one"))
			require.NoError(t, s.SetItem(ctx, "a", "uno"))

			v, ok, err := s.GetItem(ctx, "a")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "uno", v)

			keys, err := s.ListKeys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, keys)

			require.NoError(t, s.RemoveItem(ctx, "a"))
			require.NoError(t, s.RemoveItem(ctx, "never-set"))

			_, ok, err = s.GetItem(ctx, "a")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestMemoryStore_Quota(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(WithQuota(10))

	require.NoError(t, s.SetItem(ctx, "k", "12345"))
	err := s.SetItem(ctx, "k2", "123456")
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	// Overwriting reuses the space of the old value.
	require.NoError(t, s.SetItem(ctx, "k", "123456789"))

	require.NoError(t, s.RemoveItem(ctx, "k"))
	require.NoError(t, s.SetItem(ctx, "k2", "123456"))
}

func TestMemoryStore_Closed(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.SetItem(ctx, "k", "v"), ErrClosed)
	_, _, err := s.GetItem(ctx, "k")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "store.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SetItem(ctx, "@app:key", `{"x":1}`))
	require.NoError(t, s.Close())

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	v, ok, err := reopened.GetItem(ctx, "@app:key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"x":1}`, v)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_EmptyFileIsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	s, err := NewFileStore(path)
	require.NoError(t, err)
	keys, err := s.ListKeys(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestFileStore_CorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path)
	require.Error(t, err)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.db")

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SetItem(ctx, "k", "v"))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.GetItem(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	s, err := New(Options{Backend: BackendMemory, QuotaBytes: 4})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
	assert.ErrorIs(t, s.SetItem(context.Background(), "key", "value"), ErrQuotaExceeded)

	s, err = New(Options{Backend: BackendFile, Path: filepath.Join(dir, "a.json")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = New(Options{Backend: BackendSQLite, Path: filepath.Join(dir, "a.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	s.Close()

	_, err = New(Options{Backend: BackendFile})
	require.Error(t, err)

	_, err = New(Options{Backend: "indexeddb"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}
