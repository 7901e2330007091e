package storage

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/order-portal/internal/core/domain"
	"github.com/99minutos/order-portal/internal/core/ports"
)

func exerciseStorage(t *testing.T, s ports.Storage) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "auth-storage")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "auth-storage", []byte(`{"state":{"accessToken":"a"},"version":0}`)))
	got, err := s.Get(ctx, "auth-storage")
	require.NoError(t, err)
	assert.Equal(t, `{"state":{"accessToken":"a"},"version":0}`, string(got))

	require.NoError(t, s.Set(ctx, "auth-storage", []byte(`{}`)))
	got, err = s.Get(ctx, "auth-storage")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(got))
}

func TestMemory(t *testing.T) {
	exerciseStorage(t, NewMemory())
}

func TestMemory_ReturnsCopies(t *testing.T) {
	m := NewMemory()
	v := []byte("abc")
	require.NoError(t, m.Set(context.Background(), "k", v))
	v[0] = 'x'

	got, err := m.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFile(t *testing.T) {
	exerciseStorage(t, NewFile(filepath.Join(t.TempDir(), "nested")))
}

func TestFile_PermissionsAndNoTempLeftovers(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	dir := t.TempDir()
	f := NewFile(dir)
	require.NoError(t, f.Set(context.Background(), "auth-storage", []byte(`{}`)))

	info, err := os.Stat(filepath.Join(dir, "auth-storage.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFile_RejectsPathTraversal(t *testing.T) {
	f := NewFile(t.TempDir())
	assert.Error(t, f.Set(context.Background(), "../escape", []byte(`{}`)))
	_, err := f.Get(context.Background(), "a/b")
	assert.Error(t, err)
}
