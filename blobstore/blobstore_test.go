package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/neodb/internal/fs"
	"github.com/hupe1980/neodb/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewLocalStore(dir)

	require.NoError(t, store.Put(ctx, "sub/neos.csv", []byte("pdes,name\n433,Eros\n")))

	b, err := store.Open(ctx, "sub/neos.csv")
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, int64(19), b.Size())
	_, ok := b.(Mappable)
	assert.True(t, ok)

	data, err := ReadAll(b)
	require.NoError(t, err)
	assert.Equal(t, "pdes,name\n433,Eros\n", string(data))

	abs := filepath.Join(dir, "sub", "neos.csv")
	b2, err := NewLocalStore("/nonexistent").Open(ctx, abs)
	require.NoError(t, err)
	require.NoError(t, b2.Close())

	entries, err := os.ReadDir(filepath.Join(dir, "sub"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestLocalStore_PutFailureKeepsOldFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, NewLocalStore(dir).Put(ctx, "results.csv", []byte("old")))

	ffs := fs.NewFaultyFS(nil)
	ffs.AddRule(dir, fs.Fault{FailAfterBytes: -1, FailOnSync: true})
	store := NewLocalStore(dir, WithFileSystem(ffs))

	err := store.Put(ctx, "results.csv", []byte("new"))
	require.ErrorIs(t, err, fs.ErrInjected)

	data, err := os.ReadFile(filepath.Join(dir, "results.csv"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestLocalStore_NotFound(t *testing.T) {
	_, err := NewLocalStore(t.TempDir()).Open(context.Background(), "missing.csv")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte(`{"count":"0"}`)
	require.NoError(t, store.Put(ctx, "cad.json", data))
	data[0] = 'X'

	b, err := store.Open(ctx, "cad.json")
	require.NoError(t, err)
	got, err := io.ReadAll(NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, `{"count":"0"}`, string(got))

	got, err = ReadAll(b)
	require.NoError(t, err)
	assert.Equal(t, `{"count":"0"}`, string(got))
	require.NoError(t, b.Close())

	_, err = store.Open(ctx, "neos.csv")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "out/a.csv", nil))
	assert.Equal(t, []string{"out/a.csv"}, store.List("out/"))
	assert.Equal(t, []string{"cad.json", "out/a.csv"}, store.List(""))
}

func TestThrottledStore(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	require.NoError(t, inner.Put(ctx, "neos.csv", []byte("pdes\n433\n")))

	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})
	store := NewThrottledStore(inner, rc)

	b, err := store.Open(ctx, "neos.csv")
	require.NoError(t, err)
	_, ok := b.(Mappable)
	assert.False(t, ok)

	data, err := ReadAll(b)
	require.NoError(t, err)
	assert.Equal(t, "pdes\n433\n", string(data))

	require.NoError(t, store.Put(ctx, "out.csv", []byte("x")))
	assert.Equal(t, []string{"out.csv"}, inner.List("out"))
}

func TestThrottledStore_Cancelled(t *testing.T) {
	inner := NewMemoryStore()
	require.NoError(t, inner.Put(context.Background(), "big", make([]byte, 4<<20)))

	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})
	ctx, cancel := context.WithCancel(context.Background())
	b, err := NewThrottledStore(inner, rc).Open(ctx, "big")
	require.NoError(t, err)

	cancel()
	_, err = ReadAll(b)
	assert.ErrorIs(t, err, context.Canceled)
}

type readOnly struct{ Store }

func TestThrottledStore_ReadOnly(t *testing.T) {
	store := NewThrottledStore(readOnly{NewMemoryStore()}, nil)
	assert.ErrorIs(t, store.Put(context.Background(), "x", nil), ErrReadOnly)
}
