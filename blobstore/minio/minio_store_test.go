package minio

import (
	"context"
	"testing"

	"github.com/hupe1980/neodb/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	bucket := "test-neodb"

	store, err := Dial("localhost:9000", "minioadmin", "minioadmin", false, bucket, "test-prefix/")
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	if _, err := store.client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := store.client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, store.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	data := []byte("pdes,name,pha,diameter\n433,Eros,N,16.84\n")
	require.NoError(t, store.Put(ctx, "neos.csv", data))
	defer func() {
		_ = store.client.RemoveObject(ctx, bucket, store.key("neos.csv"), minio.RemoveObjectOptions{})
	}()

	blob, err := store.Open(ctx, "neos.csv")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	got, err := blobstore.ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	part := make([]byte, 4)
	n, err := blob.ReadAt(part, 23)
	require.NoError(t, err)
	assert.Equal(t, "433,", string(part[:n]))
	require.NoError(t, blob.Close())

	_, err = store.Open(ctx, "missing.csv")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
