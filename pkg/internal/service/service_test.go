package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hjemme/inventar/pkg/internal/model"
	"github.com/hjemme/inventar/pkg/internal/repository"
	"github.com/hjemme/inventar/pkg/internal/service"
	s3c "github.com/hjemme/inventar/pkg/internal/storage/s3"
)

// fakeStore is an in-memory stand-in for the object store client.
type fakeStore struct {
	mu      sync.Mutex
	buckets map[string]map[string][]byte

	failPut bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{buckets: map[string]map[string][]byte{}}
}

func (f *fakeStore) PutBlob(_ context.Context, bucket, key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failPut {
		return errors.New("put refused")
	}

	if f.buckets[bucket] == nil {
		f.buckets[bucket] = map[string][]byte{}
	}

	f.buckets[bucket][key] = append([]byte(nil), data...)

	return nil
}

func (f *fakeStore) GetBlob(_ context.Context, bucket, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.buckets[bucket][key]
	if !ok {
		return nil, fmt.Errorf("get %s/%s: %w", bucket, key, s3c.ErrObjectNotFound)
	}

	return append([]byte(nil), data...), nil
}

func (f *fakeStore) RemoveBlob(_ context.Context, bucket, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.buckets[bucket], key)

	return nil
}

func (f *fakeStore) StatBlob(_ context.Context, bucket, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.buckets[bucket][key]

	return ok, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(model.All()...))

	return db
}

func hexDigest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func TestFileRoundTrip(t *testing.T) {
	store := newFakeStore()
	db := newTestDB(t)
	svc := service.NewFileServiceWith(store, db, nil, "files")
	ctx := context.Background()

	content := []byte("the quick brown fox")
	require.NoError(t, svc.Insert(ctx, content))

	infos, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, int32(1), infos[0].ID)
	assert.Equal(t, hexDigest(content), infos[0].Hash)
	assert.Equal(t, "files", infos[0].ObjectStorageLocation)

	got, err := svc.Read(ctx, infos[0].ID)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	// The object key carries the row id in front of the digest.
	_, ok := store.buckets["files"][fmt.Sprintf("1-%s", infos[0].Hash)]
	assert.True(t, ok)
}

func TestFileDelete(t *testing.T) {
	store := newFakeStore()
	db := newTestDB(t)
	svc := service.NewFileServiceWith(store, db, nil, "files")
	ctx := context.Background()

	require.NoError(t, svc.Insert(ctx, []byte("payload")))
	require.NoError(t, svc.Delete(ctx, 1))

	_, err := svc.Read(ctx, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.Empty(t, store.buckets["files"])
}

func TestFileInsertKeepsRowOnBlobFailure(t *testing.T) {
	store := newFakeStore()
	store.failPut = true
	db := newTestDB(t)
	svc := service.NewFileServiceWith(store, db, nil, "files")
	ctx := context.Background()

	err := svc.Insert(ctx, []byte("doomed"))
	assert.ErrorIs(t, err, service.ErrObjectStore)

	// The metadata row was written before the blob attempt and stays behind.
	infos, listErr := svc.List(ctx)
	require.NoError(t, listErr)
	assert.Len(t, infos, 1)

	_, err = svc.Read(ctx, infos[0].ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFileReadMissingRow(t *testing.T) {
	svc := service.NewFileServiceWith(newFakeStore(), newTestDB(t), nil, "files")

	_, err := svc.Read(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPictureRoundTrip(t *testing.T) {
	store := newFakeStore()
	db := newTestDB(t)
	svc := service.NewPictureServiceWith(store, db, nil)
	ctx := context.Background()

	picture := []byte{1, 2, 3, 4, 5}
	require.NoError(t, svc.Insert(ctx, 7, "Bilde av stol", picture))

	infos, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, int32(7), infos[0].ItemID)
	assert.Equal(t, "Bilde av stol", infos[0].Description)
	assert.Equal(t, hexDigest(picture), infos[0].Hash)
	assert.Equal(t, "item-7", infos[0].ObjectStorageLocation)

	got, err := svc.Read(ctx, infos[0].ID)
	require.NoError(t, err)
	assert.Equal(t, picture, got)

	// Picture blobs live in the per-item bucket under the bare digest.
	_, ok := store.buckets["item-7"][infos[0].Hash]
	assert.True(t, ok)
}

func TestPictureDelete(t *testing.T) {
	store := newFakeStore()
	db := newTestDB(t)
	svc := service.NewPictureServiceWith(store, db, nil)
	ctx := context.Background()

	require.NoError(t, svc.Insert(ctx, 2, "front", []byte{9, 9, 9}))
	require.NoError(t, svc.Delete(ctx, 1))

	_, err := svc.Read(ctx, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.Empty(t, store.buckets["item-2"])
}

func TestPictureBucketsDoNotCollide(t *testing.T) {
	store := newFakeStore()
	db := newTestDB(t)
	svc := service.NewPictureServiceWith(store, db, nil)
	ctx := context.Background()

	same := []byte("identical bytes")
	require.NoError(t, svc.Insert(ctx, 1, "a", same))
	require.NoError(t, svc.Insert(ctx, 2, "b", same))

	assert.Len(t, store.buckets["item-1"], 1)
	assert.Len(t, store.buckets["item-2"], 1)

	// Deleting one item's picture leaves the other item's copy alone.
	require.NoError(t, svc.Delete(ctx, 1))

	got, err := svc.Read(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, same, got)
}

func TestPictureReadMissingBlob(t *testing.T) {
	store := newFakeStore()
	db := newTestDB(t)
	svc := service.NewPictureServiceWith(store, db, nil)
	ctx := context.Background()

	require.NoError(t, svc.Insert(ctx, 4, "gone", []byte{1}))
	require.NoError(t, store.RemoveBlob(ctx, "item-4", hexDigest([]byte{1})))

	_, err := svc.Read(ctx, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
