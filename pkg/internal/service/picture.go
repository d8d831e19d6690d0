package service

import (
	"context"
	"errors"
	"fmt"

	ctxPkg "github.com/hjemme/inventar/pkg/context"
	"github.com/hjemme/inventar/pkg/internal/model"
	"github.com/hjemme/inventar/pkg/internal/repository"
	s3c "github.com/hjemme/inventar/pkg/internal/storage/s3"
	nlog "github.com/hjemme/inventar/pkg/log"
	"github.com/hjemme/inventar/pkg/queue"

	"gorm.io/gorm"
)

// PictureService bridges PictureInfo rows and image blobs. Picture blobs are
// partitioned per owning item: bucket "item-{itemId}", key is the bare hash.
type PictureService struct {
	store    ObjectStore
	pictures *repository.PictureInfoRepository
	q        *queue.Queue
}

// NewPictureService builds the service from the clients carried in the
// request context.
func NewPictureService(ctx context.Context) *PictureService {
	var db *gorm.DB
	if dbc := ctxPkg.GetDBClient(ctx); dbc != nil {
		db = dbc.GetDB()
	}

	var store ObjectStore
	if s3cli := ctxPkg.GetS3Client(ctx); s3cli != nil {
		store = s3cli
	}

	return NewPictureServiceWith(store, db, ctxPkg.GetQueue(ctx))
}

// NewPictureServiceWith builds the service from explicit collaborators.
func NewPictureServiceWith(store ObjectStore, db *gorm.DB, q *queue.Queue) *PictureService {
	var pictures *repository.PictureInfoRepository
	if db != nil {
		pictures = repository.NewPictureInfoRepository(db)
	}

	return &PictureService{store: store, pictures: pictures, q: q}
}

// itemBucket derives the per-item bucket name.
func itemBucket(itemID int32) string {
	return fmt.Sprintf("item-%d", itemID)
}

// Insert stores the picture. The blob is written first, then the metadata
// row; if the row insert fails the blob is leaked. The leak is logged but
// never reclaimed. itemID is not checked against the items table.
func (s *PictureService) Insert(ctx context.Context, itemID int32, description string, picture []byte) error {
	hash := digest(picture)
	bucket := itemBucket(itemID)

	if err := s.store.PutBlob(ctx, bucket, hash, picture); err != nil {
		observeBlobOp("picture", "insert", "error")

		return fmt.Errorf("insert picture: %w: %w", ErrObjectStore, err)
	}

	info := model.PictureInfo{
		ItemID:                itemID,
		Description:           description,
		Hash:                  hash,
		ObjectStorageLocation: bucket,
	}
	if err := s.pictures.Create(ctx, &info); err != nil {
		observeBlobOp("picture", "insert", "error")
		nlog.Logger().Error().Err(err).
			Int32("item_id", itemID).
			Str("hash", hash).
			Msg("metadata insert failed after blob write, blob is orphaned")

		return err
	}

	observeBlobOp("picture", "insert", "ok")
	observeBlobBytes("picture", "insert", len(picture))
	publishBlobEvent(s.q, queue.TopicBlobStored, "picture", bucket, hash, hash, int64(len(picture)))

	return nil
}

// Read returns the picture bytes for the given row id.
func (s *PictureService) Read(ctx context.Context, id int32) ([]byte, error) {
	info, err := s.pictures.GetByID(ctx, id)
	if err != nil {
		observeBlobOp("picture", "read", "error")

		return nil, err
	}

	data, err := s.store.GetBlob(ctx, info.ObjectStorageLocation, info.Hash)
	if err != nil {
		observeBlobOp("picture", "read", "error")
		if errors.Is(err, s3c.ErrObjectNotFound) {
			return nil, fmt.Errorf("read picture id %d: %w", id, repository.ErrNotFound)
		}

		return nil, fmt.Errorf("read picture id %d: %w: %w", id, ErrObjectStore, err)
	}

	observeBlobOp("picture", "read", "ok")
	observeBlobBytes("picture", "read", len(data))

	return data, nil
}

// Delete removes the blob, then the row (same ordering rationale as files).
func (s *PictureService) Delete(ctx context.Context, id int32) error {
	info, err := s.pictures.GetByID(ctx, id)
	if err != nil {
		observeBlobOp("picture", "delete", "error")

		return err
	}

	if err := s.store.RemoveBlob(ctx, info.ObjectStorageLocation, info.Hash); err != nil {
		observeBlobOp("picture", "delete", "error")

		return fmt.Errorf("delete picture id %d: %w: %w", id, ErrObjectStore, err)
	}

	if err := s.pictures.Delete(ctx, id); err != nil {
		observeBlobOp("picture", "delete", "error")

		return err
	}

	observeBlobOp("picture", "delete", "ok")
	publishBlobEvent(s.q, queue.TopicBlobDeleted, "picture", info.ObjectStorageLocation, info.Hash, info.Hash, 0)

	return nil
}

// List returns all picture metadata rows.
func (s *PictureService) List(ctx context.Context) ([]model.PictureInfo, error) {
	return s.pictures.List(ctx)
}
