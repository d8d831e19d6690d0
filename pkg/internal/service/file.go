package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hjemme/inventar/pkg/configs"
	ctxPkg "github.com/hjemme/inventar/pkg/context"
	"github.com/hjemme/inventar/pkg/internal/model"
	"github.com/hjemme/inventar/pkg/internal/repository"
	s3c "github.com/hjemme/inventar/pkg/internal/storage/s3"
	nlog "github.com/hjemme/inventar/pkg/log"
	"github.com/hjemme/inventar/pkg/queue"

	"gorm.io/gorm"
)

// FileService bridges FileInfo rows and blobs in the flat files bucket.
// Object keys are "{id}-{hash}".
type FileService struct {
	store  ObjectStore
	files  *repository.FileInfoRepository
	q      *queue.Queue
	bucket string
}

// NewFileService builds the service from the clients carried in the request
// context.
func NewFileService(ctx context.Context) *FileService {
	var db *gorm.DB
	if dbc := ctxPkg.GetDBClient(ctx); dbc != nil {
		db = dbc.GetDB()
	}

	var store ObjectStore
	if s3cli := ctxPkg.GetS3Client(ctx); s3cli != nil {
		store = s3cli
	}

	return NewFileServiceWith(store, db, ctxPkg.GetQueue(ctx), configs.GetConfig().S3.FilesBucket)
}

// NewFileServiceWith builds the service from explicit collaborators.
func NewFileServiceWith(store ObjectStore, db *gorm.DB, q *queue.Queue, bucket string) *FileService {
	var files *repository.FileInfoRepository
	if db != nil {
		files = repository.NewFileInfoRepository(db)
	}

	return &FileService{store: store, files: files, q: q, bucket: bucket}
}

// objectKey derives the object store key for a file row.
func objectKey(id int32, hash string) string {
	return fmt.Sprintf("%d-%s", id, hash)
}

// Insert stores the content. The metadata row is written first so the blob
// key can carry the assigned id. If the blob write then fails the row stays
// behind as a dangling row; it is logged, not rolled back, and reads as
// NotFound later.
func (s *FileService) Insert(ctx context.Context, content []byte) error {
	hash := digest(content)

	info := model.FileInfo{Hash: hash, ObjectStorageLocation: s.bucket}
	if err := s.files.Create(ctx, &info); err != nil {
		observeBlobOp("file", "insert", "error")

		return err
	}

	key := objectKey(info.ID, hash)
	if err := s.store.PutBlob(ctx, s.bucket, key, content); err != nil {
		observeBlobOp("file", "insert", "error")
		nlog.Logger().Error().Err(err).
			Int32("id", info.ID).
			Str("hash", hash).
			Msg("blob write failed after metadata insert, row is dangling")

		return fmt.Errorf("insert file: %w: %w", ErrObjectStore, err)
	}

	observeBlobOp("file", "insert", "ok")
	observeBlobBytes("file", "insert", len(content))
	publishBlobEvent(s.q, queue.TopicBlobStored, "file", s.bucket, key, hash, int64(len(content)))

	return nil
}

// Read returns the blob bytes for the given row id. A missing row or a
// missing blob both surface as NotFound.
func (s *FileService) Read(ctx context.Context, id int32) ([]byte, error) {
	info, err := s.files.GetByID(ctx, id)
	if err != nil {
		observeBlobOp("file", "read", "error")

		return nil, err
	}

	data, err := s.store.GetBlob(ctx, info.ObjectStorageLocation, objectKey(info.ID, info.Hash))
	if err != nil {
		observeBlobOp("file", "read", "error")
		if errors.Is(err, s3c.ErrObjectNotFound) {
			return nil, fmt.Errorf("read file id %d: %w", id, repository.ErrNotFound)
		}

		return nil, fmt.Errorf("read file id %d: %w: %w", id, ErrObjectStore, err)
	}

	observeBlobOp("file", "read", "ok")
	observeBlobBytes("file", "read", len(data))

	return data, nil
}

// Delete removes the blob, then the row. The blob goes first: a crash in
// between leaves a dangling row (NotFound on the next read), never an
// unreferenced blob.
func (s *FileService) Delete(ctx context.Context, id int32) error {
	info, err := s.files.GetByID(ctx, id)
	if err != nil {
		observeBlobOp("file", "delete", "error")

		return err
	}

	key := objectKey(info.ID, info.Hash)
	if err := s.store.RemoveBlob(ctx, info.ObjectStorageLocation, key); err != nil {
		observeBlobOp("file", "delete", "error")

		return fmt.Errorf("delete file id %d: %w: %w", id, ErrObjectStore, err)
	}

	if err := s.files.Delete(ctx, id); err != nil {
		observeBlobOp("file", "delete", "error")

		return err
	}

	observeBlobOp("file", "delete", "ok")
	publishBlobEvent(s.q, queue.TopicBlobDeleted, "file", info.ObjectStorageLocation, key, info.Hash, 0)

	return nil
}

// List returns all file metadata rows.
func (s *FileService) List(ctx context.Context) ([]model.FileInfo, error) {
	return s.files.List(ctx)
}
