// Package storage aggregates the storage clients (relational store and object
// store) into a single manager built once at startup.
package storage

import (
	"context"
	"sync"

	"github.com/hjemme/inventar/pkg/configs"
	dbc "github.com/hjemme/inventar/pkg/internal/storage/db"
	s3c "github.com/hjemme/inventar/pkg/internal/storage/s3"
	nlog "github.com/hjemme/inventar/pkg/log"
)

// ObjectStore is the object store surface the rest of the application
// consumes. *s3.Client implements it; tests substitute in-memory fakes.
type ObjectStore interface {
	PutBlob(ctx context.Context, bucket, key string, data []byte) error
	GetBlob(ctx context.Context, bucket, key string) ([]byte, error)
	RemoveBlob(ctx context.Context, bucket, key string) error
	StatBlob(ctx context.Context, bucket, key string) (bool, error)
	HealthCheck(ctx context.Context) error
}

var _ ObjectStore = (*s3c.Client)(nil)

// Manager aggregates all storage resources.
type Manager struct {
	S3 ObjectStore
	DB *dbc.Client
}

var (
	mgr   *Manager
	mgrMu sync.Mutex
)

// Init initializes the default storage manager from the global configuration.
// Repeated calls return the already initialized instance; a failed attempt
// does not latch, the next call retries from scratch.
func Init(ctx context.Context) (*Manager, error) {
	mgrMu.Lock()
	defer mgrMu.Unlock()

	if mgr != nil {
		return mgr, nil
	}

	cfg := configs.GetConfig()
	m := &Manager{}

	dbi, err := dbc.New(ctx, &cfg.DB)
	if err != nil {
		return nil, err
	}
	m.DB = dbi

	s3i, err := s3c.New(ctx, &cfg.S3)
	if err != nil {
		return nil, err
	}
	m.S3 = s3i

	mgr = m

	nlog.Logger().Info().Msg("storage manager initialized")

	return mgr, nil
}

// GetS3Client returns the object store client.
func (m *Manager) GetS3Client() ObjectStore {
	return m.S3
}

// GetDBClient returns the relational store client.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}
