// Package context carries the shared application resources (storage manager,
// event queue) through request contexts.
package context

import (
	"context"

	"github.com/hjemme/inventar/pkg/internal/storage"
	dbc "github.com/hjemme/inventar/pkg/internal/storage/db"
	"github.com/hjemme/inventar/pkg/queue"
)

type ContextKey string

const (
	StorageManagerKey ContextKey = "storageManager"
	QueueKey          ContextKey = "eventQueue"
)

// WithStorageManager stores the Manager in the context.
func WithStorageManager(ctx context.Context, mgr *storage.Manager) context.Context {
	return context.WithValue(ctx, StorageManagerKey, mgr)
}

// GetManager retrieves the Manager from the context.
func GetManager(ctx context.Context) *storage.Manager {
	if mgr, ok := ctx.Value(StorageManagerKey).(*storage.Manager); ok {
		return mgr
	}

	return nil
}

// GetS3Client retrieves the object store client from the context.
func GetS3Client(ctx context.Context) storage.ObjectStore {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetS3Client()
	}

	return nil
}

// GetDBClient retrieves the relational store client from the context.
func GetDBClient(ctx context.Context) *dbc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetDBClient()
	}

	return nil
}

// WithQueue stores the event queue in the context.
func WithQueue(ctx context.Context, q *queue.Queue) context.Context {
	return context.WithValue(ctx, QueueKey, q)
}

// GetQueue retrieves the event queue from the context.
func GetQueue(ctx context.Context) *queue.Queue {
	if q, ok := ctx.Value(QueueKey).(*queue.Queue); ok {
		return q
	}

	return nil
}
