// Package service implements the content store bridge: one logical
// put/get/delete blob operation backed by a metadata row in the relational
// store and a blob in the object store. The two writes are not covered by a
// shared transaction; the accepted failure windows are documented on each
// operation and logged when hit.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	nlog "github.com/hjemme/inventar/pkg/log"
	"github.com/hjemme/inventar/pkg/metrics"
	"github.com/hjemme/inventar/pkg/queue"
)

// ErrObjectStore reports an object store connectivity, bucket or blob failure.
var ErrObjectStore = errors.New("object store failure")

// ObjectStore is the slice of the object store client the bridge needs.
// *s3.Client satisfies it; tests substitute an in-memory implementation.
type ObjectStore interface {
	PutBlob(ctx context.Context, bucket, key string, data []byte) error
	GetBlob(ctx context.Context, bucket, key string) ([]byte, error)
	RemoveBlob(ctx context.Context, bucket, key string) error
	StatBlob(ctx context.Context, bucket, key string) (bool, error)
}

// digest returns the SHA-256 hex digest of the content. The digest is the
// address of the blob; it is trusted on write and never re-checked on read.
func digest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func publishBlobEvent(q *queue.Queue, topic, store, bucket, key, hash string, size int64) {
	if q == nil {
		return
	}

	err := queue.Publish(q, topic, queue.BlobEventPayload{
		Blob:  queue.BlobRef{Bucket: bucket, ObjectKey: key, Hash: hash, Size: size},
		Store: store,
	})
	if err != nil {
		nlog.Logger().Warn().Err(err).Str("topic", topic).Msg("event publish failed")
	}
}

func observeBlobOp(store, operation, outcome string) {
	metrics.BlobOperations.WithLabelValues(store, operation, outcome).Inc()
}

func observeBlobBytes(store, operation string, size int) {
	metrics.BlobBytes.WithLabelValues(store, operation).Observe(float64(size))
}
