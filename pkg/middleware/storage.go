package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/hjemme/inventar/pkg/context"
	"github.com/hjemme/inventar/pkg/internal/storage"
	"github.com/hjemme/inventar/pkg/queue"
)

// StorageMiddleware injects the storage manager into request contexts so
// handlers and services can reach the DB and object store clients.
func StorageMiddleware(manager *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithStorageManager(c.Request.Context(), manager)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// QueueMiddleware injects the event queue into request contexts.
func QueueMiddleware(q *queue.Queue) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithQueue(c.Request.Context(), q)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
