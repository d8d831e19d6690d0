// Package api mounts the HTTP route groups on a gin engine.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/hjemme/inventar/pkg/internal/router"
)

// RegisterGroups binds the /api and /status route groups.
func RegisterGroups(e *gin.Engine) *gin.Engine {
	router.RegisterAPIRoutes(e.Group("/api"))
	router.RegisterStatusRoutes(e.Group("/status"))

	return e
}
