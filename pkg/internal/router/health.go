package router

import (
	"github.com/gin-gonic/gin"

	"github.com/hjemme/inventar/pkg/internal/handle"
)

// RegisterStatusRoutes registers the health probes under the given group
// (assumed to be /status).
func RegisterStatusRoutes(g *gin.RouterGroup) {
	healthRoutes := g.Group("/health")
	{
		healthRoutes.GET("", handle.Health)
		healthRoutes.GET("/db", handle.HealthDB)
		healthRoutes.GET("/s3", handle.HealthS3)
	}
}
