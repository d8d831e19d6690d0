// Package router binds paths to handlers. It only wires the gin engine;
// handler implementations live in pkg/internal/handle.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/hjemme/inventar/pkg/internal/handle"
)

// RegisterAPIRoutes registers the inventory API under the given group
// (assumed to be /api).
func RegisterAPIRoutes(g *gin.RouterGroup) {
	itemRoutes := g.Group("/items")
	{
		itemRoutes.GET("", handle.ListItems)
		itemRoutes.POST("", handle.CreateItem)
		itemRoutes.PUT("", handle.UpdateItem)
		itemRoutes.GET("/:id", handle.GetItem)
		itemRoutes.DELETE("/:id", handle.DeleteItem)
	}

	locationRoutes := g.Group("/locations")
	{
		locationRoutes.GET("", handle.ListLocations)
		locationRoutes.POST("", handle.CreateLocation)
		locationRoutes.PUT("", handle.UpdateLocation)
		locationRoutes.GET("/:id", handle.GetLocation)
		locationRoutes.DELETE("/:id", handle.DeleteLocation)
	}

	categoryRoutes := g.Group("/categories")
	{
		categoryRoutes.GET("", handle.ListCategories)
		categoryRoutes.POST("", handle.CreateCategory)
		categoryRoutes.PUT("", handle.UpdateCategory)
		categoryRoutes.GET("/:id", handle.GetCategory)
		categoryRoutes.DELETE("/:id", handle.DeleteCategory)
	}

	// Gifters are append-only, no PUT or DELETE.
	gifterRoutes := g.Group("/gifters")
	{
		gifterRoutes.GET("", handle.ListGifters)
		gifterRoutes.POST("", handle.CreateGifter)
		gifterRoutes.GET("/:id", handle.GetGifter)
	}

	fileRoutes := g.Group("/files")
	{
		fileRoutes.POST("", handle.UploadFile)
		fileRoutes.GET("/:id", handle.DownloadFile)
		fileRoutes.DELETE("/:id", handle.DeleteFile)
	}
	g.GET("/file_infos", handle.ListFileInfos)

	pictureRoutes := g.Group("/pictures")
	{
		pictureRoutes.GET("", handle.ListPictures)
		pictureRoutes.POST("", handle.UploadPicture)
		pictureRoutes.GET("/:id", handle.GetPicture)
		pictureRoutes.DELETE("/:id", handle.DeletePicture)
	}
}
