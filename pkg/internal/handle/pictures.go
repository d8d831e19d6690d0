package handle

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hjemme/inventar/pkg/internal/service"
)

// ListPictures GET /api/pictures. Returns the metadata rows, not blobs.
func ListPictures(c *gin.Context) {
	svc := service.NewPictureService(c.Request.Context())

	infos, err := svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, infos)
}

// UploadPicture POST /api/pictures?item_id=N&description=... with the raw
// image bytes as the request body.
func UploadPicture(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Query("item_id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid item_id: %s", c.Query("item_id"))
		return
	}

	picture, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, "%s", err.Error())
		return
	}

	svc := service.NewPictureService(c.Request.Context())
	if err := svc.Insert(c.Request.Context(), int32(itemID), c.Query("description"), picture); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// GetPicture GET /api/pictures/:id. Responds with the raw image bytes.
func GetPicture(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	svc := service.NewPictureService(c.Request.Context())

	picture, err := svc.Read(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/octet-stream", picture)
}

// DeletePicture DELETE /api/pictures/:id.
func DeletePicture(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	svc := service.NewPictureService(c.Request.Context())
	if err := svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
