package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hjemme/inventar/pkg/internal/service"
)

// ListFileInfos GET /api/file_infos. Returns the metadata rows, not blobs.
func ListFileInfos(c *gin.Context) {
	svc := service.NewFileService(c.Request.Context())

	infos, err := svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, infos)
}

// UploadFile POST /api/files. The request body is the raw file content.
func UploadFile(c *gin.Context) {
	content, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, "%s", err.Error())
		return
	}

	svc := service.NewFileService(c.Request.Context())
	if err := svc.Insert(c.Request.Context(), content); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// DownloadFile GET /api/files/:id. Responds with the raw blob bytes.
func DownloadFile(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	svc := service.NewFileService(c.Request.Context())

	content, err := svc.Read(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/octet-stream", content)
}

// DeleteFile DELETE /api/files/:id.
func DeleteFile(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	svc := service.NewFileService(c.Request.Context())
	if err := svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
