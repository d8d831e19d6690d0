package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hjemme/inventar/pkg/internal/model"
	"github.com/hjemme/inventar/pkg/internal/repository"
	"github.com/hjemme/inventar/pkg/internal/types"
)

// Gifters are append-only; there is no update or delete route.

// ListGifters GET /api/gifters.
func ListGifters(c *gin.Context) {
	db, ok := dbFrom(c)
	if !ok {
		return
	}

	gifters, err := repository.NewGifterRepository(db).List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gifters)
}

// GetGifter GET /api/gifters/:id.
func GetGifter(c *gin.Context) {
	db, ok := dbFrom(c)
	if !ok {
		return
	}

	id, ok := idParam(c)
	if !ok {
		return
	}

	gifter, err := repository.NewGifterRepository(db).GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gifter)
}

// CreateGifter POST /api/gifters.
func CreateGifter(c *gin.Context) {
	db, ok := dbFrom(c)
	if !ok {
		return
	}

	var payload types.NewGifter
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.String(http.StatusBadRequest, "%s", err.Error())
		return
	}

	gifter := model.Gifter{
		Firstname: payload.Firstname,
		Lastname:  payload.Lastname,
		Notes:     payload.Notes,
		DateAdded: payload.DateAdded,
	}
	if err := repository.NewGifterRepository(db).Create(c.Request.Context(), &gifter); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gifter)
}
