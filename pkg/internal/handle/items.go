package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hjemme/inventar/pkg/internal/model"
	"github.com/hjemme/inventar/pkg/internal/repository"
	"github.com/hjemme/inventar/pkg/internal/types"
)

// ListItems GET /api/items.
func ListItems(c *gin.Context) {
	db, ok := dbFrom(c)
	if !ok {
		return
	}

	items, err := repository.NewItemRepository(db).List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetItem GET /api/items/:id.
func GetItem(c *gin.Context) {
	db, ok := dbFrom(c)
	if !ok {
		return
	}

	id, ok := idParam(c)
	if !ok {
		return
	}

	item, err := repository.NewItemRepository(db).GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// CreateItem POST /api/items.
func CreateItem(c *gin.Context) {
	db, ok := dbFrom(c)
	if !ok {
		return
	}

	var payload types.NewItem
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.String(http.StatusBadRequest, "%s", err.Error())
		return
	}

	item := model.Item{
		Name:        payload.Name,
		Description: payload.Description,
		DateOrigin:  payload.DateOrigin,
	}
	if err := repository.NewItemRepository(db).Create(c.Request.Context(), &item); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// UpdateItem PUT /api/items. The body carries the full record including id.
func UpdateItem(c *gin.Context) {
	db, ok := dbFrom(c)
	if !ok {
		return
	}

	var item model.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.String(http.StatusBadRequest, "%s", err.Error())
		return
	}

	if err := repository.NewItemRepository(db).Update(c.Request.Context(), &item); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteItem DELETE /api/items/:id.
func DeleteItem(c *gin.Context) {
	db, ok := dbFrom(c)
	if !ok {
		return
	}

	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := repository.NewItemRepository(db).Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
