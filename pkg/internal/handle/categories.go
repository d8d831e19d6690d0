package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hjemme/inventar/pkg/internal/model"
	"github.com/hjemme/inventar/pkg/internal/repository"
	"github.com/hjemme/inventar/pkg/internal/types"
)

// ListCategories GET /api/categories.
func ListCategories(c *gin.Context) {
	db, ok := dbFrom(c)
	if !ok {
		return
	}

	categories, err := repository.NewCategoryRepository(db).List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GetCategory GET /api/categories/:id.
func GetCategory(c *gin.Context) {
	db, ok := dbFrom(c)
	if !ok {
		return
	}

	id, ok := idParam(c)
	if !ok {
		return
	}

	category, err := repository.NewCategoryRepository(db).GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// CreateCategory POST /api/categories.
func CreateCategory(c *gin.Context) {
	db, ok := dbFrom(c)
	if !ok {
		return
	}

	var payload types.NewCategory
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.String(http.StatusBadRequest, "%s", err.Error())
		return
	}

	category := model.Category{Name: payload.Name, Description: payload.Description}
	if err := repository.NewCategoryRepository(db).Create(c.Request.Context(), &category); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// UpdateCategory PUT /api/categories.
func UpdateCategory(c *gin.Context) {
	db, ok := dbFrom(c)
	if !ok {
		return
	}

	var category model.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.String(http.StatusBadRequest, "%s", err.Error())
		return
	}

	if err := repository.NewCategoryRepository(db).Update(c.Request.Context(), &category); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory DELETE /api/categories/:id.
func DeleteCategory(c *gin.Context) {
	db, ok := dbFrom(c)
	if !ok {
		return
	}

	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := repository.NewCategoryRepository(db).Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
