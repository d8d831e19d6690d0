package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hjemme/inventar/pkg/internal/model"
	"github.com/hjemme/inventar/pkg/internal/repository"
	"github.com/hjemme/inventar/pkg/internal/types"
)

// ListLocations GET /api/locations.
func ListLocations(c *gin.Context) {
	db, ok := dbFrom(c)
	if !ok {
		return
	}

	locations, err := repository.NewLocationRepository(db).List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, locations)
}

// GetLocation GET /api/locations/:id.
func GetLocation(c *gin.Context) {
	db, ok := dbFrom(c)
	if !ok {
		return
	}

	id, ok := idParam(c)
	if !ok {
		return
	}

	location, err := repository.NewLocationRepository(db).GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, location)
}

// CreateLocation POST /api/locations.
func CreateLocation(c *gin.Context) {
	db, ok := dbFrom(c)
	if !ok {
		return
	}

	var payload types.NewLocation
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.String(http.StatusBadRequest, "%s", err.Error())
		return
	}

	location := model.Location{Name: payload.Name, Description: payload.Description}
	if err := repository.NewLocationRepository(db).Create(c.Request.Context(), &location); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, location)
}

// UpdateLocation PUT /api/locations.
func UpdateLocation(c *gin.Context) {
	db, ok := dbFrom(c)
	if !ok {
		return
	}

	var location model.Location
	if err := c.ShouldBindJSON(&location); err != nil {
		c.String(http.StatusBadRequest, "%s", err.Error())
		return
	}

	if err := repository.NewLocationRepository(db).Update(c.Request.Context(), &location); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, location)
}

// DeleteLocation DELETE /api/locations/:id.
func DeleteLocation(c *gin.Context) {
	db, ok := dbFrom(c)
	if !ok {
		return
	}

	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := repository.NewLocationRepository(db).Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
