// Package handle implements the HTTP request handlers.
package handle

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	ctxPkg "github.com/hjemme/inventar/pkg/context"
	"github.com/hjemme/inventar/pkg/internal/repository"
)

// dbFrom pulls the relational store handle out of the request context. When
// the store is not wired the request is answered 500 and ok is false.
func dbFrom(c *gin.Context) (*gorm.DB, bool) {
	dbc := ctxPkg.GetDBClient(c.Request.Context())
	if dbc == nil {
		c.String(http.StatusInternalServerError, "storage not initialized")
		return nil, false
	}

	return dbc.GetDB(), true
}

// idParam parses the :id path parameter. A non-numeric id is answered 400
// and ok is false.
func idParam(c *gin.Context) (int32, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid id: %s", c.Param("id"))
		return 0, false
	}

	return int32(id), true
}

// respondError maps a repository or service error to its status code and
// writes the error string as the plain text body.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, repository.ErrNotFound) {
		status = http.StatusNotFound
	}

	c.String(status, "%s", err.Error())
}
