package v1

import (
	"errors"
	"net/http"

	"github.com/cashfolio/backend/internal/models"
	"github.com/cashfolio/backend/internal/storage"
)

type httpError struct {
	Error string `json:"error" example:"there is no account matching your query"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, storage.ErrNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrNotOwner) {
		return http.StatusForbidden
	}

	if errors.Is(err, models.ErrCategoryInUse) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}

// Attachment errors
var (
	errNoFilePost = errors.New("you must send a file in the \"file\" form field of this endpoint")
)
