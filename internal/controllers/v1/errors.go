package v1

import (
	"errors"
	"net/http"

	"github.com/pennyflow/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no goal matching your query"`
}

// status returns the appropriate HTTP status for an error.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}
