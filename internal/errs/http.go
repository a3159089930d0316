package errs

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// HTTPStatus maps a service error to the status code a handler should answer with.
func HTTPStatus(err error) int {
	var verr *ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
