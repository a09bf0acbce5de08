package httpx

import (
	"errors"
	"net/http"

	"github.com/inkwell-blog/inkwell/internal/shared"
)

// Error kind slugs carried in the envelope. The mapping to status codes is fixed.
const (
	KindBadRequest    = "bad request"
	KindUnauthorized  = "unauthorized"
	KindForbidden     = "forbidden"
	KindNotFound      = "not found"
	KindNotAllowed    = "not allowed"
	KindInternalError = "internal error"
)

// RespondError maps domain errors onto the error envelope.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrValidation), errors.Is(err, shared.ErrDuplicate):
		Error(w, http.StatusBadRequest, KindBadRequest, err.Error())
	case errors.Is(err, shared.ErrUnauthorized):
		Error(w, http.StatusUnauthorized, KindUnauthorized, err.Error())
	case errors.Is(err, shared.ErrForbidden):
		Error(w, http.StatusForbidden, KindForbidden, err.Error())
	case errors.Is(err, shared.ErrNotFound):
		Error(w, http.StatusNotFound, KindNotFound, err.Error())
	default:
		Error(w, http.StatusInternalServerError, KindInternalError, "")
	}
}
