package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/application"
	"marketplace-backend/pkg/response"
)

// writeServiceError maps service failures onto HTTP statuses. Unrecognized
// errors become a 500 with a generic message so internals never leak.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrEmailTaken),
		errors.Is(err, application.ErrAlreadyVerified):
		response.Error(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, application.ErrInvalidOrExpiredToken):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrPasswordTooShort),
		errors.Is(err, application.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error(c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, application.ErrProductUnavailable),
		errors.Is(err, application.ErrReviewLimit),
		errors.Is(err, application.ErrInvalidStatus):
		response.Error(c, http.StatusUnprocessableEntity, err.Error(), nil)
	default:
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
	}
}
