// internal/api/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"contingent-booking-api-server/internal/api/response"
	"contingent-booking-api-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// writeError maps service errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	var verr service.ValidationError
	switch {
	case errors.As(err, &verr):
		response.FieldError(c, http.StatusBadRequest, response.CodeValidation, verr.Field, verr.Error())
	case errors.Is(err, service.ErrMultipleContingents):
		response.Error(c, http.StatusBadRequest, response.CodeMultipleContingents, err.Error())
	case errors.Is(err, service.ErrBookingNotFound), errors.Is(err, service.ErrProvinceNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
	case errors.Is(err, service.ErrBookingCodeExhausted):
		response.Error(c, http.StatusConflict, response.CodeConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, err.Error())
	case errors.Is(err, service.ErrExportDisabled):
		response.Error(c, http.StatusServiceUnavailable, response.CodeUnavailable, err.Error())
	default:
		_ = c.Error(err)
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Internal server error")
	}
}

// bindError reports a malformed request body or query.
func bindError(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, response.CodeValidation, err.Error())
}
