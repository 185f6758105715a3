package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jason-czar/Sportstreams/internal/domain"
	"github.com/jason-czar/Sportstreams/pkg/log"
	"github.com/jason-czar/Sportstreams/pkg/response"
)

// writeError maps domain sentinels to HTTP status codes. Anything
// unrecognized is a store or provider failure and surfaces as a generic 500.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(c, "resource not found")
	case errors.Is(err, domain.ErrInvalidCamera):
		response.BadRequest(c, "camera does not belong to event")
	case errors.Is(err, domain.ErrInvalidTransition):
		response.Conflict(c, "invalid event status transition")
	case errors.Is(err, domain.ErrEmailTaken):
		response.Conflict(c, "email already registered")
	case errors.Is(err, domain.ErrEmptyMessage):
		response.BadRequest(c, "message body is empty")
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrSessionExpired):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, domain.ErrNotImplemented):
		response.NotImplemented(c, "this flow is not available yet")
	default:
		log.Ctx(c.Request.Context()).Error().Err(err).Msg("request failed")
		response.InternalError(c, "internal error")
	}
}
