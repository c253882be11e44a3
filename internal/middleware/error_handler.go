package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/reconciliation-service/internal/circuitbreaker"
	"github.com/guttosm/reconciliation-service/internal/domain/dto"
	"github.com/guttosm/reconciliation-service/internal/i18n"
	"github.com/guttosm/reconciliation-service/internal/logger"
)

// ErrorHandler returns a middleware that turns errors attached to the gin context into
// the standard error envelope. Handlers call c.Error and return without writing.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		requestID := GetRequestID(c)
		status, resp := errorResponse(c, err)

		log := logger.Logger()
		event := log.Error()
		if status < http.StatusInternalServerError {
			event = log.Warn()
		}
		event.
			Str("request_id", requestID).
			Str("error", err.Error()).
			Int("status_code", status).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Request error")

		if !c.Writer.Written() {
			c.JSON(status, resp.WithRequestID(requestID))
		}
	}
}

func errorResponse(c *gin.Context, err error) (int, dto.ErrorResponse) {
	var vErr *dto.ValidationError

	switch {
	case errors.Is(err, dto.ErrMissingTargetAmount):
		return http.StatusBadRequest, dto.NewError(dto.ErrCodeInvalidRequest, i18n.T(c, i18n.ErrKeyMissingTargetAmount))
	case errors.Is(err, dto.ErrMissingInvoices):
		return http.StatusBadRequest, dto.NewError(dto.ErrCodeInvalidRequest, i18n.T(c, i18n.ErrKeyMissingInvoices))
	case errors.Is(err, dto.ErrAmountOutOfRange):
		resp := dto.NewError(dto.ErrCodeInvalidRequest, i18n.T(c, i18n.ErrKeyAmountOutOfRange))
		if errors.As(err, &vErr) {
			resp = resp.WithDetail(vErr.Field, vErr.Message)
		}
		return http.StatusBadRequest, resp
	case errors.As(err, &vErr):
		return http.StatusBadRequest, dto.NewError(dto.ErrCodeInvalidRequest, i18n.T(c, i18n.ErrKeyInvalidRequest)).
			WithDetail(vErr.Field, vErr.Message)
	case errors.Is(err, dto.ErrInvalidBody):
		return http.StatusBadRequest, dto.NewError(dto.ErrCodeInvalidRequest, i18n.T(c, i18n.ErrKeyInvalidRequestBody))
	case errors.Is(err, dto.ErrInvalidQuery):
		return http.StatusBadRequest, dto.NewError(dto.ErrCodeInvalidRequest, i18n.T(c, i18n.ErrKeyInvalidQuery))
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return http.StatusServiceUnavailable, dto.NewError(dto.ErrCodeUnavailable, i18n.T(c, i18n.ErrKeyServiceUnavailable))
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, dto.NewError(dto.ErrCodeTimeout, i18n.T(c, i18n.ErrKeyTimeout))
	default:
		return http.StatusInternalServerError, dto.NewError(dto.ErrCodeInternal, i18n.T(c, i18n.ErrKeyInternalError))
	}
}
