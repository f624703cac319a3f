package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerr "github.com/saukimart/sauki-backend/internal/domain/error"
	coreport "github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/api/dto"
)

// ErrorHandler middleware recovers from panics and turns errors attached with
// c.Error into standardized JSON responses
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered in API request", map[string]any{
					"error":      err,
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"client_ip":  c.ClientIP(),
					"request_id": c.GetString(RequestIDKey),
					"user_agent": c.Request.UserAgent(),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Code:    domainerr.ErrorCode(domainerr.ErrInternalServer),
					Message: "Internal server error",
				})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := domainerr.HTTPStatus(err)

		fields := domainerr.LogFields(err)
		fields["path"] = c.Request.URL.Path
		fields["method"] = c.Request.Method
		fields["status"] = status
		fields["request_id"] = c.GetString(RequestIDKey)
		if status >= http.StatusInternalServerError {
			fields["error"] = err.Error()
			logger.Error("Request failed", fields)
		} else {
			logger.Debug("Request rejected", fields)
		}

		c.JSON(status, NewErrorResponse(err))
	}
}

// NewErrorResponse builds the public error body. Server-side details stay in the logs.
func NewErrorResponse(err error) dto.ErrorResponse {
	status := domainerr.HTTPStatus(err)
	resp := dto.ErrorResponse{Code: domainerr.ErrorCode(err)}

	switch {
	case status == http.StatusBadGateway:
		resp.Message = "Payment provider unavailable, please retry"
	case status == http.StatusServiceUnavailable:
		resp.Message = "Service temporarily unavailable"
	case status >= http.StatusInternalServerError:
		resp.Message = "Internal server error"
	case domainerr.IsAuthError(err):
		resp.Message = "Unauthorized"
		if errors.Is(err, domainerr.ErrInvalidCredentials) {
			resp.Message = "Invalid credentials"
		}
	default:
		resp.Message = err.Error()
		var ve *domainerr.ValidationError
		if errors.As(err, &ve) {
			resp.Field = ve.Field
			resp.Message = ve.Reason
		}
	}
	return resp
}
