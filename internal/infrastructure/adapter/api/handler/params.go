package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	domainerr "github.com/saukimart/sauki-backend/internal/domain/error"
)

// bindJSON decodes the request body and records a validation error on failure
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(domainerr.NewValidationError("body", "invalid request format: "+err.Error(), err))
		return false
	}
	return true
}

// pathID parses a positive numeric path parameter
func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		_ = c.Error(domainerr.NewValidationError(name, "must be a positive integer", nil))
		return 0, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter, returning 0 when absent
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		_ = c.Error(domainerr.NewValidationError(name, "must be a non-negative integer", nil))
		return 0, false
	}
	return n, true
}
