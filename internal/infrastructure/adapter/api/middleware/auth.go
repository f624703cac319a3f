package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	domainerr "github.com/saukimart/sauki-backend/internal/domain/error"
	"github.com/saukimart/sauki-backend/internal/domain/port/usecase"
)

// Context keys set by AdminAuth
const (
	AdminEmailKey = "admin_email"
	AdminTokenKey = "admin_token"
)

// AdminAuth requires a live admin bearer token
func AdminAuth(admin usecase.AdminUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(domainerr.HTTPStatus(domainerr.ErrInvalidToken), NewErrorResponse(domainerr.ErrInvalidToken))
			return
		}

		email, err := admin.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(domainerr.HTTPStatus(err), NewErrorResponse(err))
			return
		}

		c.Set(AdminEmailKey, email)
		c.Set(AdminTokenKey, token)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
