package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"campus-canteen/store"
	"campus-canteen/utils"
)

// AdminAuth guards the admin surface. The bearer token must parse AND the
// email inside it must still be on the admin allow-list — a signed token
// for a removed admin is worthless.
func AdminAuth(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(tokenString)
		if err != nil || claims == nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}

		if _, err := s.AdminByEmail(c.Request.Context(), claims.Email); err != nil {
			utils.RespondError(c, http.StatusForbidden, errors.New("not an admin account"))
			c.Abort()
			return
		}

		c.Set("adminEmail", claims.Email)
		c.Next()
	}
}
