package middleware

import (
	"net/http"
	"strings"

	"hotel-ops/models"
	"hotel-ops/services"
	"hotel-ops/utils"

	"github.com/gin-gonic/gin"
)

const (
	StaffIDKey = "staffID"
	RoleKey    = "role"
)

// AuthJWT requires a valid "Bearer" token and stores the staff id and role
// on the context.
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.AbortJSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.VerifyToken(secret, tokenString)
		if err != nil {
			utils.AbortJSONError(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		c.Set(StaffIDKey, claims.StaffID)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

// RequireAdmin must run after AuthJWT.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CallerFrom(c).IsAdmin {
			utils.AbortJSONError(c, http.StatusForbidden, services.MsgUnauthorized)
			return
		}
		c.Next()
	}
}

// CallerFrom builds the service-level caller from what AuthJWT stored.
func CallerFrom(c *gin.Context) services.Caller {
	return services.Caller{
		StaffID: c.GetUint(StaffIDKey),
		IsAdmin: c.GetString(RoleKey) == string(models.RoleAdmin),
	}
}
