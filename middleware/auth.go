package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/velmart/ecommerce-api/auth"
	"github.com/velmart/ecommerce-api/models"
)

// Context keys set by ValidateToken for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// ValidateToken gates protected routes on a bearer token in the
// Authorization header. On success the user id and role are attached to
// the request context.
func ValidateToken(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		c.Abort()
		return
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	claims, err := auth.ParseToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		c.Abort()
		return
	}

	c.Set(CtxUserID, claims.UserID)
	c.Set(CtxRole, claims.Role)
	c.Next()
}

// RequireAdmin runs after ValidateToken and rejects non-admin callers.
func RequireAdmin(c *gin.Context) {
	roleVal, exists := c.Get(CtxRole)
	role, ok := roleVal.(models.Role)
	if !exists || !ok || role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		c.Abort()
		return
	}
	c.Next()
}

// UserID pulls the authenticated user's id out of the gin context.
func UserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(CtxUserID)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
