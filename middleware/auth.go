package middleware

import (
	"net/http"
	"strings"

	"myplan-backend/utils"

	"github.com/gin-gonic/gin"
)

const SessionCookieName = "myplan_session"

// Context keys set by RequireAuth for downstream handlers.
const (
	CtxUserID    = "userId"
	CtxVisitorID = "visitorId"
	CtxAdminID   = "adminId"
	CtxRole      = "role"
)

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// RequireAuth validates the session token (cookie or bearer header) and puts
// the principal's ids and role on the context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			utils.JSONError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}

		claims, err := utils.ParseSessionToken(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "invalid or expired session")
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxVisitorID, claims.VisitorID)
		c.Set(CtxAdminID, claims.AdminID)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// RequireRole gates a route group on the authenticated principal's role
// claim. Must run after RequireAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRole) != role {
			utils.JSONError(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

// VisitorID returns the authenticated visitor profile id, or 0 when the
// caller is not a visitor.
func VisitorID(c *gin.Context) uint {
	if v, ok := c.Get(CtxVisitorID); ok {
		if id, ok2 := v.(uint); ok2 {
			return id
		}
	}
	return 0
}

// UserID returns the authenticated user account id.
func UserID(c *gin.Context) uint {
	if v, ok := c.Get(CtxUserID); ok {
		if id, ok2 := v.(uint); ok2 {
			return id
		}
	}
	return 0
}

// AdminID returns the authenticated admin profile id, or 0.
func AdminID(c *gin.Context) uint {
	if v, ok := c.Get(CtxAdminID); ok {
		if id, ok2 := v.(uint); ok2 {
			return id
		}
	}
	return 0
}
