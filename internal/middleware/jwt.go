package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"billing_system/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// SessionCookie is the HttpOnly cookie carrying the session token
const SessionCookie = "session_token"

// Context keys set by JWTAuthMiddleware
const (
	CtxUserID    = "userID"
	CtxUserEmail = "userEmail"
	CtxUserName  = "userName"
)

// TokenFromRequest returns the bearer token, falling back to the session cookie
func TokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization") // Get Authorization header
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")) // Extract the token string
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie // Token from the session cookie
	}
	return ""
}

// JWTAuthMiddleware validates session tokens and extracts user information
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := TokenFromRequest(c) // Bearer header or cookie
		if tokenStr == "" {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}
		claims, err := utils.ParseJWT(tokenStr, secret) // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}
		c.Set(CtxUserID, claims.UserID)   // Store userID in context
		c.Set(CtxUserEmail, claims.Email) // Store email in context
		c.Set(CtxUserName, claims.Name)   // Store name in context
		c.Next()                          // Proceed to the next handler
	}
}
