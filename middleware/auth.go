package middleware

import (
	"strings"

	apperrors "restaurante360/errors"
	"restaurante360/response"
	"restaurante360/services"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// AuthMiddleware resolves the bearer token into a session. Requests without
// a valid token, or from inactive users, are rejected.
func AuthMiddleware(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := auth.Authenticate(c.Request.Context(), BearerToken(c))
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// BearerToken extracts the token of the Authorization header. Websocket
// clients that cannot set headers may pass it as ?token=.
func BearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return c.Query("token")
	}
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

// RequireManager lets only manager-level roles through. It must run after
// AuthMiddleware.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := CurrentSession(c)
		if session == nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		if !session.IsManager() {
			response.FromError(c, apperrors.Forbidden("Acesso restrito a gestores"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentSession returns the session stored by AuthMiddleware, or nil.
func CurrentSession(c *gin.Context) *services.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	session, _ := v.(*services.Session)
	return session
}

// ErrorHandler renders the last error pushed with c.Error when the handler
// wrote nothing.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		response.FromError(c, c.Errors.Last().Err)
	}
}
