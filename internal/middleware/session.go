package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "optionlab/internal/errors"
	"optionlab/internal/logger"
	"optionlab/internal/session"
)

const (
	sessionKey = "session"
	emailKey   = "email"
)

// RequireSession rejects requests without a valid, token-bearing session
// with 401 and stores the session in the Gin context otherwise.
func RequireSession(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := manager.Load(c.Request.Context(), c.Request)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				logger.Get().Errorw("session lookup failed", "error", err, "path", c.Request.URL.Path)
				abortWithError(c, apperrors.ErrInternalServer)
				return
			}
			abortWithError(c, apperrors.ErrUnauthorized)
			return
		}
		if !s.HasToken() {
			abortWithError(c, apperrors.ErrUnauthorized)
			return
		}

		SetSession(c, s)
		c.Next()
	}
}

// SetSession stores s in the Gin context.
func SetSession(c *gin.Context, s *session.Session) {
	c.Set(sessionKey, s)
	c.Set(emailKey, s.Email)
}

// GetSession returns the session stored by RequireSession.
func GetSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*session.Session)
	return s, ok
}

// GetEmail returns the authenticated user's email, or "" if none.
func GetEmail(c *gin.Context) string {
	return c.GetString(emailKey)
}
