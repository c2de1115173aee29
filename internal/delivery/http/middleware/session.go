package middleware

import (
	"net/http"
	"strings"

	"github.com/ComputerScienceAddict/Hi-Hungry/internal/usecase/session"
	"github.com/gin-gonic/gin"
)

type SessionMiddleware struct {
	sessions *session.UseCase
}

func NewSessionMiddleware(sessions *session.UseCase) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// RequireSession validates the anonymous session token from the
// Authorization header and stores its id in the request context.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
			return
		}

		sid, err := m.sessions.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
			return
		}

		c.Set("session_id", sid)
		c.Next()
	}
}
