package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jason-czar/Sportstreams/internal/domain"
	"github.com/jason-czar/Sportstreams/internal/service"
	"github.com/jason-czar/Sportstreams/pkg/log"
	"github.com/jason-czar/Sportstreams/pkg/response"
)

const (
	ctxUserKey   = "user"
	ctxUserIDKey = "user_id"
)

// SessionMiddleware resolves the session cookie to a user.
type SessionMiddleware struct {
	auth       *service.AuthService
	cookieName string
}

func NewSessionMiddleware(auth *service.AuthService, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{
		auth:       auth,
		cookieName: cookieName,
	}
}

// RequireSession aborts with 401 unless a valid session cookie is present.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.resolve(c)
		if err != nil {
			response.Unauthorized(c, "valid session required")
			c.Abort()
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxUserIDKey, user.ID)
		c.Set(log.FieldUserID, user.ID)
		c.Next()
	}
}

// OptionalSession attaches the user when a valid cookie is present, and
// continues anonymously otherwise.
func (m *SessionMiddleware) OptionalSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := m.resolve(c); err == nil {
			c.Set(ctxUserKey, user)
			c.Set(ctxUserIDKey, user.ID)
			c.Set(log.FieldUserID, user.ID)
		}
		c.Next()
	}
}

func (m *SessionMiddleware) resolve(c *gin.Context) (*domain.User, error) {
	token, err := c.Cookie(m.cookieName)
	if err != nil || token == "" {
		return nil, errors.New("missing session cookie")
	}
	return m.auth.ValidateSession(c.Request.Context(), token)
}

// currentUser returns the session user set by the middleware, if any.
func currentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}
