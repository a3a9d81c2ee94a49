package server

import (
	"github.com/gin-gonic/gin"
	authdomain "github.com/topiqhq/topiq/internal/auth/domain"
)

const contextUserKey = "current_user"

// AuthRequired resolves the bearer token to a user and stores it on the
// request context. Suspended accounts are rejected here, not per-handler.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		user, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.Set(contextUserKey, user)
		c.Next()
	}
}

// AdminRequired must run after AuthRequired.
func (s *Server) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil || !user.IsAdmin {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *authdomain.User {
	val, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, ok := val.(*authdomain.User)
	if !ok {
		return nil
	}
	return user
}
