package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	authdomain "github.com/topiqhq/topiq/internal/auth/domain"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User      authdomain.UserView `json:"user"`
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expires_at"`
}

func (s *Server) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ctx := c.Request.Context()
	user, err := s.authsvc.CreateUser(ctx, authdomain.CreateUserRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if _, err := s.profilesvc.EnsureDefault(ctx, user.ID); err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.authsvc.IssueSession(ctx, user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	_ = s.activitysvc.Record(ctx, user.ID, "signup", nil)

	c.JSON(http.StatusCreated, sessionResponse{
		User:      user.View(),
		Token:     result.RawToken,
		ExpiresAt: result.ExpiresAt,
	})
}

func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ctx := c.Request.Context()
	result, err := s.authsvc.Login(ctx, authdomain.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	_ = s.activitysvc.Record(ctx, result.User.ID, "login", nil)

	c.JSON(http.StatusOK, sessionResponse{
		User:      result.User.View(),
		Token:     result.RawToken,
		ExpiresAt: result.ExpiresAt,
	})
}

func (s *Server) Logout(c *gin.Context) {
	token, ok := s.sessions.ReadToken(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	if err := s.authsvc.Logout(c.Request.Context(), token); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
