package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	authdomain "github.com/topiqhq/topiq/internal/auth/domain"
)

type adminUserResponse struct {
	ID           snowflake.ID `json:"id"`
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	IsActive     bool         `json:"is_active"`
	IsAdmin      bool         `json:"is_admin"`
	MonthlyLimit int          `json:"monthly_limit"`
	LastLoginAt  *time.Time   `json:"last_login_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

type adminUpdateUserRequest struct {
	IsActive     *bool `json:"is_active"`
	MonthlyLimit *int  `json:"monthly_limit"`
	IsAdmin      *bool `json:"is_admin"`
}

func adminUserView(u *authdomain.User) adminUserResponse {
	return adminUserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		IsActive:     u.IsActive,
		IsAdmin:      u.IsAdmin,
		MonthlyLimit: u.MonthlyLimit,
		LastLoginAt:  u.LastLoginAt,
		CreatedAt:    u.CreatedAt,
	}
}

func (s *Server) AdminListUsers(c *gin.Context) {
	users, err := s.authsvc.ListUsers(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	views := make([]adminUserResponse, 0, len(users))
	for i := range users {
		views = append(views, adminUserView(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"users": views})
}

func (s *Server) AdminUpdateUser(c *gin.Context) {
	admin := currentUser(c)

	userID, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, authdomain.ErrUserNotFound)
		return
	}

	var req adminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.MonthlyLimit != nil && *req.MonthlyLimit < 0 {
		AbortWithError(c, newValidationError("monthly_limit", "invalid_monthly_limit", "invalid value"))
		return
	}

	ctx := c.Request.Context()
	patch := authdomain.UserPatch{
		IsActive:     req.IsActive,
		MonthlyLimit: req.MonthlyLimit,
		IsAdmin:      req.IsAdmin,
	}
	if err := s.authsvc.UpdateUser(ctx, userID, patch); err != nil {
		AbortWithError(c, err)
		return
	}
	_ = s.activitysvc.Record(ctx, admin.ID, "admin_user_update", map[string]any{
		"target_user_id": userID.String(),
	})

	user, err := s.authsvc.GetUser(ctx, userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, adminUserView(user))
}

func (s *Server) AdminActivity(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid value"))
			return
		}
		limit = parsed
	}

	entries, err := s.activitysvc.List(c.Request.Context(), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": entries})
}

func (s *Server) AdminUsageStats(c *gin.Context) {
	stats, err := s.usagesvc.Stats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
