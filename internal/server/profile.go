package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	profiledomain "github.com/topiqhq/topiq/internal/profile/domain"
)

type profileResponse struct {
	FocusAreas     []string  `json:"focus_areas"`
	TargetAudience string    `json:"target_audience"`
	ContentGoals   []string  `json:"content_goals"`
	Tone           string    `json:"tone"`
	Cadence        string    `json:"monitoring_frequency"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type updateProfileRequest struct {
	FocusAreas     *[]string `json:"focus_areas"`
	TargetAudience *string   `json:"target_audience"`
	ContentGoals   *[]string `json:"content_goals"`
	Tone           *string   `json:"tone"`
	Cadence        *string   `json:"monitoring_frequency"`
}

func profileView(p *profiledomain.Profile) profileResponse {
	return profileResponse{
		FocusAreas:     p.FocusAreas,
		TargetAudience: p.TargetAudience,
		ContentGoals:   p.ContentGoals,
		Tone:           p.Tone,
		Cadence:        string(p.Cadence),
		UpdatedAt:      p.UpdatedAt,
	}
}

func (s *Server) GetProfile(c *gin.Context) {
	user := currentUser(c)
	profile, err := s.profilesvc.EnsureDefault(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileView(profile))
}

func (s *Server) UpdateProfile(c *gin.Context) {
	user := currentUser(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	patch := profiledomain.Patch{
		FocusAreas:     req.FocusAreas,
		TargetAudience: req.TargetAudience,
		ContentGoals:   req.ContentGoals,
		Tone:           req.Tone,
	}
	if req.Cadence != nil {
		cadence := profiledomain.Cadence(*req.Cadence)
		patch.Cadence = &cadence
	}

	ctx := c.Request.Context()
	profile, err := s.profilesvc.Update(ctx, user.ID, patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	_ = s.activitysvc.Record(ctx, user.ID, "profile_update", nil)

	c.JSON(http.StatusOK, profileView(profile))
}
