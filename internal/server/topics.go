package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	topicdomain "github.com/topiqhq/topiq/internal/topic/domain"
	usagedomain "github.com/topiqhq/topiq/internal/usage/domain"
)

const defaultDigestDays = 7

type topicResponse struct {
	ID             snowflake.ID    `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	RelevanceScore int             `json:"relevance_score"`
	Sources        json.RawMessage `json:"sources"`
	KeyPoints      []string        `json:"key_points"`
	SuggestedAngle string          `json:"suggested_angle"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

type brainstormRequest struct {
	TopicID   snowflake.ID `json:"topic_id"`
	UserInput string       `json:"user_input"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func topicView(t *topicdomain.Topic) topicResponse {
	return topicResponse{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		RelevanceScore: t.RelevanceScore,
		Sources:        json.RawMessage(t.Sources),
		KeyPoints:      t.KeyPoints,
		SuggestedAngle: t.SuggestedAngle,
		Status:         string(t.Status),
		CreatedAt:      t.CreatedAt,
	}
}

func topicViews(topics []topicdomain.Topic) []topicResponse {
	views := make([]topicResponse, 0, len(topics))
	for i := range topics {
		views = append(views, topicView(&topics[i]))
	}
	return views
}

// Digest lists the caller's fresh topics, most relevant first.
func (s *Server) Digest(c *gin.Context) {
	user := currentUser(c)

	days := defaultDigestDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			AbortWithError(c, newValidationError("days", "invalid_days", "invalid value"))
			return
		}
		days = parsed
	}

	topics, err := s.topicsvc.ListRecent(c.Request.Context(), user.ID, days)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"days":   days,
		"topics": topicViews(topics),
	})
}

// Monitor runs one on-demand news scan for the caller.
func (s *Server) Monitor(c *gin.Context) {
	user := currentUser(c)

	topics, err := s.assistant.Monitor(c.Request.Context(), user, usagedomain.ActionMonitor)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"topics_found": len(topics),
		"topics":       topicViews(topics),
	})
}

func (s *Server) Brainstorm(c *gin.Context) {
	user := currentUser(c)

	var req brainstormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	text, err := s.assistant.Brainstorm(c.Request.Context(), user, req.TopicID, req.UserInput)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"topic_id": req.TopicID,
		"draft":    text,
	})
}

func (s *Server) GetTopic(c *gin.Context) {
	user := currentUser(c)

	topicID, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, topicdomain.ErrTopicNotFound)
		return
	}

	topic, err := s.topicsvc.Get(c.Request.Context(), user.ID, topicID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, topicView(topic))
}

func (s *Server) SetTopicStatus(c *gin.Context) {
	user := currentUser(c)

	topicID, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, topicdomain.ErrTopicNotFound)
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ctx := c.Request.Context()
	if err := s.topicsvc.SetStatus(ctx, user.ID, topicID, topicdomain.Status(req.Status)); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":     topicID,
		"status": req.Status,
	})
}
