package server

import (
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	postdomain "github.com/topiqhq/topiq/internal/post/domain"
)

type savePostRequest struct {
	TopicID *snowflake.ID `json:"topic_id"`
	Content string        `json:"content"`
}

type postResponse struct {
	ID        snowflake.ID  `json:"id"`
	TopicID   *snowflake.ID `json:"topic_id,omitempty"`
	Content   string        `json:"content"`
	Version   int           `json:"version"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

func postView(p *postdomain.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		TopicID:   p.TopicID,
		Content:   p.Content,
		Version:   p.Version,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
}

func (s *Server) SavePost(c *gin.Context) {
	user := currentUser(c)

	var req savePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	post, err := s.postsvc.Save(c.Request.Context(), user.ID, req.TopicID, req.Content)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, postView(post))
}

func (s *Server) ListPosts(c *gin.Context) {
	user := currentUser(c)
	ctx := c.Request.Context()

	var (
		posts []postdomain.Post
		err   error
	)
	if raw := c.Query("topic_id"); raw != "" {
		topicID, parseErr := snowflake.ParseString(raw)
		if parseErr != nil {
			AbortWithError(c, newValidationError("topic_id", "invalid_topic_id", "invalid value"))
			return
		}
		posts, err = s.postsvc.ListByTopic(ctx, user.ID, topicID)
	} else {
		posts, err = s.postsvc.List(ctx, user.ID)
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}

	views := make([]postResponse, 0, len(posts))
	for i := range posts {
		views = append(views, postView(&posts[i]))
	}
	c.JSON(http.StatusOK, gin.H{"posts": views})
}
