package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/topiqhq/topiq/internal/clock"
	"github.com/topiqhq/topiq/internal/topic/domain"
	"github.com/topiqhq/topiq/internal/topic/repository"
	"github.com/topiqhq/topiq/pkg/db"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

func newTestService(t *testing.T) (domain.Service, *clock.FakeClock) {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&domain.Topic{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	clk := clock.NewFakeClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	return New(zap.NewNop(), repository.New(conn), node.Generate, clk), clk
}

func insertTopic(t *testing.T, svc domain.Service, userID snowflake.ID, title string, score int) *domain.Topic {
	t.Helper()
	topic := &domain.Topic{
		UserID:         userID,
		Title:          title,
		RelevanceScore: score,
		Sources:        datatypes.JSON([]byte(`[]`)),
	}
	if err := svc.Insert(context.Background(), topic); err != nil {
		t.Fatalf("insert %q: %v", title, err)
	}
	return topic
}

func TestInsertDefaults(t *testing.T) {
	svc, clk := newTestService(t)
	topic := insertTopic(t, svc, 1, "a", 7)

	if topic.ID == 0 {
		t.Error("insert did not assign an id")
	}
	if topic.Status != domain.StatusNew {
		t.Errorf("status = %q, want new", topic.Status)
	}
	if !topic.CreatedAt.Equal(clk.Now()) {
		t.Errorf("created at = %v, want %v", topic.CreatedAt, clk.Now())
	}
}

func TestListRecentWindowAndOrder(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()
	userID := snowflake.ID(1)

	old := insertTopic(t, svc, userID, "too old", 10)
	_ = old
	clk.Advance(10 * 24 * time.Hour)

	low := insertTopic(t, svc, userID, "low score", 3)
	clk.Advance(time.Hour)
	high := insertTopic(t, svc, userID, "high score", 9)
	insertTopic(t, svc, snowflake.ID(2), "other user", 9)

	// A reviewed topic drops out of the digest.
	reviewed := insertTopic(t, svc, userID, "reviewed", 8)
	if err := svc.SetStatus(ctx, userID, reviewed.ID, domain.StatusReviewed); err != nil {
		t.Fatalf("set status: %v", err)
	}

	topics, err := svc.ListRecent(ctx, userID, 7)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("got %d topics, want 2", len(topics))
	}
	if topics[0].ID != high.ID || topics[1].ID != low.ID {
		t.Errorf("order = [%s %s], want high before low", topics[0].Title, topics[1].Title)
	}
}

func TestListRecentEqualScoreNewerFirst(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()
	userID := snowflake.ID(1)

	older := insertTopic(t, svc, userID, "older", 7)
	clk.Advance(2 * time.Hour)
	newer := insertTopic(t, svc, userID, "newer", 7)

	topics, err := svc.ListRecent(ctx, userID, 7)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("got %d topics, want 2", len(topics))
	}
	if topics[0].ID != newer.ID || topics[1].ID != older.ID {
		t.Errorf("order = [%s %s], want newer before older on equal scores", topics[0].Title, topics[1].Title)
	}
}

func TestSetStatusMissingTopic(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.SetStatus(context.Background(), 1, snowflake.ID(999), domain.StatusArchived)
	if !errors.Is(err, domain.ErrTopicNotFound) {
		t.Fatalf("err = %v, want ErrTopicNotFound", err)
	}
}

func TestSetStatusForeignTopic(t *testing.T) {
	svc, _ := newTestService(t)
	topic := insertTopic(t, svc, 1, "mine", 5)

	err := svc.SetStatus(context.Background(), 2, topic.ID, domain.StatusArchived)
	if !errors.Is(err, domain.ErrTopicNotFound) {
		t.Fatalf("err = %v, want ErrTopicNotFound", err)
	}
}

func TestSetStatusInvalid(t *testing.T) {
	svc, _ := newTestService(t)
	topic := insertTopic(t, svc, 1, "mine", 5)

	err := svc.SetStatus(context.Background(), 1, topic.ID, domain.Status("bogus"))
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestGetForeignTopic(t *testing.T) {
	svc, _ := newTestService(t)
	topic := insertTopic(t, svc, 1, "mine", 5)

	if _, err := svc.Get(context.Background(), 2, topic.ID); !errors.Is(err, domain.ErrTopicNotFound) {
		t.Fatalf("err = %v, want ErrTopicNotFound", err)
	}
}
