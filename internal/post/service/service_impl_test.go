package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/topiqhq/topiq/internal/clock"
	"github.com/topiqhq/topiq/internal/post/domain"
	"github.com/topiqhq/topiq/internal/post/repository"
	"github.com/topiqhq/topiq/pkg/db"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&domain.Post{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	clk := clock.NewFakeClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	return New(zap.NewNop(), repository.New(conn), node.Generate, clk)
}

func TestSaveVersionsIncrement(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := snowflake.ID(1)
	topicID := snowflake.ID(50)

	first, err := svc.Save(ctx, userID, &topicID, "draft one")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if first.Version != 1 {
		t.Errorf("first version = %d, want 1", first.Version)
	}

	second, err := svc.Save(ctx, userID, &topicID, "draft two")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if second.Version != 2 {
		t.Errorf("second version = %d, want 2", second.Version)
	}
	if second.Status != domain.StatusDraft {
		t.Errorf("status = %q, want draft", second.Status)
	}

	// Versions are scoped per topic.
	otherTopic := snowflake.ID(51)
	other, err := svc.Save(ctx, userID, &otherTopic, "fresh topic")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if other.Version != 1 {
		t.Errorf("other topic version = %d, want 1", other.Version)
	}

	standalone, err := svc.Save(ctx, userID, nil, "no topic")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if standalone.Version != 1 {
		t.Errorf("standalone version = %d, want 1", standalone.Version)
	}
}

func TestSaveEmptyContent(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Save(context.Background(), 1, nil, "   "); !errors.Is(err, domain.ErrEmptyContent) {
		t.Fatalf("err = %v, want ErrEmptyContent", err)
	}
}

func TestListByTopicNewestVersionFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := snowflake.ID(1)
	topicID := snowflake.ID(60)

	for _, content := range []string{"v1", "v2", "v3"} {
		if _, err := svc.Save(ctx, userID, &topicID, content); err != nil {
			t.Fatalf("save %q: %v", content, err)
		}
	}

	posts, err := svc.ListByTopic(ctx, userID, topicID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("got %d posts, want 3", len(posts))
	}
	if posts[0].Version != 3 || posts[0].Content != "v3" {
		t.Errorf("first row = v%d %q, want v3", posts[0].Version, posts[0].Content)
	}
}
