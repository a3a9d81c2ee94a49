package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	activitydomain "github.com/topiqhq/topiq/internal/activity/domain"
	activityrepo "github.com/topiqhq/topiq/internal/activity/repository"
	activityservice "github.com/topiqhq/topiq/internal/activity/service"
	assistantservice "github.com/topiqhq/topiq/internal/assistant/service"
	authdomain "github.com/topiqhq/topiq/internal/auth/domain"
	authrepo "github.com/topiqhq/topiq/internal/auth/repository"
	authservice "github.com/topiqhq/topiq/internal/auth/service"
	"github.com/topiqhq/topiq/internal/auth/session"
	"github.com/topiqhq/topiq/internal/clock"
	"github.com/topiqhq/topiq/internal/config"
	postdomain "github.com/topiqhq/topiq/internal/post/domain"
	postrepo "github.com/topiqhq/topiq/internal/post/repository"
	postservice "github.com/topiqhq/topiq/internal/post/service"
	profiledomain "github.com/topiqhq/topiq/internal/profile/domain"
	profilerepo "github.com/topiqhq/topiq/internal/profile/repository"
	profileservice "github.com/topiqhq/topiq/internal/profile/service"
	"github.com/topiqhq/topiq/internal/scheduler"
	topicdomain "github.com/topiqhq/topiq/internal/topic/domain"
	topicrepo "github.com/topiqhq/topiq/internal/topic/repository"
	topicservice "github.com/topiqhq/topiq/internal/topic/service"
	usagedomain "github.com/topiqhq/topiq/internal/usage/domain"
	usagerepo "github.com/topiqhq/topiq/internal/usage/repository"
	usageservice "github.com/topiqhq/topiq/internal/usage/service"
	"github.com/topiqhq/topiq/pkg/db"
	"go.uber.org/zap"
)

type stubProvider struct {
	reply string
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, webSearch bool) (string, error) {
	_ = ctx
	_ = prompt
	_ = webSearch
	return s.reply, nil
}

type testStack struct {
	server   *Server
	provider *stubProvider
	authsvc  authdomain.Service
	clk      *clock.FakeClock
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = conn.AutoMigrate(
		&authdomain.User{},
		&authdomain.Session{},
		&profiledomain.Profile{},
		&topicdomain.Topic{},
		&postdomain.Post{},
		&usagedomain.UsageEvent{},
		&activitydomain.Event{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	clk := clock.NewFakeClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	log := zap.NewNop()
	cfg := config.Config{
		AppVersion:          "test",
		DefaultMonthlyLimit: 100,
		AnthropicAPIKey:     "test-key",
	}

	userRepo, sessionRepo := authrepo.New(conn)
	authsvc := authservice.New(log, cfg, userRepo, sessionRepo, node, clk)
	profiles := profileservice.New(log, profilerepo.New(conn))
	topics := topicservice.New(log, topicrepo.New(conn), node.Generate, clk)
	posts := postservice.New(log, postrepo.New(conn), node.Generate, clk)
	usage := usageservice.New(log, usagerepo.New(conn), node.Generate, clk)
	activity := activityservice.New(log, activityrepo.New(conn), node.Generate, clk)

	provider := &stubProvider{reply: "[]"}
	assistant := assistantservice.New(log, cfg, provider, profiles, topics, usage, activity)

	sched, err := scheduler.New(scheduler.Params{
		Log:       log,
		Config:    cfg,
		Clock:     clk,
		Users:     authsvc,
		Profiles:  profiles,
		Usage:     usage,
		Assistant: assistant,
	})
	if err != nil {
		t.Fatalf("scheduler: %v", err)
	}

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	srv := NewServer(ServerParams{
		Gin:         engine,
		Cfg:         cfg,
		Authsvc:     authsvc,
		Sessions:    session.NewManager(),
		Profilesvc:  profiles,
		Topicsvc:    topics,
		Postsvc:     posts,
		Usagesvc:    usage,
		Activitysvc: activity,
		Assistant:   assistant,
		Scheduler:   sched,
	})

	return &testStack{server: srv, provider: provider, authsvc: authsvc, clk: clk}
}

func (s *testStack) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.server.Engine().ServeHTTP(rec, req)
	return rec
}

func (s *testStack) signup(t *testing.T, email string) (snowflake.ID, string) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup %s: status %d body %s", email, rec.Code, rec.Body.String())
	}
	var resp struct {
		User struct {
			ID snowflake.ID `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode signup response: %v", err)
	}
	return resp.User.ID, resp.Token
}

func TestSignupAndProfileFlow(t *testing.T) {
	stack := newTestStack(t)
	_, token := stack.signup(t, "first@example.com")

	rec := stack.do(t, http.MethodGet, "/profile", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get profile: status %d body %s", rec.Code, rec.Body.String())
	}
	var profile struct {
		Cadence    string   `json:"monitoring_frequency"`
		FocusAreas []string `json:"focus_areas"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if profile.Cadence != "weekly" {
		t.Errorf("default cadence = %q, want weekly", profile.Cadence)
	}
	if len(profile.FocusAreas) == 0 {
		t.Error("default focus areas empty")
	}

	rec = stack.do(t, http.MethodPut, "/profile", token, map[string]any{
		"monitoring_frequency": "daily",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update profile: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = stack.do(t, http.MethodPut, "/profile", token, map[string]any{
		"monitoring_frequency": "hourly",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid cadence: status %d, want 400", rec.Code)
	}
}

func TestSignupRejectsBadInput(t *testing.T) {
	stack := newTestStack(t)

	cases := []struct {
		name  string
		body  map[string]string
		field string
	}{
		{"malformed email", map[string]string{"email": "not-an-email", "password": "password123"}, "email"},
		{"short password", map[string]string{"email": "new@example.com", "password": "short"}, "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := stack.do(t, http.MethodPost, "/auth/signup", "", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status %d, want 400; body %s", rec.Code, rec.Body.String())
			}
			var resp struct {
				Error struct {
					Type   string `json:"type"`
					Errors []struct {
						Field string `json:"field"`
					} `json:"errors"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Error.Type != "validation_error" {
				t.Errorf("type = %q, want validation_error", resp.Error.Type)
			}
			if len(resp.Error.Errors) != 1 || resp.Error.Errors[0].Field != tc.field {
				t.Errorf("field = %+v, want %q", resp.Error.Errors, tc.field)
			}
		})
	}
}

func TestAuthRequired(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.do(t, http.MethodGet, "/profile", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status %d, want 401", rec.Code)
	}
	rec = stack.do(t, http.MethodGet, "/profile", "bogus-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status %d, want 401", rec.Code)
	}
}

func TestMonitorDigestAndStatus(t *testing.T) {
	stack := newTestStack(t)
	_, token := stack.signup(t, "first@example.com")
	stack.provider.reply = `[{"title":"Story A","relevance_score":9},{"title":"Story B","relevance_score":4}]`

	rec := stack.do(t, http.MethodPost, "/monitor", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("monitor: status %d body %s", rec.Code, rec.Body.String())
	}
	var monitorResp struct {
		TopicsFound int `json:"topics_found"`
		Topics      []struct {
			ID    snowflake.ID `json:"id"`
			Title string       `json:"title"`
		} `json:"topics"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &monitorResp); err != nil {
		t.Fatalf("decode monitor: %v", err)
	}
	if monitorResp.TopicsFound != 2 {
		t.Fatalf("topics found = %d, want 2", monitorResp.TopicsFound)
	}

	rec = stack.do(t, http.MethodGet, "/digest?days=7", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("digest: status %d body %s", rec.Code, rec.Body.String())
	}
	var digest struct {
		Topics []struct {
			Title string `json:"title"`
		} `json:"topics"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &digest); err != nil {
		t.Fatalf("decode digest: %v", err)
	}
	if len(digest.Topics) != 2 || digest.Topics[0].Title != "Story A" {
		t.Fatalf("digest = %+v, want Story A first", digest.Topics)
	}

	topicID := monitorResp.Topics[0].ID
	rec = stack.do(t, http.MethodPut, fmt.Sprintf("/topics/%s/status", topicID), token, map[string]string{
		"status": "archived",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("set status: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = stack.do(t, http.MethodPut, "/topics/999/status", token, map[string]string{
		"status": "archived",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing topic: status %d, want 404", rec.Code)
	}

	rec = stack.do(t, http.MethodGet, "/digest", token, nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &digest); err != nil {
		t.Fatalf("decode digest: %v", err)
	}
	if len(digest.Topics) != 1 {
		t.Errorf("digest after archive = %d topics, want 1", len(digest.Topics))
	}
}

func TestQuotaExceededResponse(t *testing.T) {
	stack := newTestStack(t)
	userID, token := stack.signup(t, "first@example.com")

	limit := 1
	if err := stack.authsvc.UpdateUser(context.Background(), userID, authdomain.UserPatch{MonthlyLimit: &limit}); err != nil {
		t.Fatalf("set limit: %v", err)
	}

	if rec := stack.do(t, http.MethodPost, "/monitor", token, nil); rec.Code != http.StatusOK {
		t.Fatalf("first monitor: status %d body %s", rec.Code, rec.Body.String())
	}

	rec := stack.do(t, http.MethodPost, "/monitor", token, nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second monitor: status %d, want 429", rec.Code)
	}
	var resp struct {
		Error struct {
			Type  string `json:"type"`
			Limit int    `json:"limit"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.Error.Type != "quota_exceeded" || resp.Error.Limit != 1 {
		t.Errorf("error = %+v, want quota_exceeded with limit 1", resp.Error)
	}
}

func TestBrainstormAndPosts(t *testing.T) {
	stack := newTestStack(t)
	_, token := stack.signup(t, "first@example.com")
	stack.provider.reply = `[{"title":"Story A"}]`

	rec := stack.do(t, http.MethodPost, "/monitor", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("monitor: status %d", rec.Code)
	}
	var monitorResp struct {
		Topics []struct {
			ID snowflake.ID `json:"id"`
		} `json:"topics"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &monitorResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	topicID := monitorResp.Topics[0].ID

	stack.provider.reply = "Here is your draft."
	rec = stack.do(t, http.MethodPost, "/brainstorm", token, map[string]any{
		"topic_id":   topicID,
		"user_input": "short and punchy",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("brainstorm: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = stack.do(t, http.MethodPost, "/posts", token, map[string]any{
		"topic_id": topicID,
		"content":  "Draft v1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("save post: status %d body %s", rec.Code, rec.Body.String())
	}
	rec = stack.do(t, http.MethodPost, "/posts", token, map[string]any{
		"topic_id": topicID,
		"content":  "Draft v2",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("save post: status %d", rec.Code)
	}

	rec = stack.do(t, http.MethodGet, fmt.Sprintf("/posts?topic_id=%s", topicID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list posts: status %d", rec.Code)
	}
	var posts struct {
		Posts []struct {
			Version int `json:"version"`
		} `json:"posts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &posts); err != nil {
		t.Fatalf("decode posts: %v", err)
	}
	if len(posts.Posts) != 2 || posts.Posts[0].Version != 2 {
		t.Errorf("posts = %+v, want 2 with v2 first", posts.Posts)
	}
}

func TestAdminAccess(t *testing.T) {
	stack := newTestStack(t)
	_, adminToken := stack.signup(t, "admin@example.com")
	memberID, memberToken := stack.signup(t, "member@example.com")

	rec := stack.do(t, http.MethodGet, "/admin/users", memberToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("member admin access: status %d, want 403", rec.Code)
	}

	rec = stack.do(t, http.MethodGet, "/admin/users", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin list users: status %d body %s", rec.Code, rec.Body.String())
	}
	var users struct {
		Users []struct {
			IsAdmin bool `json:"is_admin"`
		} `json:"users"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("decode users: %v", err)
	}
	if len(users.Users) != 2 {
		t.Fatalf("got %d users, want 2", len(users.Users))
	}

	rec = stack.do(t, http.MethodPut, fmt.Sprintf("/admin/users/%s", memberID), adminToken, map[string]any{
		"monthly_limit": 3,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("admin update: status %d body %s", rec.Code, rec.Body.String())
	}
	var updated struct {
		MonthlyLimit int `json:"monthly_limit"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if updated.MonthlyLimit != 3 {
		t.Errorf("monthly limit = %d, want 3", updated.MonthlyLimit)
	}

	rec = stack.do(t, http.MethodGet, "/admin/activity", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin activity: status %d", rec.Code)
	}
	rec = stack.do(t, http.MethodGet, "/admin/usage-stats", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin usage stats: status %d", rec.Code)
	}
	var report struct {
		TotalUsers           int64 `json:"total_users"`
		ActiveUsersThisMonth int64 `json:"active_users_this_month"`
		CallsThisMonth       int64 `json:"api_calls_this_month"`
		UsageByType          []struct {
			Action string `json:"action"`
			Count  int64  `json:"count"`
		} `json:"usage_by_type"`
		Users []struct {
			Email string `json:"email"`
		} `json:"users"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode usage stats: %v", err)
	}
	if report.TotalUsers != 2 {
		t.Errorf("total users = %d, want 2", report.TotalUsers)
	}
	if report.ActiveUsersThisMonth != 0 || report.CallsThisMonth != 0 {
		t.Errorf("expected zero activity, got %+v", report)
	}
	if len(report.Users) != 2 {
		t.Errorf("user rows = %d, want 2", len(report.Users))
	}
}

func TestHealth(t *testing.T) {
	stack := newTestStack(t)
	rec := stack.do(t, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health: status %d", rec.Code)
	}
	var health struct {
		Status           string `json:"status"`
		SchedulerRunning bool   `json:"scheduler_running"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health.Status != "ok" {
		t.Errorf("status = %q, want ok", health.Status)
	}
	if health.SchedulerRunning {
		t.Error("scheduler should not be running before start")
	}
}
