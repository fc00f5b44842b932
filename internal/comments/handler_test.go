package comments

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"purepoker-community/internal/posts"
	"purepoker-community/internal/reactions"
)

type mockService struct {
	listFunc   func(ctx context.Context, postID int64) ([]Comment, error)
	createFunc func(ctx context.Context, postID int64, author, content string) (*Comment, error)
	deleteFunc func(ctx context.Context, commentID int64) error
	existsFunc func(ctx context.Context, commentID int64) (bool, error)
}

func (m *mockService) ListByPost(ctx context.Context, postID int64) ([]Comment, error) {
	return m.listFunc(ctx, postID)
}

func (m *mockService) Create(ctx context.Context, postID int64, author, content string) (*Comment, error) {
	return m.createFunc(ctx, postID, author, content)
}

func (m *mockService) Delete(ctx context.Context, commentID int64) error {
	return m.deleteFunc(ctx, commentID)
}

func (m *mockService) Exists(ctx context.Context, commentID int64) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, commentID)
	}
	return true, nil
}

type mockPosts struct {
	exists bool
}

func (m *mockPosts) List(context.Context) ([]posts.Post, error) { return nil, nil }
func (m *mockPosts) Create(context.Context, string, string) (*posts.Post, error) {
	return nil, nil
}
func (m *mockPosts) Get(context.Context, int64) (*posts.Post, error) { return nil, nil }
func (m *mockPosts) Update(context.Context, int64, posts.UpdatePostRequest) (*posts.Post, error) {
	return nil, nil
}
func (m *mockPosts) Delete(context.Context, int64) error { return nil }
func (m *mockPosts) Exists(context.Context, int64) (bool, error) {
	return m.exists, nil
}

type mockReactions struct {
	applyFunc func(ctx context.Context, userID string, target reactions.Target, desired *bool) (reactions.Result, error)
}

func (m *mockReactions) Apply(ctx context.Context, userID string, target reactions.Target, desired *bool) (reactions.Result, error) {
	return m.applyFunc(ctx, userID, target, desired)
}

func (m *mockReactions) Count(ctx context.Context, target reactions.Target) (int64, error) {
	return 0, nil
}

func newTestRouter(svc Service, postSvc posts.Service, reactionSvc reactions.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc, postSvc, reactionSvc)

	r := gin.New()
	r.GET("/posts/:id/comments", h.ListByPost)
	r.POST("/posts/:id/comments", h.Create)
	r.POST("/comments/:id/like", h.Like)
	r.DELETE("/comments/:id", h.Delete)
	return r
}

func TestCreateComment_OnMissingPost(t *testing.T) {
	r := newTestRouter(&mockService{}, &mockPosts{exists: false}, &mockReactions{})

	body := `{"author":"bob","content":"hi"}`
	req := httptest.NewRequest(http.MethodPost, "/posts/99/comments", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestCreateComment_ReturnsRepresentation(t *testing.T) {
	svc := &mockService{
		createFunc: func(ctx context.Context, postID int64, author, content string) (*Comment, error) {
			now := time.Now()
			return &Comment{ID: 7, PostID: postID, Author: author, Content: content, CreatedAt: now, UpdatedAt: now}, nil
		},
	}
	r := newTestRouter(svc, &mockPosts{exists: true}, &mockReactions{})

	body := `{"author":"bob","content":"hi"}`
	req := httptest.NewRequest(http.MethodPost, "/posts/3/comments", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	var created Comment
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.PostID != 3 || created.Author != "bob" || created.Likes != 0 {
		t.Errorf("created = %+v", created)
	}
}

func TestCreateComment_MissingFields(t *testing.T) {
	r := newTestRouter(&mockService{}, &mockPosts{exists: true}, &mockReactions{})

	req := httptest.NewRequest(http.MethodPost, "/posts/3/comments", bytes.NewBufferString(`{"author":"bob"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestLikeComment_PassesDesiredState(t *testing.T) {
	var gotDesired *bool
	mr := &mockReactions{
		applyFunc: func(ctx context.Context, userID string, target reactions.Target, desired *bool) (reactions.Result, error) {
			gotDesired = desired
			if target.Kind != reactions.TargetComment || target.ID != 4 {
				t.Errorf("target = %+v", target)
			}
			return reactions.Result{Liked: true, Action: reactions.ActionAdded, Count: 1}, nil
		},
	}
	r := newTestRouter(&mockService{}, &mockPosts{}, mr)

	body := `{"user_id":"71b4c493-3b44-4b9e-9f4e-5a8d3a8f1c6e","like":true}`
	req := httptest.NewRequest(http.MethodPost, "/comments/4/like", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotDesired == nil || !*gotDesired {
		t.Error("comment like must pass the like flag as a set operation")
	}

	var resp struct {
		Message string `json:"message"`
		Likes   int64  `json:"likes"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != reactions.ActionAdded || resp.Likes != 1 {
		t.Errorf("response = %+v", resp)
	}
}

func TestLikeComment_AbsentFlagMeansUnset(t *testing.T) {
	var gotDesired *bool
	mr := &mockReactions{
		applyFunc: func(ctx context.Context, userID string, target reactions.Target, desired *bool) (reactions.Result, error) {
			gotDesired = desired
			return reactions.Result{Liked: false, Action: reactions.ActionNotExists, Count: 0}, nil
		},
	}
	r := newTestRouter(&mockService{}, &mockPosts{}, mr)

	body := `{"user_id":"71b4c493-3b44-4b9e-9f4e-5a8d3a8f1c6e"}`
	req := httptest.NewRequest(http.MethodPost, "/comments/4/like", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotDesired == nil || *gotDesired {
		t.Error("absent like flag must be treated as like=false")
	}
}

func TestLikeComment_UnknownComment(t *testing.T) {
	svc := &mockService{
		existsFunc: func(ctx context.Context, commentID int64) (bool, error) { return false, nil },
	}
	r := newTestRouter(svc, &mockPosts{}, &mockReactions{})

	body := `{"user_id":"71b4c493-3b44-4b9e-9f4e-5a8d3a8f1c6e","like":true}`
	req := httptest.NewRequest(http.MethodPost, "/comments/404/like", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDeleteComment_NotFound(t *testing.T) {
	svc := &mockService{
		deleteFunc: func(ctx context.Context, commentID int64) error {
			return ErrCommentNotFound
		},
	}
	r := newTestRouter(svc, &mockPosts{}, &mockReactions{})

	req := httptest.NewRequest(http.MethodDelete, "/comments/99", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
