package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"karkandu/internal/apperr"
	"karkandu/internal/httpapi/dto"
	"karkandu/internal/httpapi/repository"
)

// MockCommentService mocks the CommentService interface
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Add(ctx context.Context, userID string, input dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) Reply(ctx context.Context, parentID, userID, content string) (*dto.CommentResponse, error) {
	args := m.Called(ctx, parentID, userID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) ListByBlog(ctx context.Context, blogID, viewerID string, page, pageSize int) (*dto.CommentListResponse, error) {
	args := m.Called(ctx, blogID, viewerID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentListResponse), args.Error(1)
}

func (m *MockCommentService) ToggleLike(ctx context.Context, commentID, userID string) (*dto.CommentLikeResult, error) {
	args := m.Called(ctx, commentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentLikeResult), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, commentID, userID string, isAdmin bool) error {
	args := m.Called(ctx, commentID, userID, isAdmin)
	return args.Error(0)
}

func (m *MockCommentService) ListAdmin(ctx context.Context, filters repository.AdminCommentFilters, page int) (*dto.AdminCommentListResponse, error) {
	args := m.Called(ctx, filters, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AdminCommentListResponse), args.Error(1)
}

func (m *MockCommentService) HardDelete(ctx context.Context, commentID string) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

// sessionFor injects an authenticated session the way the auth middleware
// would.
func sessionFor(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	}
}

func setupCommentRouter(svc *MockCommentService, userID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewCommentHandler(svc)

	api := router.Group("/api/user")
	if userID != "" {
		api.Use(sessionFor(userID, role))
	}
	handler.RegisterRoutes(api)
	handler.RegisterProtectedRoutes(api)
	return router
}

func TestAddComment_Created(t *testing.T) {
	svc := new(MockCommentService)
	router := setupCommentRouter(svc, "user-1", "user")

	input := dto.CreateCommentDTO{BlogID: "blog-1", Content: "lovely post"}
	svc.On("Add", mock.Anything, "user-1", input).
		Return(&dto.CommentResponse{ID: "comment-1", Content: "lovely post"}, nil)

	body, _ := json.Marshal(input)
	req, _ := http.NewRequest("POST", "/api/user/comments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestAddComment_MissingBody(t *testing.T) {
	svc := new(MockCommentService)
	router := setupCommentRouter(svc, "user-1", "user")

	req, _ := http.NewRequest("POST", "/api/user/comments", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteComment_ForbiddenMapsTo403(t *testing.T) {
	svc := new(MockCommentService)
	router := setupCommentRouter(svc, "user-2", "user")

	svc.On("Delete", mock.Anything, "comment-1", "user-2", false).
		Return(apperr.New(apperr.ErrForbidden, "you can only delete your own comments"))

	req, _ := http.NewRequest("DELETE", "/api/user/comments/comment-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var response map[string]any
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, false, response["success"])
	assert.Contains(t, response["message"], "your own comments")
}

func TestDeleteComment_AdminFlagPassedThrough(t *testing.T) {
	svc := new(MockCommentService)
	router := setupCommentRouter(svc, "admin-1", "admin")

	svc.On("Delete", mock.Anything, "comment-1", "admin-1", true).Return(nil)

	req, _ := http.NewRequest("DELETE", "/api/user/comments/comment-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestToggleCommentLike_OK(t *testing.T) {
	svc := new(MockCommentService)
	router := setupCommentRouter(svc, "user-1", "user")

	svc.On("ToggleLike", mock.Anything, "comment-1", "user-1").
		Return(&dto.CommentLikeResult{Liked: true, LikeCount: 4}, nil)

	req, _ := http.NewRequest("POST", "/api/user/comments/comment-1/like", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data dto.CommentLikeResult `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.True(t, response.Data.Liked)
	assert.Equal(t, int64(4), response.Data.LikeCount)
}

func TestListComments_GuestGetsDefaults(t *testing.T) {
	svc := new(MockCommentService)
	router := setupCommentRouter(svc, "", "")

	svc.On("ListByBlog", mock.Anything, "blog-1", "", 1, 10).
		Return(&dto.CommentListResponse{
			Comments:   []dto.CommentResponse{},
			Pagination: dto.NewPagination(0, 1, 10),
		}, nil)

	req, _ := http.NewRequest("GET", "/api/user/comments/blog-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestListComments_InvalidIDMapsTo400(t *testing.T) {
	svc := new(MockCommentService)
	router := setupCommentRouter(svc, "", "")

	svc.On("ListByBlog", mock.Anything, "nope", "", 1, 10).
		Return(nil, apperr.New(apperr.ErrInvalid, "invalid blog id"))

	req, _ := http.NewRequest("GET", "/api/user/comments/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
