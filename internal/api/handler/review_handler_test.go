package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/handler"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/service"
	"reviewhub/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- MOCK SERVICE ---

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Create(ctx context.Context, actorID string, titleID int64, text string, score int) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, actorID, titleID, text, score)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, actorID string, actorRole models.Role, titleID, reviewID int64, patch dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, actorID, actorRole, titleID, reviewID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, actorID string, actorRole models.Role, titleID, reviewID int64) error {
	args := m.Called(ctx, actorID, actorRole, titleID, reviewID)
	return args.Error(0)
}

func (m *MockReviewService) GetByID(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, titleID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) (*dto.Paginated[dto.ReviewResponse], error) {
	args := m.Called(ctx, titleID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Paginated[dto.ReviewResponse]), args.Error(1)
}

// --- SETUP ---

func testConfig() *config.Config {
	return &config.Config{PageSize: 5, MaxPageSize: 100}
}

// fakeAuth injects an identity the way AuthMiddleware would.
func fakeAuth(userID string, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserID, userID)
		c.Set(middleware.CtxUsername, "testuser")
		c.Set(middleware.CtxRole, role)
		c.Next()
	}
}

func setupReviewRouter(mockService *MockReviewService, authMW gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewReviewHandler(mockService, testConfig())
	h.RegisterRoutes(r.Group("/api/v1/titles"), authMW)
	return r
}

func TestReviewHandlerList(t *testing.T) {
	mockService := new(MockReviewService)
	r := setupReviewRouter(mockService, fakeAuth("user-id", models.RoleUser))

	page := dto.NewPaginated([]dto.ReviewResponse{
		{ID: 1, Author: "alice", Score: 8, TitleID: 7},
	}, 1, 1, 5)
	mockService.On("ListByTitle", mock.Anything, int64(7), 1, 5).Return(page, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/titles/7/reviews", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got dto.Paginated[dto.ReviewResponse]
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got.Data, 1)
	assert.Equal(t, "alice", got.Data[0].Author)
	mockService.AssertExpectations(t)
}

func TestReviewHandlerList_BadTitleID(t *testing.T) {
	mockService := new(MockReviewService)
	r := setupReviewRouter(mockService, fakeAuth("user-id", models.RoleUser))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/titles/abc/reviews", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "ListByTitle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewHandlerCreate(t *testing.T) {
	mockService := new(MockReviewService)
	r := setupReviewRouter(mockService, fakeAuth("user-id", models.RoleUser))

	created := &dto.ReviewResponse{ID: 42, Author: "testuser", Text: "great", Score: 8, TitleID: 7}
	mockService.On("Create", mock.Anything, "user-id", int64(7), "great", 8).Return(created, nil)

	body, _ := json.Marshal(dto.CreateReviewDTO{Text: "great", Score: 8})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/titles/7/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestReviewHandlerCreate_ScoreOutOfRange(t *testing.T) {
	mockService := new(MockReviewService)
	r := setupReviewRouter(mockService, fakeAuth("user-id", models.RoleUser))

	// binding rejects score=11 before the service is reached
	body, _ := json.Marshal(map[string]any{"text": "great", "score": 11})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/titles/7/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewHandlerCreate_Duplicate(t *testing.T) {
	mockService := new(MockReviewService)
	r := setupReviewRouter(mockService, fakeAuth("user-id", models.RoleUser))

	mockService.On("Create", mock.Anything, "user-id", int64(7), "again", 5).
		Return(nil, service.ErrDuplicateReview)

	body, _ := json.Marshal(dto.CreateReviewDTO{Text: "again", Score: 5})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/titles/7/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewHandlerCreate_TitleMissing(t *testing.T) {
	mockService := new(MockReviewService)
	r := setupReviewRouter(mockService, fakeAuth("user-id", models.RoleUser))

	mockService.On("Create", mock.Anything, "user-id", int64(999), "text", 5).
		Return(nil, service.ErrTitleNotFound)

	body, _ := json.Marshal(dto.CreateReviewDTO{Text: "text", Score: 5})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/titles/999/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewHandlerUpdate_Forbidden(t *testing.T) {
	mockService := new(MockReviewService)
	r := setupReviewRouter(mockService, fakeAuth("stranger-id", models.RoleUser))

	mockService.On("Update", mock.Anything, "stranger-id", models.RoleUser, int64(7), int64(42),
		mock.AnythingOfType("dto.UpdateReviewDTO")).Return(nil, service.ErrForbidden)

	body, _ := json.Marshal(map[string]any{"text": "hijack"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPatch, "/api/v1/titles/7/reviews/42", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReviewHandlerDelete(t *testing.T) {
	mockService := new(MockReviewService)
	r := setupReviewRouter(mockService, fakeAuth("user-id", models.RoleAdmin))

	mockService.On("Delete", mock.Anything, "user-id", models.RoleAdmin, int64(7), int64(42)).Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/titles/7/reviews/42", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}
