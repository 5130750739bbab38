package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nightshelf/internal/api/dto"
	"nightshelf/internal/api/handler"
	"nightshelf/internal/api/models"
	"nightshelf/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- MOCK SERVICE ---

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*models.User), args.Error(2)
}

func (m *MockAuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func setupAuthRouter(svc *MockAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewAuthHandler(svc)

	auth := r.Group("/api/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.GET("/me", mockAuthMiddleware("user-1", models.RoleUser), h.Me)
	return r
}

// --- TESTS ---

func TestAuthHandler_Register(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc)

	t.Run("Success", func(t *testing.T) {
		user := &models.User{ID: "user-1", Username: "ghoul", Email: "ghoul@night.dev", Role: models.RoleUser}
		svc.On("Register", mock.Anything, "ghoul", "ghoul@night.dev", "hunter22").
			Return(user, "signed-token", nil).Once()

		body, _ := json.Marshal(dto.RegisterRequest{Username: "ghoul", Email: "ghoul@night.dev", Password: "hunter22"})
		req, _ := http.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp dto.AuthResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.True(t, resp.Success)
		assert.Equal(t, "signed-token", resp.Token)
		assert.Equal(t, "ghoul", resp.User.Username)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		svc.On("Register", mock.Anything, "ghoul2", "ghoul@night.dev", "hunter22").
			Return(nil, "", service.ErrEmailInUse).Once()

		body, _ := json.Marshal(dto.RegisterRequest{Username: "ghoul2", Email: "ghoul@night.dev", Password: "hunter22"})
		req, _ := http.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ValidationRejectsShortPassword", func(t *testing.T) {
		body, _ := json.Marshal(dto.RegisterRequest{Username: "ghoul", Email: "ghoul@night.dev", Password: "abc"})
		req, _ := http.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Register")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc)

	t.Run("Success", func(t *testing.T) {
		user := &models.User{ID: "user-1", Username: "ghoul", Email: "ghoul@night.dev"}
		svc.On("Login", mock.Anything, "ghoul@night.dev", "hunter22").
			Return("signed-token", user, nil).Once()

		body, _ := json.Marshal(dto.LoginRequest{Email: "ghoul@night.dev", Password: "hunter22"})
		req, _ := http.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.AuthResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, "signed-token", resp.Token)
	})

	t.Run("BadCredentials", func(t *testing.T) {
		svc.On("Login", mock.Anything, "ghoul@night.dev", "wrong").
			Return("", nil, service.ErrInvalidCredentials).Once()

		body, _ := json.Marshal(dto.LoginRequest{Email: "ghoul@night.dev", Password: "wrong"})
		req, _ := http.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var resp map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, "Invalid credentials", resp["message"])
	})
}

func TestAuthHandler_Me(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc)

	t.Run("Success", func(t *testing.T) {
		user := &models.User{
			ID:       "user-1",
			Username: "ghoul",
			Email:    "ghoul@night.dev",
			FavoriteStories: []models.FavoriteStory{
				{UserID: "user-1", StoryID: 3},
				{UserID: "user-1", StoryID: 7},
			},
		}
		svc.On("Me", mock.Anything, "user-1").Return(user, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/auth/me", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.MeResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, []int64{3, 7}, resp.User.FavoriteStories)
	})

	t.Run("Gone", func(t *testing.T) {
		svc.On("Me", mock.Anything, "user-1").Return(nil, service.ErrUserNotFound).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/auth/me", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
