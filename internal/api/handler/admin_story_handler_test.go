package handler_test

import (
	"bytes"
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

func setupAdminStoryRouter(svc *MockStoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewAdminStoryHandler(svc)

	admin := r.Group("/api/admin", mockAuthMiddleware("admin-1", models.RoleAdmin))
	h.RegisterRoutes(admin)
	return r
}

func TestAdminStoryHandler_List(t *testing.T) {
	svc := new(MockStoryService)
	r := setupAdminStoryRouter(svc)

	stories := []models.Story{
		{
			ID:     1,
			Title:  "Draft One",
			Status: models.StatusDraft,
			CreatedBy: &models.User{
				ID:       "admin-1",
				Username: "keeper",
				Email:    "keeper@night.dev",
			},
		},
	}

	expected := service.AdminStoryQuery{Status: "draft", Page: 1, Limit: 20}
	svc.On("AdminList", mock.Anything, expected).Return(stories, int64(1), nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/admin/stories?status=draft", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.StoriesPageResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Len(t, resp.Stories, 1)
	// the admin listing exposes the creator's email
	assert.Equal(t, "keeper@night.dev", resp.Stories[0].CreatedBy.Email)
	svc.AssertExpectations(t)
}

func TestAdminStoryHandler_Create(t *testing.T) {
	svc := new(MockStoryService)
	r := setupAdminStoryRouter(svc)

	createReq := dto.CreateStoryRequest{
		Title:    "The Midnight Caller",
		Author:   "A. Poe",
		Content:  "It rang at 3am.",
		Excerpt:  "A phone that should not ring.",
		Category: 2,
	}

	t.Run("Success", func(t *testing.T) {
		created := &models.Story{ID: 10, Title: createReq.Title, Slug: "the-midnight-caller"}
		svc.On("Create", mock.Anything, createReq, "admin-1").Return(created, nil).Once()

		body, _ := json.Marshal(createReq)
		req, _ := http.NewRequest(http.MethodPost, "/api/admin/stories", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &resp)
		story := resp["story"].(map[string]interface{})
		assert.Equal(t, "the-midnight-caller", story["slug"])
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		svc.On("Create", mock.Anything, createReq, "admin-1").
			Return(nil, service.ErrCategoryNotFound).Once()

		body, _ := json.Marshal(createReq)
		req, _ := http.NewRequest(http.MethodPost, "/api/admin/stories", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("MissingTitleRejectedBeforeService", func(t *testing.T) {
		body := []byte(`{"author":"A. Poe","content":"x","excerpt":"y","category":2}`)
		req, _ := http.NewRequest(http.MethodPost, "/api/admin/stories", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminStoryHandler_Update(t *testing.T) {
	svc := new(MockStoryService)
	r := setupAdminStoryRouter(svc)

	title := "Renamed"
	updateReq := dto.UpdateStoryRequest{Title: &title}

	t.Run("Success", func(t *testing.T) {
		updated := &models.Story{ID: 10, Title: "Renamed", Slug: "renamed"}
		svc.On("Update", mock.Anything, int64(10), updateReq).Return(updated, nil).Once()

		body, _ := json.Marshal(updateReq)
		req, _ := http.NewRequest(http.MethodPut, "/api/admin/stories/10", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc.On("Update", mock.Anything, int64(99), updateReq).
			Return(nil, service.ErrStoryNotFound).Once()

		body, _ := json.Marshal(updateReq)
		req, _ := http.NewRequest(http.MethodPut, "/api/admin/stories/99", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("SlugTaken", func(t *testing.T) {
		svc.On("Update", mock.Anything, int64(10), updateReq).
			Return(nil, service.ErrSlugInUse).Once()

		body, _ := json.Marshal(updateReq)
		req, _ := http.NewRequest(http.MethodPut, "/api/admin/stories/10", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminStoryHandler_Delete(t *testing.T) {
	svc := new(MockStoryService)
	r := setupAdminStoryRouter(svc)

	t.Run("Success", func(t *testing.T) {
		svc.On("Delete", mock.Anything, int64(10)).Return(nil).Once()

		req, _ := http.NewRequest(http.MethodDelete, "/api/admin/stories/10", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc.On("Delete", mock.Anything, int64(99)).Return(service.ErrStoryNotFound).Once()

		req, _ := http.NewRequest(http.MethodDelete, "/api/admin/stories/99", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
