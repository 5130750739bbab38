package handler_test

import (
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

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Dashboard(ctx context.Context) (*service.DashboardData, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DashboardData), args.Error(1)
}

func TestStatsHandler_Dashboard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := new(MockStatsService)
	r := gin.New()
	h := handler.NewStatsHandler(svc)
	h.RegisterRoutes(r.Group("/api/admin", mockAuthMiddleware("admin-1", models.RoleAdmin)))

	data := &service.DashboardData{
		Stats: dto.DashboardStats{
			TotalStories:     12,
			PublishedStories: 9,
			DraftStories:     3,
			TotalUsers:       40,
			TotalCategories:  5,
			TotalViews:       1200,
			TotalLikes:       300,
		},
		RecentStories:  []models.Story{{ID: 12, Title: "Newest"}},
		PopularStories: []models.Story{{ID: 3, Title: "Most Viewed", Views: 999}},
	}
	svc.On("Dashboard", mock.Anything).Return(data, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.StatsResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(12), resp.Stats.TotalStories)
	assert.Equal(t, int64(3), resp.Stats.DraftStories)
	assert.Len(t, resp.RecentStories, 1)
	assert.Equal(t, "Most Viewed", resp.PopularStories[0].Title)
}
