package handler

import (
	"context"
	"net/http"
	"time"

	"nightshelf/internal/api/dto"
	"nightshelf/internal/api/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	svc service.StatsService
}

func NewStatsHandler(svc service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.Dashboard)
}

func (h *StatsHandler) Dashboard(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	data, err := h.svc.Dashboard(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	recent := make([]dto.StorySummaryResponse, 0, len(data.RecentStories))
	for _, s := range data.RecentStories {
		recent = append(recent, dto.StorySummaryFromModel(s, false))
	}
	popular := make([]dto.StorySummaryResponse, 0, len(data.PopularStories))
	for _, s := range data.PopularStories {
		popular = append(popular, dto.StorySummaryFromModel(s, false))
	}

	c.JSON(http.StatusOK, dto.StatsResponse{
		Success:        true,
		Stats:          data.Stats,
		RecentStories:  recent,
		PopularStories: popular,
	})
}
