package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"nightshelf/internal/api/dto"
	"nightshelf/internal/api/service"

	"github.com/gin-gonic/gin"
)

type StoryHandler struct {
	svc       service.StoryService
	favorites service.FavoriteService
	progress  service.ProgressService
}

func NewStoryHandler(svc service.StoryService, favorites service.FavoriteService, progress service.ProgressService) *StoryHandler {
	return &StoryHandler{svc: svc, favorites: favorites, progress: progress}
}

// RegisterRoutes wires the public story endpoints; the per-user
// mutations take the auth gate.
func (h *StoryHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/featured", h.Featured)
	rg.GET("/:slug", h.GetBySlug)

	rg.POST("/:id/like", authRequired, h.Like)
	rg.POST("/:id/favorite", authRequired, h.Favorite)
	rg.POST("/:id/progress", authRequired, h.Progress)
}

func (h *StoryHandler) List(c *gin.Context) {
	q := service.PublicStoryQuery{
		Difficulty: strings.TrimSpace(c.Query("difficulty")),
		Search:     strings.TrimSpace(c.Query("search")),
		Sort:       strings.TrimSpace(c.Query("sort")),
		Page:       1,
		Limit:      12,
	}

	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			q.Page = parsed
		}
	}
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			q.Limit = parsed
		}
	}
	if cat := c.Query("category"); cat != "" {
		if parsed, err := strconv.ParseInt(cat, 10, 64); err == nil && parsed > 0 {
			q.CategoryID = parsed
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, total, err := h.svc.List(ctx, q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	resp := make([]dto.StorySummaryResponse, 0, len(list))
	for _, s := range list {
		resp = append(resp, dto.StorySummaryFromModel(s, false))
	}

	c.JSON(http.StatusOK, dto.StoriesPageResponse{
		Success:      true,
		Stories:      resp,
		TotalPages:   (total + int64(q.Limit) - 1) / int64(q.Limit),
		CurrentPage:  q.Page,
		TotalStories: total,
	})
}

func (h *StoryHandler) Featured(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.Featured(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	resp := make([]dto.StorySummaryResponse, 0, len(list))
	for _, s := range list {
		resp = append(resp, dto.StorySummaryFromModel(s, false))
	}
	c.JSON(http.StatusOK, dto.FeaturedStoriesResponse{Success: true, Stories: resp})
}

// GetBySlug returns the full story, content included. Every hit counts
// as a view.
func (h *StoryHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	story, err := h.svc.GetBySlug(ctx, slug)
	if err != nil {
		if err == service.ErrStoryNotFound {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Story not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "story": dto.StoryFromModel(*story)})
}

func (h *StoryHandler) Like(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid story id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	likes, err := h.svc.Like(ctx, id)
	if err != nil {
		if err == service.ErrStoryNotFound {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Story not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "likes": likes})
}

func (h *StoryHandler) Favorite(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not authenticated"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid story id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	favorites, err := h.favorites.Toggle(ctx, userID, id)
	if err != nil {
		if err == service.ErrStoryNotFound {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Story not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         "Favorites updated",
		"favoriteStories": favorites,
	})
}

func (h *StoryHandler) Progress(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not authenticated"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid story id"})
		return
	}

	var req dto.SaveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.progress.Save(ctx, userID, id, req.Progress); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Progress saved"})
}
