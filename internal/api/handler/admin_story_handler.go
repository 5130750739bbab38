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

// AdminStoryHandler serves the back-office story CRUD. The admin gate
// runs before any of these, wired in the router setup.
type AdminStoryHandler struct {
	svc service.StoryService
}

func NewAdminStoryHandler(svc service.StoryService) *AdminStoryHandler {
	return &AdminStoryHandler{svc: svc}
}

func (h *AdminStoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stories", h.List)
	rg.POST("/stories", h.Create)
	rg.PUT("/stories/:id", h.Update)
	rg.DELETE("/stories/:id", h.Delete)
}

// List is the admin view: every status, creator attached.
func (h *AdminStoryHandler) List(c *gin.Context) {
	q := service.AdminStoryQuery{
		Status: strings.TrimSpace(c.Query("status")),
		Search: strings.TrimSpace(c.Query("search")),
		Page:   1,
		Limit:  20,
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

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, total, err := h.svc.AdminList(ctx, q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	resp := make([]dto.StorySummaryResponse, 0, len(list))
	for _, s := range list {
		resp = append(resp, dto.StorySummaryFromModel(s, true))
	}

	c.JSON(http.StatusOK, dto.StoriesPageResponse{
		Success:      true,
		Stories:      resp,
		TotalPages:   (total + int64(q.Limit) - 1) / int64(q.Limit),
		CurrentPage:  q.Page,
		TotalStories: total,
	})
}

func (h *AdminStoryHandler) Create(c *gin.Context) {
	var req dto.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	story, err := h.svc.Create(ctx, req, c.GetString("userID"))
	if err != nil {
		h.writeStoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Story created successfully",
		"story":   dto.StoryFromModel(*story),
	})
}

func (h *AdminStoryHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid story id"})
		return
	}

	var req dto.UpdateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	story, err := h.svc.Update(ctx, id, req)
	if err != nil {
		h.writeStoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Story updated successfully",
		"story":   dto.StoryFromModel(*story),
	})
}

func (h *AdminStoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid story id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		h.writeStoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Story deleted successfully"})
}

func (h *AdminStoryHandler) writeStoryError(c *gin.Context, err error) {
	switch err {
	case service.ErrStoryNotFound:
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Story not found"})
	case service.ErrCategoryNotFound, service.ErrInvalidDifficulty, service.ErrInvalidStatus, service.ErrSlugInUse:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
	}
}
