package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"nightshelf/internal/api/dto"
	"nightshelf/internal/api/service"

	"github.com/gin-gonic/gin"
)

type AdminUserHandler struct {
	svc service.UserService
}

func NewAdminUserHandler(svc service.UserService) *AdminUserHandler {
	return &AdminUserHandler{svc: svc}
}

func (h *AdminUserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.List)
	rg.DELETE("/users/:id", h.Delete)
}

func (h *AdminUserHandler) List(c *gin.Context) {
	page := 1
	limit := 20
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, total, err := h.svc.List(ctx, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, dto.UserFromModel(u))
	}

	c.JSON(http.StatusOK, dto.UsersPageResponse{
		Success:     true,
		Users:       resp,
		TotalPages:  (total + int64(limit) - 1) / int64(limit),
		CurrentPage: page,
		TotalUsers:  total,
	})
}

func (h *AdminUserHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, c.Param("id")); err != nil {
		switch err {
		case service.ErrUserNotFound:
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		case service.ErrCannotDeleteAdmin:
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Cannot delete admin users"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted successfully"})
}
