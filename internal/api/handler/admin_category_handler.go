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

type AdminCategoryHandler struct {
	svc service.CategoryService
}

func NewAdminCategoryHandler(svc service.CategoryService) *AdminCategoryHandler {
	return &AdminCategoryHandler{svc: svc}
}

func (h *AdminCategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.List)
	rg.POST("/categories", h.Create)
	rg.PUT("/categories/:id", h.Update)
	rg.DELETE("/categories/:id", h.Delete)
}

func (h *AdminCategoryHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	categories, err := h.svc.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	resp := make([]dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		resp = append(resp, dto.CategoryFromModel(cat))
	}

	c.JSON(http.StatusOK, dto.CategoriesResponse{Success: true, Categories: resp})
}

func (h *AdminCategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	category, err := h.svc.Create(ctx, req)
	if err != nil {
		h.writeCategoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Category created successfully",
		"category": dto.CategoryFromModel(*category),
	})
}

func (h *AdminCategoryHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid category id"})
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	category, err := h.svc.Update(ctx, id, req)
	if err != nil {
		h.writeCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Category updated successfully",
		"category": dto.CategoryFromModel(*category),
	})
}

func (h *AdminCategoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid category id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		h.writeCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted successfully"})
}

func (h *AdminCategoryHandler) writeCategoryError(c *gin.Context, err error) {
	switch err {
	case service.ErrCategoryNotFound:
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
	case service.ErrCategoryNotEmpty:
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Cannot delete category with existing stories"})
	case service.ErrCategoryNameInUse:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
	}
}
