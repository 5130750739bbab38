package dto

import (
	"time"

	"nightshelf/internal/api/models"
)

// CreateCategoryRequest used for POST /api/admin/categories
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

func (d CreateCategoryRequest) ToModel() models.Category {
	c := models.Category{
		Name:        d.Name,
		Description: d.Description,
		Icon:        d.Icon,
		Color:       d.Color,
	}
	if c.Icon == "" {
		c.Icon = "👻"
	}
	if c.Color == "" {
		c.Color = "#8B0000"
	}
	return c
}

// UpdateCategoryRequest used for PUT /api/admin/categories/:id
// (partial updates allowed; nil means "not provided")
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
}

func (d UpdateCategoryRequest) ApplyTo(c *models.Category) {
	if d.Name != nil {
		c.Name = *d.Name
	}
	if d.Description != nil {
		c.Description = *d.Description
	}
	if d.Icon != nil {
		c.Icon = *d.Icon
	}
	if d.Color != nil {
		c.Color = *d.Color
	}
}

// CategoryResponse DTO for responses
type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	StoryCount  int64     `json:"storyCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

func CategoryFromModel(c models.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Icon:        c.Icon,
		Color:       c.Color,
		StoryCount:  c.StoryCount,
		CreatedAt:   c.CreatedAt,
	}
}

// CategoriesResponse: full category listing
type CategoriesResponse struct {
	Success    bool               `json:"success"`
	Categories []CategoryResponse `json:"categories"`
}
