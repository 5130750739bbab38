package models

import (
	"time"

	"gorm.io/datatypes"
)

// Difficulty ratings, mildest to harshest.
const (
	DifficultyMild     = "mild"
	DifficultyModerate = "moderate"
	DifficultyIntense  = "intense"
	DifficultyExtreme  = "extreme"
)

// Publication states. No transition rules: any status can be set to
// any other through the admin update endpoint.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

type Story struct {
	ID          int64                       `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string                      `json:"title" gorm:"not null"`
	Slug        string                      `json:"slug" gorm:"uniqueIndex;size:200;not null"`
	Author      string                      `json:"author" gorm:"not null"` // free text, not a User reference
	Content     string                      `json:"content,omitempty" gorm:"type:text"`
	Excerpt     string                      `json:"excerpt"`
	CategoryID  int64                       `json:"categoryId" gorm:"not null;index"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	Difficulty  string                      `json:"difficulty" gorm:"default:'moderate';not null"`
	Status      string                      `json:"status" gorm:"default:'published';not null;index"`
	Featured    bool                        `json:"featured" gorm:"default:false"`
	CoverImage  string                      `json:"coverImage" gorm:"default:''"`
	ReadTime    int                         `json:"readTime" gorm:"default:0"` // minutes
	Views       int64                       `json:"views" gorm:"default:0"`
	Likes       int64                       `json:"likes" gorm:"default:0"`
	CreatedByID string                      `json:"-" gorm:"type:uuid"`
	CreatedAt   time.Time                   `json:"createdAt"`

	// associations
	Category  *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedBy *User     `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID"`
}

func (Story) TableName() string {
	return "stories"
}

func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyMild, DifficultyModerate, DifficultyIntense, DifficultyExtreme:
		return true
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}
