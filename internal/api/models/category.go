package models

import "time"

// Category groups stories. StoryCount is a denormalized counter kept in
// step with admin story writes inside the same transaction; deletion is
// guarded by a live count of referencing stories, not this field.
type Category struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:200;not null"`
	Description string    `json:"description"`
	Icon        string    `json:"icon" gorm:"default:'👻'"`
	Color       string    `json:"color" gorm:"default:'#8B0000'"`
	StoryCount  int64     `json:"storyCount" gorm:"default:0"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Category) TableName() string {
	return "categories"
}
