package models

import "time"

// FavoriteStory is one row of a user's favorites set. The autoincrement
// ID preserves insertion order; the composite unique index makes the
// set semantics explicit at the schema level.
type FavoriteStory struct {
	ID      int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_story_fav" json:"userId"`
	StoryID int64     `gorm:"not null;index;uniqueIndex:idx_user_story_fav" json:"storyId"`
	AddedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"addedAt"`

	// associations
	Story *Story `gorm:"foreignKey:StoryID" json:"story,omitempty"`
}

func (FavoriteStory) TableName() string {
	return "favorite_stories"
}
