package models

import "time"

// ReadingHistoryEntry tracks how far a user got in a story. The
// composite primary key guarantees at most one entry per (user, story);
// writes are upserts.
type ReadingHistoryEntry struct {
	UserID     string    `gorm:"type:uuid;not null;primaryKey;index:idx_user_story_hist" json:"userId"`
	StoryID    int64     `gorm:"not null;primaryKey;index:idx_user_story_hist" json:"storyId"`
	Progress   float64   `gorm:"default:0" json:"progress"`
	LastReadAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"lastReadAt"`
}

// TableName overrides the table name used by ReadingHistoryEntry
func (ReadingHistoryEntry) TableName() string {
	return "reading_history"
}
