package repository

import (
	"context"
	"time"

	"nightshelf/internal/api/models"

	"gorm.io/gorm"
)

type progressRepository struct {
	db *gorm.DB
}

type ProgressRepository interface {
	GetByStoryID(ctx context.Context, userID string, storyID int64) (*models.ReadingHistoryEntry, error)
	Upsert(ctx context.Context, entry *models.ReadingHistoryEntry) error
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) GetByStoryID(ctx context.Context, userID string, storyID int64) (*models.ReadingHistoryEntry, error) {
	var entry models.ReadingHistoryEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND story_id = ?", userID, storyID).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Upsert keeps exactly one history row per (user, story): the progress
// value and timestamp are replaced when the row already exists.
func (r *progressRepository) Upsert(ctx context.Context, entry *models.ReadingHistoryEntry) error {
	var existing models.ReadingHistoryEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND story_id = ?", entry.UserID, entry.StoryID).
		First(&existing).Error

	if err == gorm.ErrRecordNotFound {
		entry.LastReadAt = time.Now()
		return r.db.WithContext(ctx).Create(entry).Error
	} else if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&existing).Updates(map[string]any{
		"progress":     entry.Progress,
		"last_read_at": time.Now(),
	}).Error
}
