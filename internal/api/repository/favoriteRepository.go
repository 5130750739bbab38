package repository

import (
	"context"
	"fmt"

	"nightshelf/internal/api/models"

	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Add(ctx context.Context, userID string, storyID int64) error
	Remove(ctx context.Context, userID string, storyID int64) error
	Exists(ctx context.Context, userID string, storyID int64) (bool, error)
	ListStoryIDs(ctx context.Context, userID string) ([]int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Add(ctx context.Context, userID string, storyID int64) error {
	fav := &models.FavoriteStory{
		UserID:  userID,
		StoryID: storyID,
	}
	if err := r.db.WithContext(ctx).Create(fav).Error; err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID string, storyID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND story_id = ?", userID, storyID).
		Delete(&models.FavoriteStory{})
	if result.Error != nil {
		return fmt.Errorf("remove favorite: %w", result.Error)
	}
	return nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID string, storyID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FavoriteStory{}).
		Where("user_id = ? AND story_id = ?", userID, storyID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListStoryIDs returns the user's favorites in insertion order.
func (r *favoriteRepository) ListStoryIDs(ctx context.Context, userID string) ([]int64, error) {
	ids := make([]int64, 0)
	if err := r.db.WithContext(ctx).
		Model(&models.FavoriteStory{}).
		Where("user_id = ?", userID).
		Order("id asc").
		Pluck("story_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return ids, nil
}
