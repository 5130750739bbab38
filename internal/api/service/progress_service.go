package service

import (
	"context"

	"nightshelf/internal/api/models"
	"nightshelf/internal/api/repository"
)

type ProgressService interface {
	Save(ctx context.Context, userID string, storyID int64, progress float64) error
}

type progressService struct {
	repo repository.ProgressRepository
}

func NewProgressService(repo repository.ProgressRepository) ProgressService {
	return &progressService{repo: repo}
}

// Save upserts the user's reading-history entry for the story. The
// progress value is stored as sent; the API contract does not constrain
// its range.
func (s *progressService) Save(ctx context.Context, userID string, storyID int64, progress float64) error {
	return s.repo.Upsert(ctx, &models.ReadingHistoryEntry{
		UserID:   userID,
		StoryID:  storyID,
		Progress: progress,
	})
}
