package service

import (
	"context"

	"nightshelf/internal/api/repository"
)

type FavoriteService interface {
	Toggle(ctx context.Context, userID string, storyID int64) ([]int64, error)
}

type favoriteService struct {
	repo      repository.FavoriteRepository
	storyRepo repository.StoryRepository
}

func NewFavoriteService(repo repository.FavoriteRepository, storyRepo repository.StoryRepository) FavoriteService {
	return &favoriteService{repo: repo, storyRepo: storyRepo}
}

// Toggle flips the story's membership in the user's favorites and
// returns the updated list of story ids. Applying it twice restores the
// original state.
func (s *favoriteService) Toggle(ctx context.Context, userID string, storyID int64) ([]int64, error) {
	ok, err := s.storyRepo.Exists(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrStoryNotFound
	}

	exists, err := s.repo.Exists(ctx, userID, storyID)
	if err != nil {
		return nil, err
	}

	if exists {
		err = s.repo.Remove(ctx, userID, storyID)
	} else {
		err = s.repo.Add(ctx, userID, storyID)
	}
	if err != nil {
		return nil, err
	}

	return s.repo.ListStoryIDs(ctx, userID)
}
