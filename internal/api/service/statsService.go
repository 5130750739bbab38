package service

import (
	"context"

	"nightshelf/internal/api/dto"
	"nightshelf/internal/api/models"
	"nightshelf/internal/api/repository"
)

const dashboardListLimit = 5

// DashboardData bundles everything the admin dashboard shows.
type DashboardData struct {
	Stats          dto.DashboardStats
	RecentStories  []models.Story
	PopularStories []models.Story
}

type StatsService interface {
	Dashboard(ctx context.Context) (*DashboardData, error)
}

type statsService struct {
	storyRepo    repository.StoryRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
}

func NewStatsService(storyRepo repository.StoryRepository, categoryRepo repository.CategoryRepository, userRepo repository.UserRepository) StatsService {
	return &statsService{storyRepo: storyRepo, categoryRepo: categoryRepo, userRepo: userRepo}
}

// Dashboard computes every aggregate live at request time; nothing here
// is cached or precomputed.
func (s *statsService) Dashboard(ctx context.Context) (*DashboardData, error) {
	var data DashboardData
	var err error

	if data.Stats.TotalStories, err = s.storyRepo.CountByStatus(ctx, ""); err != nil {
		return nil, err
	}
	if data.Stats.PublishedStories, err = s.storyRepo.CountByStatus(ctx, models.StatusPublished); err != nil {
		return nil, err
	}
	if data.Stats.DraftStories, err = s.storyRepo.CountByStatus(ctx, models.StatusDraft); err != nil {
		return nil, err
	}
	if data.Stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if data.Stats.TotalCategories, err = s.categoryRepo.Count(ctx); err != nil {
		return nil, err
	}
	if data.Stats.TotalViews, data.Stats.TotalLikes, err = s.storyRepo.SumCounters(ctx); err != nil {
		return nil, err
	}

	if data.RecentStories, err = s.storyRepo.Recent(ctx, dashboardListLimit); err != nil {
		return nil, err
	}
	if data.PopularStories, err = s.storyRepo.PopularPublished(ctx, dashboardListLimit); err != nil {
		return nil, err
	}

	return &data, nil
}
