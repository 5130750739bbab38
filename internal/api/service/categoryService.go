package service

import (
	"context"
	"errors"

	"nightshelf/internal/api/cache"
	"nightshelf/internal/api/dto"
	"nightshelf/internal/api/models"
	"nightshelf/internal/api/repository"
)

var (
	ErrCategoryNotEmpty  = errors.New("cannot delete category with existing stories")
	ErrCategoryNameInUse = errors.New("a category with this name already exists")
)

type CategoryService interface {
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, in dto.CreateCategoryRequest) (*models.Category, error)
	Update(ctx context.Context, id int64, in dto.UpdateCategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, id int64) error
}

type categoryService struct {
	repo      repository.CategoryRepository
	storyRepo repository.StoryRepository
	cache     *cache.Cache
}

func NewCategoryService(repo repository.CategoryRepository, storyRepo repository.StoryRepository, c *cache.Cache) CategoryService {
	return &categoryService{repo: repo, storyRepo: storyRepo, cache: c}
}

func (s *categoryService) List(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if s.cache.Get(ctx, cache.KeyCategories, &cached) {
		return cached, nil
	}

	list, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, cache.KeyCategories, list)
	return list, nil
}

func (s *categoryService) Create(ctx context.Context, in dto.CreateCategoryRequest) (*models.Category, error) {
	category := in.ToModel()
	category.Slug = Slugify(category.Name)

	if err := s.repo.Create(ctx, &category); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrCategoryNameInUse
		}
		return nil, err
	}
	s.cache.Invalidate(ctx, cache.KeyCategories)
	return &category, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, in dto.UpdateCategoryRequest) (*models.Category, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrCategoryNotFound
	}

	in.ApplyTo(existing)
	if in.Name != nil {
		existing.Slug = Slugify(existing.Name)
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrCategoryNameInUse
		}
		return nil, err
	}
	// featured stories embed category data, so both caches go
	s.cache.Invalidate(ctx, cache.KeyCategories, cache.KeyFeaturedStories)
	return existing, nil
}

// Delete refuses to remove a category that still has stories. The check
// runs against a live count of referencing rows, never the denormalized
// counter.
func (s *categoryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrCategoryNotFound
	}

	count, err := s.storyRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryNotEmpty
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cache.KeyCategories)
	return nil
}
