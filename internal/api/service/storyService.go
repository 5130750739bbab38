package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"nightshelf/internal/api/cache"
	"nightshelf/internal/api/dto"
	"nightshelf/internal/api/models"
	"nightshelf/internal/api/repository"

	"gorm.io/gorm"
)

var (
	ErrStoryNotFound     = errors.New("story not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrSlugInUse         = errors.New("a story with this title already exists")
)

// PublicStoryQuery is the filter set readers can use. Only published
// stories are ever visible through it.
type PublicStoryQuery struct {
	CategoryID int64
	Difficulty string
	Search     string
	Sort       string
	Page       int
	Limit      int
}

// AdminStoryQuery covers the back-office listing: every status, search
// over title and author only.
type AdminStoryQuery struct {
	Status string
	Search string
	Page   int
	Limit  int
}

const featuredLimit = 6

type StoryService interface {
	List(ctx context.Context, q PublicStoryQuery) ([]models.Story, int64, error)
	Featured(ctx context.Context) ([]models.Story, error)
	GetBySlug(ctx context.Context, slug string) (*models.Story, error)
	Like(ctx context.Context, id int64) (int64, error)

	AdminList(ctx context.Context, q AdminStoryQuery) ([]models.Story, int64, error)
	Create(ctx context.Context, in dto.CreateStoryRequest, createdByID string) (*models.Story, error)
	Update(ctx context.Context, id int64, in dto.UpdateStoryRequest) (*models.Story, error)
	Delete(ctx context.Context, id int64) error
}

type storyService struct {
	repo         repository.StoryRepository
	categoryRepo repository.CategoryRepository
	cache        *cache.Cache
}

func NewStoryService(repo repository.StoryRepository, categoryRepo repository.CategoryRepository, c *cache.Cache) StoryService {
	return &storyService{repo: repo, categoryRepo: categoryRepo, cache: c}
}

func (s *storyService) List(ctx context.Context, q PublicStoryQuery) ([]models.Story, int64, error) {
	return s.repo.List(ctx, repository.StoryFilter{
		Status:     models.StatusPublished,
		CategoryID: q.CategoryID,
		Difficulty: q.Difficulty,
		Search:     q.Search,
		SearchTags: true,
		Page:       q.Page,
		Limit:      q.Limit,
		OrderBy:    orderFromSort(q.Sort),
	})
}

func (s *storyService) Featured(ctx context.Context) ([]models.Story, error) {
	var cached []models.Story
	if s.cache.Get(ctx, cache.KeyFeaturedStories, &cached) {
		return cached, nil
	}

	list, err := s.repo.Featured(ctx, featuredLimit)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, cache.KeyFeaturedStories, list)
	return list, nil
}

// GetBySlug resolves a published story and counts the read: every call
// bumps the view counter, repeat reads included.
func (s *storyService) GetBySlug(ctx context.Context, slug string) (*models.Story, error) {
	story, err := s.repo.FindBySlugPublished(ctx, slug)
	if err != nil {
		return nil, ErrStoryNotFound
	}

	if err := s.repo.IncrementViews(ctx, story.ID); err != nil {
		return nil, err
	}
	story.Views++
	return story, nil
}

func (s *storyService) Like(ctx context.Context, id int64) (int64, error) {
	likes, err := s.repo.IncrementLikes(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrStoryNotFound
		}
		return 0, err
	}
	return likes, nil
}

func (s *storyService) AdminList(ctx context.Context, q AdminStoryQuery) ([]models.Story, int64, error) {
	return s.repo.List(ctx, repository.StoryFilter{
		Status:      q.Status,
		Search:      q.Search,
		Page:        q.Page,
		Limit:       q.Limit,
		WithCreator: true,
	})
}

func (s *storyService) Create(ctx context.Context, in dto.CreateStoryRequest, createdByID string) (*models.Story, error) {
	story := in.ToModel()
	story.CreatedByID = createdByID

	if !models.ValidDifficulty(story.Difficulty) {
		return nil, ErrInvalidDifficulty
	}
	if !models.ValidStatus(story.Status) {
		return nil, ErrInvalidStatus
	}
	if _, err := s.categoryRepo.FindByID(ctx, story.CategoryID); err != nil {
		return nil, ErrCategoryNotFound
	}

	story.Slug = Slugify(story.Title)
	if story.ReadTime == 0 {
		story.ReadTime = ReadTime(story.Content)
	}

	if err := s.repo.CreateWithCategoryCount(ctx, &story); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrSlugInUse
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.KeyFeaturedStories, cache.KeyCategories)

	created, err := s.repo.FindByID(ctx, story.ID)
	if err != nil {
		return &story, nil
	}
	return created, nil
}

func (s *storyService) Update(ctx context.Context, id int64, in dto.UpdateStoryRequest) (*models.Story, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrStoryNotFound
	}

	oldCategoryID := existing.CategoryID
	in.ApplyTo(existing)

	if !models.ValidDifficulty(existing.Difficulty) {
		return nil, ErrInvalidDifficulty
	}
	if !models.ValidStatus(existing.Status) {
		return nil, ErrInvalidStatus
	}

	if in.Title != nil {
		existing.Slug = Slugify(existing.Title)
	}
	// editing content refreshes the estimate unless the caller pinned
	// an explicit readTime
	if in.Content != nil && in.ReadTime == nil {
		existing.ReadTime = ReadTime(existing.Content)
	}
	if existing.CategoryID != oldCategoryID {
		if _, err := s.categoryRepo.FindByID(ctx, existing.CategoryID); err != nil {
			return nil, ErrCategoryNotFound
		}
	}

	if err := s.repo.UpdateWithCategoryCount(ctx, existing, oldCategoryID); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrSlugInUse
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.KeyFeaturedStories, cache.KeyCategories)

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return existing, nil
	}
	return updated, nil
}

func (s *storyService) Delete(ctx context.Context, id int64) error {
	story, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrStoryNotFound
	}
	if err := s.repo.DeleteWithCategoryCount(ctx, story); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cache.KeyFeaturedStories, cache.KeyCategories)
	return nil
}

// orderFromSort maps the client sort parameter ("-createdAt" style, a
// leading minus means descending) onto an allow-listed ORDER BY clause.
// Anything unrecognized falls back to newest first.
func orderFromSort(sort string) string {
	desc := strings.HasPrefix(sort, "-")
	field := strings.TrimPrefix(sort, "-")

	var column string
	switch field {
	case "createdAt":
		column = "created_at"
	case "views":
		column = "views"
	case "likes":
		column = "likes"
	case "title":
		column = "title"
	default:
		return "created_at desc"
	}
	if desc {
		return column + " desc"
	}
	return column + " asc"
}

/* helper: derive a URL slug from a title */
var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases the title and collapses every run of
// non-alphanumeric characters into a single hyphen, trimming hyphens at
// the ends. Pure and deterministic.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ReadTime estimates reading minutes at 200 words per minute, rounded
// up.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	return (words + 199) / 200
}
