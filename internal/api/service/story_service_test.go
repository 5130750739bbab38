package service

import (
	"context"
	"strings"
	"testing"

	"nightshelf/internal/api/dto"
	"nightshelf/internal/api/models"
	"nightshelf/internal/api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- MOCK REPOSITORIES ---

type MockStoryRepository struct {
	mock.Mock
}

func (m *MockStoryRepository) List(ctx context.Context, f repository.StoryFilter) ([]models.Story, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.Story), args.Get(1).(int64), args.Error(2)
}

func (m *MockStoryRepository) Featured(ctx context.Context, limit int) ([]models.Story, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Story), args.Error(1)
}

func (m *MockStoryRepository) FindBySlugPublished(ctx context.Context, slug string) (*models.Story, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Story), args.Error(1)
}

func (m *MockStoryRepository) FindByID(ctx context.Context, id int64) (*models.Story, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Story), args.Error(1)
}

func (m *MockStoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockStoryRepository) IncrementViews(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStoryRepository) IncrementLikes(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStoryRepository) CreateWithCategoryCount(ctx context.Context, s *models.Story) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStoryRepository) UpdateWithCategoryCount(ctx context.Context, s *models.Story, oldCategoryID int64) error {
	args := m.Called(ctx, s, oldCategoryID)
	return args.Error(0)
}

func (m *MockStoryRepository) DeleteWithCategoryCount(ctx context.Context, s *models.Story) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStoryRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStoryRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStoryRepository) SumCounters(ctx context.Context) (int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockStoryRepository) Recent(ctx context.Context, limit int) ([]models.Story, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Story), args.Error(1)
}

func (m *MockStoryRepository) PopularPublished(ctx context.Context, limit int) ([]models.Story, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Story), args.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *models.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *models.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"The Midnight Caller", "the-midnight-caller"},
		{"The Ghost's Revenge!!", "the-ghost-s-revenge"},
		{"  Whispers   in the Dark  ", "whispers-in-the-dark"},
		{"Room 237", "room-237"},
		{"---", ""},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Slugify(c.title), "title %q", c.title)
	}
}

func TestReadTime(t *testing.T) {
	assert.Equal(t, 0, ReadTime(""))
	assert.Equal(t, 1, ReadTime("a short one"))
	assert.Equal(t, 1, ReadTime(strings.Repeat("word ", 200)))
	assert.Equal(t, 2, ReadTime(strings.Repeat("word ", 201)))
	assert.Equal(t, 2, ReadTime(strings.Repeat("word ", 250)))
}

func TestOrderFromSort(t *testing.T) {
	cases := map[string]string{
		"-createdAt":                "created_at desc",
		"createdAt":                 "created_at asc",
		"-views":                    "views desc",
		"likes":                     "likes asc",
		"title":                     "title asc",
		"":                          "created_at desc",
		"-password":                 "created_at desc",
		"views; drop table stories": "created_at desc",
	}
	for in, want := range cases {
		assert.Equal(t, want, orderFromSort(in), "sort %q", in)
	}
}

func TestUpdateStoryRequest_ApplyTo(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	boolPtr := func(b bool) *bool { return &b }

	base := func() models.Story {
		return models.Story{
			Title:      "Old Title",
			Author:     "Old Author",
			Content:    "old content",
			Excerpt:    "old excerpt",
			CategoryID: 1,
			Difficulty: models.DifficultyModerate,
			Status:     models.StatusPublished,
			Featured:   true,
			CoverImage: "old.jpg",
			ReadTime:   4,
		}
	}

	t.Run("EmptyRequestChangesNothing", func(t *testing.T) {
		s := base()
		dto.UpdateStoryRequest{}.ApplyTo(&s)
		assert.Equal(t, base(), s)
	})

	t.Run("ProvidedEmptyStringIsApplied", func(t *testing.T) {
		s := base()
		dto.UpdateStoryRequest{CoverImage: strPtr("")}.ApplyTo(&s)
		assert.Equal(t, "", s.CoverImage)
		assert.Equal(t, "Old Title", s.Title)
	})

	t.Run("ProvidedFalseIsApplied", func(t *testing.T) {
		s := base()
		dto.UpdateStoryRequest{Featured: boolPtr(false)}.ApplyTo(&s)
		assert.False(t, s.Featured)
	})

	t.Run("TagsReplacedWholesale", func(t *testing.T) {
		s := base()
		s.Tags = []string{"ghosts", "houses"}
		tags := []string{"forests"}
		dto.UpdateStoryRequest{Tags: &tags}.ApplyTo(&s)
		assert.Equal(t, []string{"forests"}, []string(s.Tags))
	})
}

func TestStoryService_GetBySlug(t *testing.T) {
	ctx := context.Background()

	t.Run("EveryFetchCountsOneView", func(t *testing.T) {
		repo := new(MockStoryRepository)
		svc := NewStoryService(repo, new(MockCategoryRepository), nil)

		stored := &models.Story{ID: 7, Slug: "the-midnight-caller", Status: models.StatusPublished, Views: 5}
		repo.On("FindBySlugPublished", mock.Anything, "the-midnight-caller").Return(stored, nil).Once()
		repo.On("IncrementViews", mock.Anything, int64(7)).Return(nil).Once()

		story, err := svc.GetBySlug(ctx, "the-midnight-caller")
		assert.NoError(t, err)
		assert.Equal(t, int64(6), story.Views)
		repo.AssertNumberOfCalls(t, "IncrementViews", 1)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockStoryRepository)
		svc := NewStoryService(repo, new(MockCategoryRepository), nil)

		repo.On("FindBySlugPublished", mock.Anything, "nope").Return(nil, errNotFound).Once()

		_, err := svc.GetBySlug(ctx, "nope")
		assert.ErrorIs(t, err, ErrStoryNotFound)
		repo.AssertNotCalled(t, "IncrementViews")
	})
}

func TestStoryService_UpdateReadTime(t *testing.T) {
	ctx := context.Background()
	intPtr := func(i int) *int { return &i }
	strPtr := func(s string) *string { return &s }
	newContent := strings.Repeat("word ", 250) // reads as 2 minutes

	existing := func() *models.Story {
		return &models.Story{
			ID:         10,
			Title:      "Old Title",
			Slug:       "old-title",
			Content:    "old content",
			CategoryID: 1,
			Difficulty: models.DifficultyModerate,
			Status:     models.StatusPublished,
			ReadTime:   4,
		}
	}

	t.Run("ContentEditRecomputes", func(t *testing.T) {
		repo := new(MockStoryRepository)
		svc := NewStoryService(repo, new(MockCategoryRepository), nil)

		repo.On("FindByID", mock.Anything, int64(10)).Return(existing(), nil).Once()
		repo.On("UpdateWithCategoryCount", mock.Anything, mock.MatchedBy(func(s *models.Story) bool {
			return s.ReadTime == 2
		}), int64(1)).Return(nil).Once()
		updated := existing()
		updated.Content = newContent
		updated.ReadTime = 2
		repo.On("FindByID", mock.Anything, int64(10)).Return(updated, nil).Once()

		got, err := svc.Update(ctx, 10, dto.UpdateStoryRequest{Content: strPtr(newContent)})
		assert.NoError(t, err)
		assert.Equal(t, 2, got.ReadTime)
		repo.AssertExpectations(t)
	})

	t.Run("ExplicitReadTimeWins", func(t *testing.T) {
		repo := new(MockStoryRepository)
		svc := NewStoryService(repo, new(MockCategoryRepository), nil)

		repo.On("FindByID", mock.Anything, int64(10)).Return(existing(), nil)
		repo.On("UpdateWithCategoryCount", mock.Anything, mock.MatchedBy(func(s *models.Story) bool {
			return s.ReadTime == 9
		}), int64(1)).Return(nil).Once()

		_, err := svc.Update(ctx, 10, dto.UpdateStoryRequest{Content: strPtr(newContent), ReadTime: intPtr(9)})
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("NoContentEditKeepsReadTime", func(t *testing.T) {
		repo := new(MockStoryRepository)
		svc := NewStoryService(repo, new(MockCategoryRepository), nil)

		repo.On("FindByID", mock.Anything, int64(10)).Return(existing(), nil)
		repo.On("UpdateWithCategoryCount", mock.Anything, mock.MatchedBy(func(s *models.Story) bool {
			return s.ReadTime == 4
		}), int64(1)).Return(nil).Once()

		_, err := svc.Update(ctx, 10, dto.UpdateStoryRequest{Excerpt: strPtr("new excerpt")})
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
