package repository

import (
	"context"
	"fmt"

	"nightshelf/internal/api/models"

	"gorm.io/gorm"
)

// StoryFilter narrows a story listing. Zero values mean "no filter".
type StoryFilter struct {
	Status      string // exact status; empty returns every status
	CategoryID  int64
	Difficulty  string
	Search      string // case-insensitive substring
	SearchTags  bool   // public search also matches tags; admin search does not
	Page        int
	Limit       int
	OrderBy     string // validated ORDER BY clause, e.g. "created_at desc"
	WithCreator bool   // preload the creating user (admin listings)
}

// StoryRepository defines the interface for story data operations.
type StoryRepository interface {
	List(ctx context.Context, f StoryFilter) ([]models.Story, int64, error)
	Featured(ctx context.Context, limit int) ([]models.Story, error)
	FindBySlugPublished(ctx context.Context, slug string) (*models.Story, error)
	FindByID(ctx context.Context, id int64) (*models.Story, error)
	Exists(ctx context.Context, id int64) (bool, error)
	IncrementViews(ctx context.Context, id int64) error
	IncrementLikes(ctx context.Context, id int64) (int64, error)
	CreateWithCategoryCount(ctx context.Context, s *models.Story) error
	UpdateWithCategoryCount(ctx context.Context, s *models.Story, oldCategoryID int64) error
	DeleteWithCategoryCount(ctx context.Context, s *models.Story) error
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountByCategory(ctx context.Context, categoryID int64) (int64, error)
	SumCounters(ctx context.Context) (views, likes int64, err error)
	Recent(ctx context.Context, limit int) ([]models.Story, error)
	PopularPublished(ctx context.Context, limit int) ([]models.Story, error)
}

// StoryRepo is the GORM implementation of StoryRepository.
type StoryRepo struct {
	db *gorm.DB
}

func NewStoryRepo(db *gorm.DB) *StoryRepo {
	return &StoryRepo{db: db}
}

func (r *StoryRepo) applyFilter(db *gorm.DB, f StoryFilter) *gorm.DB {
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.CategoryID != 0 {
		db = db.Where("category_id = ?", f.CategoryID)
	}
	if f.Difficulty != "" {
		db = db.Where("difficulty = ?", f.Difficulty)
	}
	if f.Search != "" {
		p := "%" + f.Search + "%"
		if f.SearchTags {
			// tags is a JSON array; matching its text rendering keeps the
			// original OR-across-fields search semantics
			db = db.Where("title ILIKE ? OR author ILIKE ? OR tags::text ILIKE ?", p, p, p)
		} else {
			db = db.Where("title ILIKE ? OR author ILIKE ?", p, p)
		}
	}
	return db
}

// List returns one page of stories plus the total count under the same
// filter.
func (r *StoryRepo) List(ctx context.Context, f StoryFilter) ([]models.Story, int64, error) {
	var list []models.Story
	var total int64

	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Story{}), f).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count stories: %w", err)
	}

	order := f.OrderBy
	if order == "" {
		order = "created_at desc"
	}

	q := r.applyFilter(r.db.WithContext(ctx), f).
		Preload("Category").
		Order(order).
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Omit("content") // list views are summaries
	if f.WithCreator {
		q = q.Preload("CreatedBy")
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list stories: %w", err)
	}

	return list, total, nil
}

// Featured returns the newest published+featured stories, content omitted.
func (r *StoryRepo) Featured(ctx context.Context, limit int) ([]models.Story, error) {
	var list []models.Story
	if err := r.db.WithContext(ctx).
		Where("status = ? AND featured = ?", models.StatusPublished, true).
		Preload("Category").
		Order("created_at desc").
		Limit(limit).
		Omit("content").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("featured stories: %w", err)
	}
	return list, nil
}

// FindBySlugPublished resolves a published story by slug, with its
// category and creator attached. Drafts and archived stories do not
// resolve.
func (r *StoryRepo) FindBySlugPublished(ctx context.Context, slug string) (*models.Story, error) {
	var s models.Story
	if err := r.db.WithContext(ctx).
		Where("slug = ? AND status = ?", slug, models.StatusPublished).
		Preload("Category").
		Preload("CreatedBy").
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StoryRepo) FindByID(ctx context.Context, id int64) (*models.Story, error) {
	var s models.Story
	if err := r.db.WithContext(ctx).Preload("Category").First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StoryRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Story{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IncrementViews bumps the view counter by one as a single column
// update, so concurrent reads cannot lose increments.
func (r *StoryRepo) IncrementViews(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Story{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

// IncrementLikes bumps the like counter and returns the new value.
// There is deliberately no per-user de-duplication.
func (r *StoryRepo) IncrementLikes(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Story{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + 1"))
	if result.Error != nil {
		return 0, fmt.Errorf("increment likes: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var likes int64
	if err := r.db.WithContext(ctx).
		Model(&models.Story{}).
		Where("id = ?", id).
		Pluck("likes", &likes).Error; err != nil {
		return 0, fmt.Errorf("read likes: %w", err)
	}
	return likes, nil
}

// CreateWithCategoryCount inserts the story and bumps its category's
// denormalized counter in one transaction, so the two can never drift
// apart on a crash.
func (r *StoryRepo) CreateWithCategoryCount(ctx context.Context, s *models.Story) error {
	tx := r.db.WithContext(ctx).Begin()
	if err := tx.Create(s).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("create story: %w", err)
	}
	if err := tx.Model(&models.Category{}).
		Where("id = ?", s.CategoryID).
		UpdateColumn("story_count", gorm.Expr("story_count + 1")).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("increment category count: %w", err)
	}
	return tx.Commit().Error
}

// UpdateWithCategoryCount saves the story; when the category changed it
// also moves one count from the old category to the new one, all in the
// same transaction.
func (r *StoryRepo) UpdateWithCategoryCount(ctx context.Context, s *models.Story, oldCategoryID int64) error {
	tx := r.db.WithContext(ctx).Begin()
	if err := tx.Omit("Category", "CreatedBy").Save(s).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("update story: %w", err)
	}
	if s.CategoryID != oldCategoryID {
		if err := tx.Model(&models.Category{}).
			Where("id = ?", oldCategoryID).
			UpdateColumn("story_count", gorm.Expr("story_count - 1")).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("decrement old category count: %w", err)
		}
		if err := tx.Model(&models.Category{}).
			Where("id = ?", s.CategoryID).
			UpdateColumn("story_count", gorm.Expr("story_count + 1")).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("increment new category count: %w", err)
		}
	}
	return tx.Commit().Error
}

// DeleteWithCategoryCount removes the story, its favorite and history
// rows, and decrements the category's counter, all in one transaction.
func (r *StoryRepo) DeleteWithCategoryCount(ctx context.Context, s *models.Story) error {
	tx := r.db.WithContext(ctx).Begin()
	if err := tx.Delete(&models.FavoriteStory{}, "story_id = ?", s.ID).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("delete story favorites: %w", err)
	}
	if err := tx.Delete(&models.ReadingHistoryEntry{}, "story_id = ?", s.ID).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("delete story history: %w", err)
	}
	if err := tx.Delete(&models.Story{}, s.ID).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("delete story: %w", err)
	}
	if err := tx.Model(&models.Category{}).
		Where("id = ?", s.CategoryID).
		UpdateColumn("story_count", gorm.Expr("story_count - 1")).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("decrement category count: %w", err)
	}
	return tx.Commit().Error
}

// CountByStatus counts stories with the given status; empty counts all.
func (r *StoryRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&models.Story{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// CountByCategory is the live reference count used to guard category
// deletion; it never trusts the denormalized counter.
func (r *StoryRepo) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Story{}).
		Where("category_id = ?", categoryID).
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// SumCounters totals views and likes across every story.
func (r *StoryRepo) SumCounters(ctx context.Context) (views, likes int64, err error) {
	row := struct {
		Views int64
		Likes int64
	}{}
	if err := r.db.WithContext(ctx).
		Model(&models.Story{}).
		Select("COALESCE(SUM(views), 0) AS views, COALESCE(SUM(likes), 0) AS likes").
		Scan(&row).Error; err != nil {
		return 0, 0, fmt.Errorf("sum story counters: %w", err)
	}
	return row.Views, row.Likes, nil
}

// Recent returns the newest stories of any status, summary fields only.
func (r *StoryRepo) Recent(ctx context.Context, limit int) ([]models.Story, error) {
	var list []models.Story
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Order("created_at desc").
		Limit(limit).
		Omit("content").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("recent stories: %w", err)
	}
	return list, nil
}

// PopularPublished returns the most-viewed published stories.
func (r *StoryRepo) PopularPublished(ctx context.Context, limit int) ([]models.Story, error) {
	var list []models.Story
	if err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusPublished).
		Order("views desc").
		Limit(limit).
		Omit("content").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("popular stories: %w", err)
	}
	return list, nil
}
