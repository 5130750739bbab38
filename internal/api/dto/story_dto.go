package dto

import (
	"time"

	"nightshelf/internal/api/models"
)

// CreateStoryRequest used for POST /api/admin/stories. Required fields
// are validated up front so a missing title surfaces as a 400, not a
// datastore failure.
type CreateStoryRequest struct {
	Title      string   `json:"title" binding:"required"`
	Author     string   `json:"author" binding:"required"`
	Content    string   `json:"content" binding:"required"`
	Excerpt    string   `json:"excerpt" binding:"required"`
	Category   int64    `json:"category" binding:"required"`
	Tags       []string `json:"tags"`
	Difficulty string   `json:"difficulty"`
	Status     string   `json:"status"`
	Featured   bool     `json:"featured"`
	CoverImage string   `json:"coverImage"`
	ReadTime   *int     `json:"readTime"`
}

func (d CreateStoryRequest) ToModel() models.Story {
	s := models.Story{
		Title:      d.Title,
		Author:     d.Author,
		Content:    d.Content,
		Excerpt:    d.Excerpt,
		CategoryID: d.Category,
		Tags:       d.Tags,
		Difficulty: d.Difficulty,
		Status:     d.Status,
		Featured:   d.Featured,
		CoverImage: d.CoverImage,
	}
	if d.Difficulty == "" {
		s.Difficulty = models.DifficultyModerate
	}
	if d.Status == "" {
		s.Status = models.StatusPublished
	}
	if d.ReadTime != nil {
		s.ReadTime = *d.ReadTime
	}
	return s
}

// UpdateStoryRequest used for PUT /api/admin/stories/:id. Every field
// is a pointer: nil means "not provided", so an intentional empty
// string or false is still applied.
type UpdateStoryRequest struct {
	Title      *string   `json:"title,omitempty"`
	Author     *string   `json:"author,omitempty"`
	Content    *string   `json:"content,omitempty"`
	Excerpt    *string   `json:"excerpt,omitempty"`
	Category   *int64    `json:"category,omitempty"`
	Tags       *[]string `json:"tags,omitempty"`
	Difficulty *string   `json:"difficulty,omitempty"`
	Status     *string   `json:"status,omitempty"`
	Featured   *bool     `json:"featured,omitempty"`
	CoverImage *string   `json:"coverImage,omitempty"`
	ReadTime   *int      `json:"readTime,omitempty"`
}

// ApplyTo copies the provided fields onto an existing story. Slug and
// read-time recomputation stay in the service; this only moves values.
func (d UpdateStoryRequest) ApplyTo(s *models.Story) {
	if d.Title != nil {
		s.Title = *d.Title
	}
	if d.Author != nil {
		s.Author = *d.Author
	}
	if d.Content != nil {
		s.Content = *d.Content
	}
	if d.Excerpt != nil {
		s.Excerpt = *d.Excerpt
	}
	if d.Category != nil {
		s.CategoryID = *d.Category
	}
	if d.Tags != nil {
		s.Tags = *d.Tags
	}
	if d.Difficulty != nil {
		s.Difficulty = *d.Difficulty
	}
	if d.Status != nil {
		s.Status = *d.Status
	}
	if d.Featured != nil {
		s.Featured = *d.Featured
	}
	if d.CoverImage != nil {
		s.CoverImage = *d.CoverImage
	}
	if d.ReadTime != nil {
		s.ReadTime = *d.ReadTime
	}
}

// StoryResponse carries the full document, including content.
type StoryResponse struct {
	ID         int64             `json:"id"`
	Title      string            `json:"title"`
	Slug       string            `json:"slug"`
	Author     string            `json:"author"`
	Content    string            `json:"content"`
	Excerpt    string            `json:"excerpt"`
	Category   *CategoryResponse `json:"category,omitempty"`
	Tags       []string          `json:"tags"`
	Difficulty string            `json:"difficulty"`
	Status     string            `json:"status"`
	Featured   bool              `json:"featured"`
	CoverImage string            `json:"coverImage"`
	ReadTime   int               `json:"readTime"`
	Views      int64             `json:"views"`
	Likes      int64             `json:"likes"`
	CreatedBy  *CreatorResponse  `json:"createdBy,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// StorySummaryResponse is the list-view shape: no content body.
type StorySummaryResponse struct {
	ID         int64             `json:"id"`
	Title      string            `json:"title"`
	Slug       string            `json:"slug"`
	Author     string            `json:"author"`
	Excerpt    string            `json:"excerpt"`
	Category   *CategoryResponse `json:"category,omitempty"`
	Tags       []string          `json:"tags"`
	Difficulty string            `json:"difficulty"`
	Status     string            `json:"status"`
	Featured   bool              `json:"featured"`
	CoverImage string            `json:"coverImage"`
	ReadTime   int               `json:"readTime"`
	Views      int64             `json:"views"`
	Likes      int64             `json:"likes"`
	CreatedBy  *CreatorResponse  `json:"createdBy,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// CreatorResponse identifies the admin who created a story. Email is
// only populated on admin listings.
type CreatorResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Converters
func StoryFromModel(s models.Story) StoryResponse {
	return StoryResponse{
		ID:         s.ID,
		Title:      s.Title,
		Slug:       s.Slug,
		Author:     s.Author,
		Content:    s.Content,
		Excerpt:    s.Excerpt,
		Category:   categoryPtr(s.Category),
		Tags:       s.Tags,
		Difficulty: s.Difficulty,
		Status:     s.Status,
		Featured:   s.Featured,
		CoverImage: s.CoverImage,
		ReadTime:   s.ReadTime,
		Views:      s.Views,
		Likes:      s.Likes,
		CreatedBy:  creatorPtr(s.CreatedBy, false),
		CreatedAt:  s.CreatedAt,
	}
}

func StorySummaryFromModel(s models.Story, withCreatorEmail bool) StorySummaryResponse {
	return StorySummaryResponse{
		ID:         s.ID,
		Title:      s.Title,
		Slug:       s.Slug,
		Author:     s.Author,
		Excerpt:    s.Excerpt,
		Category:   categoryPtr(s.Category),
		Tags:       s.Tags,
		Difficulty: s.Difficulty,
		Status:     s.Status,
		Featured:   s.Featured,
		CoverImage: s.CoverImage,
		ReadTime:   s.ReadTime,
		Views:      s.Views,
		Likes:      s.Likes,
		CreatedBy:  creatorPtr(s.CreatedBy, withCreatorEmail),
		CreatedAt:  s.CreatedAt,
	}
}

func categoryPtr(c *models.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	r := CategoryFromModel(*c)
	return &r
}

func creatorPtr(u *models.User, withEmail bool) *CreatorResponse {
	if u == nil {
		return nil
	}
	r := CreatorResponse{ID: u.ID, Username: u.Username}
	if withEmail {
		r.Email = u.Email
	}
	return &r
}

// StoriesPageResponse: paginated story listing envelope
type StoriesPageResponse struct {
	Success      bool                   `json:"success"`
	Stories      []StorySummaryResponse `json:"stories"`
	TotalPages   int64                  `json:"totalPages"`
	CurrentPage  int                    `json:"currentPage"`
	TotalStories int64                  `json:"totalStories"`
}

// FeaturedStoriesResponse: unpaginated featured listing
type FeaturedStoriesResponse struct {
	Success bool                   `json:"success"`
	Stories []StorySummaryResponse `json:"stories"`
}
