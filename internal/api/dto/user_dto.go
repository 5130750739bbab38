package dto

import (
	"time"

	"nightshelf/internal/api/models"
)

// UserResponse is the public shape of a user document. The password
// hash never appears here.
type UserResponse struct {
	ID              string                `json:"id"`
	Username        string                `json:"username"`
	Email           string                `json:"email"`
	Role            string                `json:"role"`
	Avatar          string                `json:"avatar"`
	FavoriteStories []int64               `json:"favoriteStories"`
	ReadingHistory  []ReadingHistoryEntry `json:"readingHistory"`
	CreatedAt       time.Time             `json:"createdAt"`
}

type ReadingHistoryEntry struct {
	Story      int64     `json:"story"`
	Progress   float64   `json:"progress"`
	LastReadAt time.Time `json:"lastReadAt"`
}

func UserFromModel(u models.User) UserResponse {
	favorites := make([]int64, 0, len(u.FavoriteStories))
	for _, f := range u.FavoriteStories {
		favorites = append(favorites, f.StoryID)
	}
	history := make([]ReadingHistoryEntry, 0, len(u.ReadingHistory))
	for _, h := range u.ReadingHistory {
		history = append(history, ReadingHistoryEntry{
			Story:      h.StoryID,
			Progress:   h.Progress,
			LastReadAt: h.LastReadAt,
		})
	}
	return UserResponse{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		Role:            u.Role,
		Avatar:          u.Avatar,
		FavoriteStories: favorites,
		ReadingHistory:  history,
		CreatedAt:       u.CreatedAt,
	}
}

// UsersPageResponse: paginated admin user listing
type UsersPageResponse struct {
	Success     bool           `json:"success"`
	Users       []UserResponse `json:"users"`
	TotalPages  int64          `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
	TotalUsers  int64          `json:"totalUsers"`
}

// SaveProgressRequest: body for POST /api/stories/:id/progress.
// Progress carries no bounds check on purpose; see design notes.
type SaveProgressRequest struct {
	Progress float64 `json:"progress"`
}
