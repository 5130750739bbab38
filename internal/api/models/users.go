package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles a user can hold. Admins get the back-office routes; everyone
// else is a plain reader.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"column:password_hash;not null" json:"-"` // Not show in JSON
	Role      string    `gorm:"default:'user';not null" json:"role"`
	Avatar    string    `gorm:"default:''" json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`

	// associations
	FavoriteStories []FavoriteStory       `gorm:"foreignKey:UserID" json:"favoriteStories,omitempty"`
	ReadingHistory  []ReadingHistoryEntry `gorm:"foreignKey:UserID" json:"readingHistory,omitempty"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}

func (user *User) IsAdmin() bool {
	return user.Role == RoleAdmin
}
