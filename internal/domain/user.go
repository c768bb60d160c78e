package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	PublicID     uuid.UUID `json:"publicId" gorm:"type:uuid;uniqueIndex;not null"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:32;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Admin        bool      `json:"admin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type UserSession struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID           uint      `json:"userId" gorm:"not null;index"`
	RefreshTokenHash string    `json:"-" gorm:"not null"`
	ExpiresAt        time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt        time.Time `json:"createdAt"`
}
