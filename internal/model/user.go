package model

import "time"

// User is an author account. Login is the immutable identity key;
// uniqueness is enforced by the store, not the application.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Login        string    `gorm:"size:64;not null;uniqueIndex" json:"login"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Description  string    `gorm:"type:text" json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthorInfo is the public profile shape returned to readers.
type AuthorInfo struct {
	ID          uint   `json:"id"`
	Login       string `json:"login"`
	Description string `json:"description"`
}
