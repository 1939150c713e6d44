package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserCreate represents the data needed to create a new user. The ID is
// generated by the repository; Email is lowercased before storage.
type UserCreate struct {
	Email    string `json:"email" validate:"required,email"`
	GoogleID string `json:"googleId" validate:"required"`
	Name     string `json:"name,omitempty"`
}

// UserRead represents a read-optimized view of a user.
type UserRead struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	GoogleID      string    `json:"googleId"`
	Name          string    `json:"name,omitempty"`
	WalletAddress *string   `json:"walletAddress,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
