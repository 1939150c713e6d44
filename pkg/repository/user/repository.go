// Package user defines the user repository contract. Every implementation
// returns (nil, nil) for absent records and reserves errors for backend
// failures.
package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/walletmaster/backend/pkg/dto"
)

// Repository persists users. GoogleID lookup is the sole path to linking
// returning identities; email is never used as a join key.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error)
	GetByGoogleID(ctx context.Context, googleID string) (*dto.UserRead, error)
	// Create generates the user's ID, lowercases the email, and fails with
	// domain.ErrAlreadyExists on a uniqueness violation.
	Create(ctx context.Context, create *dto.UserCreate) (*dto.UserRead, error)
	// UpdateWallet sets the wallet address and returns the updated record,
	// or (nil, nil) when the user does not exist.
	UpdateWallet(ctx context.Context, id uuid.UUID, walletAddress string) (*dto.UserRead, error)
}
