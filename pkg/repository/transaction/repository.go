// Package transaction defines the transaction repository contract.
package transaction

import (
	"context"

	"github.com/google/uuid"
	"github.com/walletmaster/backend/pkg/dto"
)

// Repository persists transactions. UserID is immutable once set; Update
// can only touch status, hash, and error message. Absent records yield
// (nil, nil).
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error)
	// ListByUser returns the user's transactions newest-first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.TransactionRead, error)
	Create(ctx context.Context, create *dto.TransactionCreate) (*dto.TransactionRead, error)
	Update(ctx context.Context, id uuid.UUID, update *dto.TransactionUpdate) (*dto.TransactionRead, error)
}
