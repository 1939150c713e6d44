// Package transaction provides transaction operations over the injected
// store. Ownership authorization stays in the handlers, which load the
// record through this service and compare owners before mutating.
package transaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/walletmaster/backend/pkg/domain"
	"github.com/walletmaster/backend/pkg/dto"
	repotx "github.com/walletmaster/backend/pkg/repository/transaction"
)

type Service struct {
	transactions repotx.Repository
	logger       *slog.Logger
}

func New(transactions repotx.Repository, logger *slog.Logger) *Service {
	return &Service{transactions: transactions, logger: logger}
}

// Get loads a transaction by id; (nil, nil) when absent.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error) {
	tx, err := s.transactions.Get(ctx, id)
	if err != nil {
		s.logger.Error("transaction lookup failed", "transaction_id", id, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return tx, nil
}

// ListByUser returns the user's transactions newest-first.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.TransactionRead, error) {
	txs, err := s.transactions.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("transaction listing failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return txs, nil
}

// Create records a new transaction in pending status for its owner.
func (s *Service) Create(
	ctx context.Context,
	create *dto.TransactionCreate,
) (*dto.TransactionRead, error) {
	tx, err := s.transactions.Create(ctx, create)
	if err != nil {
		s.logger.Error("transaction creation failed", "user_id", create.UserID, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	s.logger.Info("transaction created", "transaction_id", tx.ID, "user_id", tx.UserID)
	return tx, nil
}

// Update applies a partial status update; (nil, nil) when absent.
func (s *Service) Update(
	ctx context.Context,
	id uuid.UUID,
	update *dto.TransactionUpdate,
) (*dto.TransactionRead, error) {
	tx, err := s.transactions.Update(ctx, id, update)
	if err != nil {
		s.logger.Error("transaction update failed", "transaction_id", id, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return tx, nil
}
