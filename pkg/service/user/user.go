// Package user provides user profile operations over the injected store.
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/walletmaster/backend/pkg/domain"
	"github.com/walletmaster/backend/pkg/dto"
	repouser "github.com/walletmaster/backend/pkg/repository/user"
)

type Service struct {
	users  repouser.Repository
	logger *slog.Logger
}

func New(users repouser.Repository, logger *slog.Logger) *Service {
	return &Service{users: users, logger: logger}
}

// GetUser loads a user by id; (nil, nil) when absent.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	u, err := s.users.Get(ctx, id)
	if err != nil {
		s.logger.Error("user lookup failed", "user_id", id, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return u, nil
}

// UpdateWallet sets the user's wallet address. Address format is validated at
// the handler boundary; (nil, nil) means the user does not exist.
func (s *Service) UpdateWallet(
	ctx context.Context,
	id uuid.UUID,
	walletAddress string,
) (*dto.UserRead, error) {
	u, err := s.users.UpdateWallet(ctx, id, walletAddress)
	if err != nil {
		s.logger.Error("wallet update failed", "user_id", id, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	if u != nil {
		s.logger.Info("wallet updated", "user_id", id)
	}
	return u, nil
}
