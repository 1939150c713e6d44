package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/walletmaster/backend/pkg/domain"
	"github.com/walletmaster/backend/pkg/dto"
	repouser "github.com/walletmaster/backend/pkg/repository/user"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns the Postgres-backed user repository.
func NewUserRepository(db *gorm.DB) repouser.Repository {
	return &userRepository{db: db}
}

func (r *userRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.UserRead, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(mapGormError(err), domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapUserToDTO(&u), nil
}

func (r *userRepository) GetByGoogleID(
	ctx context.Context,
	googleID string,
) (*dto.UserRead, error) {
	var u User
	if err := r.db.WithContext(
		ctx,
	).Where("google_id = ?", googleID).First(&u).Error; err != nil {
		if errors.Is(mapGormError(err), domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapUserToDTO(&u), nil
}

func (r *userRepository) Create(
	ctx context.Context,
	create *dto.UserCreate,
) (*dto.UserRead, error) {
	u := &User{
		ID:       uuid.New(),
		Email:    strings.ToLower(create.Email),
		GoogleID: create.GoogleID,
		Name:     create.Name,
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, mapGormError(err)
	}
	return mapUserToDTO(u), nil
}

func (r *userRepository) UpdateWallet(
	ctx context.Context,
	id uuid.UUID,
	walletAddress string,
) (*dto.UserRead, error) {
	res := r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).
		Update("wallet_address", walletAddress)
	if res.Error != nil {
		return nil, mapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.Get(ctx, id)
}

func mapUserToDTO(u *User) *dto.UserRead {
	return &dto.UserRead{
		ID:            u.ID,
		Email:         u.Email,
		GoogleID:      u.GoogleID,
		Name:          u.Name,
		WalletAddress: u.WalletAddress,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
