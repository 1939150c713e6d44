package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/walletmaster/backend/pkg/domain"
	"github.com/walletmaster/backend/pkg/dto"
	repotx "github.com/walletmaster/backend/pkg/repository/transaction"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository returns the Postgres-backed transaction
// repository.
func NewTransactionRepository(db *gorm.DB) repotx.Repository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.TransactionRead, error) {
	var tx Transaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(mapGormError(err), domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapTransactionToDTO(&tx), nil
}

func (r *transactionRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*dto.TransactionRead, error) {
	var txs []Transaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&txs).Error; err != nil {
		return nil, err
	}

	result := make([]*dto.TransactionRead, 0, len(txs))
	for i := range txs {
		result = append(result, mapTransactionToDTO(&txs[i]))
	}
	return result, nil
}

func (r *transactionRepository) Create(
	ctx context.Context,
	create *dto.TransactionCreate,
) (*dto.TransactionRead, error) {
	tokenSymbol := create.TokenSymbol
	if tokenSymbol == "" {
		tokenSymbol = "USDC"
	}
	tx := &Transaction{
		ID:              uuid.New(),
		UserID:          create.UserID,
		Type:            string(create.Type),
		Status:          string(dto.TransactionPending),
		Recipient:       create.Recipient,
		Amount:          create.Amount,
		TokenSymbol:     tokenSymbol,
		Gasless:         true,
		BatchOperations: create.BatchOperations,
	}
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		return nil, mapGormError(err)
	}
	return mapTransactionToDTO(tx), nil
}

func (r *transactionRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	update *dto.TransactionUpdate,
) (*dto.TransactionRead, error) {
	updates := make(map[string]any)
	if update.Status != nil {
		updates["status"] = string(*update.Status)
	}
	if update.Hash != nil {
		updates["hash"] = *update.Hash
	}
	if update.ErrorMessage != nil {
		updates["error_message"] = *update.ErrorMessage
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&Transaction{}).
			Where("id = ?", id).
			Updates(updates)
		if res.Error != nil {
			return nil, mapGormError(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, nil
		}
	}
	return r.Get(ctx, id)
}

func mapTransactionToDTO(tx *Transaction) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:              tx.ID,
		UserID:          tx.UserID,
		Type:            dto.TransactionType(tx.Type),
		Status:          dto.TransactionStatus(tx.Status),
		Recipient:       tx.Recipient,
		Amount:          tx.Amount,
		TokenSymbol:     tx.TokenSymbol,
		Gasless:         tx.Gasless,
		BatchOperations: tx.BatchOperations,
		Hash:            tx.Hash,
		ErrorMessage:    tx.ErrorMessage,
		CreatedAt:       tx.CreatedAt,
		UpdatedAt:       tx.UpdatedAt,
	}
}
