// Package memory provides the ephemeral storage variant. It replicates the
// durable backend's observable behavior (newest-first transaction ordering,
// (nil, nil) not-found, uniqueness on email and google id) so tests and
// local development exercise the same contract.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/walletmaster/backend/pkg/domain"
	"github.com/walletmaster/backend/pkg/dto"
	"github.com/walletmaster/backend/pkg/repository"
	repotx "github.com/walletmaster/backend/pkg/repository/transaction"
	repouser "github.com/walletmaster/backend/pkg/repository/user"
)

// Storage is the in-memory implementation of repository.Storage. Safe for
// concurrent use.
type Storage struct {
	mu           sync.RWMutex
	users        map[uuid.UUID]*dto.UserRead
	transactions map[uuid.UUID]*dto.TransactionRead
	// seq breaks created-at ties so listing order is deterministic even when
	// records are created within the clock's resolution.
	seq     map[uuid.UUID]uint64
	nextSeq uint64
}

// NewStorage creates an empty in-memory store.
func NewStorage() *Storage {
	return &Storage{
		users:        make(map[uuid.UUID]*dto.UserRead),
		transactions: make(map[uuid.UUID]*dto.TransactionRead),
		seq:          make(map[uuid.UUID]uint64),
	}
}

func (s *Storage) Users() repouser.Repository      { return (*userRepository)(s) }
func (s *Storage) Transactions() repotx.Repository { return (*transactionRepository)(s) }

var _ repository.Storage = (*Storage)(nil)

type userRepository Storage

func (r *userRepository) Get(_ context.Context, id uuid.UUID) (*dto.UserRead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.users[id]; ok {
		return copyUser(u), nil
	}
	return nil, nil
}

func (r *userRepository) GetByGoogleID(_ context.Context, googleID string) (*dto.UserRead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.GoogleID == googleID {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r *userRepository) Create(_ context.Context, create *dto.UserCreate) (*dto.UserRead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(create.Email)
	for _, u := range r.users {
		if u.GoogleID == create.GoogleID || u.Email == email {
			return nil, domain.ErrAlreadyExists
		}
	}

	now := time.Now()
	u := &dto.UserRead{
		ID:        uuid.New(),
		Email:     email,
		GoogleID:  create.GoogleID,
		Name:      create.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.users[u.ID] = u
	return copyUser(u), nil
}

func (r *userRepository) UpdateWallet(_ context.Context, id uuid.UUID, walletAddress string) (*dto.UserRead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	addr := walletAddress
	u.WalletAddress = &addr
	u.UpdatedAt = time.Now()
	return copyUser(u), nil
}

type transactionRepository Storage

func (r *transactionRepository) Get(_ context.Context, id uuid.UUID) (*dto.TransactionRead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if tx, ok := r.transactions[id]; ok {
		return copyTransaction(tx), nil
	}
	return nil, nil
}

func (r *transactionRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*dto.TransactionRead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*dto.TransactionRead, 0)
	for _, tx := range r.transactions {
		if tx.UserID == userID {
			result = append(result, copyTransaction(tx))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return r.seq[result[i].ID] > r.seq[result[j].ID]
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *transactionRepository) Create(_ context.Context, create *dto.TransactionCreate) (*dto.TransactionRead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tokenSymbol := create.TokenSymbol
	if tokenSymbol == "" {
		tokenSymbol = "USDC"
	}
	now := time.Now()
	tx := &dto.TransactionRead{
		ID:              uuid.New(),
		UserID:          create.UserID,
		Type:            create.Type,
		Status:          dto.TransactionPending,
		Recipient:       create.Recipient,
		Amount:          create.Amount,
		TokenSymbol:     tokenSymbol,
		Gasless:         true,
		BatchOperations: create.BatchOperations,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	r.transactions[tx.ID] = tx
	r.nextSeq++
	r.seq[tx.ID] = r.nextSeq
	return copyTransaction(tx), nil
}

func (r *transactionRepository) Update(_ context.Context, id uuid.UUID, update *dto.TransactionUpdate) (*dto.TransactionRead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.transactions[id]
	if !ok {
		return nil, nil
	}
	if update.Status != nil {
		tx.Status = *update.Status
	}
	if update.Hash != nil {
		hash := *update.Hash
		tx.Hash = &hash
	}
	if update.ErrorMessage != nil {
		msg := *update.ErrorMessage
		tx.ErrorMessage = &msg
	}
	tx.UpdatedAt = time.Now()
	return copyTransaction(tx), nil
}

func copyUser(u *dto.UserRead) *dto.UserRead {
	out := *u
	if u.WalletAddress != nil {
		addr := *u.WalletAddress
		out.WalletAddress = &addr
	}
	return &out
}

func copyTransaction(tx *dto.TransactionRead) *dto.TransactionRead {
	out := *tx
	if tx.Hash != nil {
		hash := *tx.Hash
		out.Hash = &hash
	}
	if tx.ErrorMessage != nil {
		msg := *tx.ErrorMessage
		out.ErrorMessage = &msg
	}
	if tx.BatchOperations != nil {
		out.BatchOperations = append([]byte(nil), tx.BatchOperations...)
	}
	return &out
}
