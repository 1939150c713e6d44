package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TransactionStatus is the unified status vocabulary used by every storage
// backend.
type TransactionStatus string

const (
	TransactionPending    TransactionStatus = "pending"
	TransactionProcessing TransactionStatus = "processing"
	TransactionCompleted  TransactionStatus = "completed"
	TransactionFailed     TransactionStatus = "failed"
)

// TransactionType discriminates single transfers from batched operations.
type TransactionType string

const (
	TransactionTransfer TransactionType = "transfer"
	TransactionBatch    TransactionType = "batch"
)

// TransactionCreate represents the data needed to record a new transaction.
// Status and Gasless are not caller-supplied: every transaction starts
// pending and gasless.
type TransactionCreate struct {
	UserID          uuid.UUID       `json:"userId"`
	Type            TransactionType `json:"type"`
	Recipient       string          `json:"recipient"`
	Amount          string          `json:"amount"`
	TokenSymbol     string          `json:"tokenSymbol"`
	BatchOperations json.RawMessage `json:"batchOperations,omitempty"`
}

// TransactionUpdate represents the fields a status-update call may touch.
// UserID is immutable and deliberately absent.
type TransactionUpdate struct {
	Status       *TransactionStatus `json:"status,omitempty"`
	Hash         *string            `json:"hash,omitempty"`
	ErrorMessage *string            `json:"errorMessage,omitempty"`
}

// TransactionRead represents a read-optimized view of a transaction.
type TransactionRead struct {
	ID              uuid.UUID         `json:"id"`
	UserID          uuid.UUID         `json:"userId"`
	Type            TransactionType   `json:"type"`
	Status          TransactionStatus `json:"status"`
	Recipient       string            `json:"recipient"`
	Amount          string            `json:"amount"`
	TokenSymbol     string            `json:"tokenSymbol"`
	Gasless         bool              `json:"gasless"`
	BatchOperations json.RawMessage   `json:"batchOperations,omitempty"`
	Hash            *string           `json:"hash,omitempty"`
	ErrorMessage    *string           `json:"errorMessage,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}
