package repository

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user record in the database. Email and GoogleID carry
// unique indexes; one user per external identity.
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email         string    `gorm:"uniqueIndex;not null;size:255"`
	GoogleID      string    `gorm:"uniqueIndex;not null;size:255"`
	Name          string    `gorm:"size:255"`
	WalletAddress *string   `gorm:"size:42"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Transaction represents a persisted wallet transaction. UserID is immutable
// after creation; the composite index serves the newest-first user listing.
type Transaction struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index:idx_transactions_user_created,priority:1"`
	Type            string    `gorm:"type:varchar(16);not null"`
	Status          string    `gorm:"type:varchar(16);not null;default:'pending';index"`
	Recipient       string    `gorm:"not null;size:255"`
	Amount          string    `gorm:"not null;default:'0'"`
	TokenSymbol     string    `gorm:"type:varchar(16);not null;default:'USDC'"`
	Gasless         bool      `gorm:"not null;default:true"`
	BatchOperations []byte    `gorm:"type:jsonb"`
	Hash            *string   `gorm:"size:255"`
	ErrorMessage    *string
	CreatedAt       time.Time `gorm:"index:idx_transactions_user_created,priority:2,sort:desc"`
	UpdatedAt       time.Time
}
