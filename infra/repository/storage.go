// Package repository provides the GORM/Postgres storage implementation.
package repository

import (
	"errors"

	"github.com/walletmaster/backend/pkg/repository"
	repotx "github.com/walletmaster/backend/pkg/repository/transaction"
	repouser "github.com/walletmaster/backend/pkg/repository/user"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type storage struct {
	users        repouser.Repository
	transactions repotx.Repository
}

// NewStorage bundles the Postgres-backed repositories behind the storage
// interface handed to services.
func NewStorage(db *gorm.DB) repository.Storage {
	return &storage{
		users:        NewUserRepository(db),
		transactions: NewTransactionRepository(db),
	}
}

func (s *storage) Users() repouser.Repository { return s.users }
func (s *storage) Transactions() repotx.Repository { return s.transactions }

// NewDBConnection opens the Postgres connection and migrates the schema.
// TranslateError is required so uniqueness violations surface as
// gorm.ErrDuplicatedKey instead of driver-specific errors.
func NewDBConnection(databaseURL string) (*gorm.DB, error) {
	if databaseURL == "" {
		return nil, errors.New("database URL is not set")
	}
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&User{}, &Transaction{}); err != nil {
		return nil, err
	}
	return db, nil
}
