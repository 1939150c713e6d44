package repository

import (
	"errors"

	"github.com/walletmaster/backend/pkg/domain"
	"gorm.io/gorm"
)

// mapGormError converts GORM errors to domain errors so infrastructure
// concerns stay inside the infrastructure layer. The chain is traversed
// because GORM wraps driver errors.
func mapGormError(err error) error {
	if err == nil {
		return nil
	}

	current := err
	for current != nil {
		switch {
		case errors.Is(current, gorm.ErrDuplicatedKey):
			return domain.ErrAlreadyExists
		case errors.Is(current, gorm.ErrRecordNotFound):
			return domain.ErrNotFound
		}
		current = errors.Unwrap(current)
	}
	return err
}
