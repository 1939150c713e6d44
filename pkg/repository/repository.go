// Package repository bundles the per-entity repository contracts behind one
// injectable storage handle, selected at startup and passed to services
// explicitly rather than held in package state.
package repository

import (
	"github.com/walletmaster/backend/pkg/repository/transaction"
	"github.com/walletmaster/backend/pkg/repository/user"
)

// Storage is the single seam between the core and its interchangeable
// backends. Both implementations are behaviorally equivalent from the
// caller's perspective: same ordering, same not-found semantics.
type Storage interface {
	Users() user.Repository
	Transactions() transaction.Repository
}
