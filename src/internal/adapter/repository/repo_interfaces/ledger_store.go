package repo_interfaces

import (
	"context"

	"github.com/api-sage/banking-ledger/src/internal/domain"
)

// LedgerStore runs a set of ledger operations as one atomic unit: every write
// issued through the LedgerTx becomes visible together on return, or not at
// all if fn returns an error.
type LedgerStore interface {
	WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error
}

// LedgerTx is the locked view of the ledger inside one atomic unit.
type LedgerTx interface {
	// LockAccount acquires an exclusive row lock on the account, held until
	// the enclosing atomic unit ends, and returns its current state.
	LockAccount(ctx context.Context, accountNumber string) (domain.Account, error)
	// SaveAccount persists mutated account state. The version counter
	// increments on every save.
	SaveAccount(ctx context.Context, account domain.Account) (domain.Account, error)
	// UpdateTransactionStatus transitions a PENDING record to a terminal
	// status. Records already in a terminal status are never modified.
	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, failureReason *string) error
}
