package service_interfaces

import (
	"context"

	"github.com/api-sage/banking-ledger/src/internal/domain"
)

// LedgerWriter owns the transaction-record lifecycle around a transfer: one
// PENDING admission write, at most one transition to a terminal state.
type LedgerWriter interface {
	RecordPending(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error)
	MarkFailed(ctx context.Context, transactionID string, reason string)
	Get(ctx context.Context, transactionID string) (domain.Transaction, error)
}
