package services

import (
	"context"

	"github.com/api-sage/banking-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/banking-ledger/src/internal/domain"
	"github.com/api-sage/banking-ledger/src/internal/logger"
)

type LedgerWriter struct {
	transactionRepo repo_interfaces.TransactionRepository
}

func NewLedgerWriter(transactionRepo repo_interfaces.TransactionRepository) *LedgerWriter {
	return &LedgerWriter{transactionRepo: transactionRepo}
}

// RecordPending persists the admission record for an attempted transfer. It
// runs before any account is touched so every attempt past shape validation
// leaves an audit trail.
func (w *LedgerWriter) RecordPending(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	transaction.Status = domain.TransactionStatusPending
	return w.transactionRepo.Create(ctx, transaction)
}

// MarkFailed transitions a PENDING record to FAILED with a reason. The write
// is best-effort: the transfer already failed and its error is what the
// caller must see, so a failure here is logged rather than propagated.
func (w *LedgerWriter) MarkFailed(ctx context.Context, transactionID string, reason string) {
	if err := w.transactionRepo.UpdateStatus(ctx, transactionID, domain.TransactionStatusFailed, &reason); err != nil {
		logger.Error("ledger writer mark failed did not persist", err, logger.Fields{
			"transactionId": transactionID,
			"reason":        reason,
		})
	}
}

func (w *LedgerWriter) Get(ctx context.Context, transactionID string) (domain.Transaction, error) {
	return w.transactionRepo.GetByTransactionID(ctx, transactionID)
}
