package repo_interfaces

import (
	"context"

	"github.com/api-sage/banking-ledger/src/internal/domain"
)

type TransactionRepository interface {
	Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error)
	UpdateStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, failureReason *string) error
	GetByTransactionID(ctx context.Context, transactionID string) (domain.Transaction, error)
}
