package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/banking-ledger/src/internal/domain"
	"github.com/api-sage/banking-ledger/src/internal/logger"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	logger.Info("transaction repository create", logger.Fields{
		"transactionId":     transaction.TransactionID,
		"fromAccountNumber": transaction.FromAccountNumber,
		"toAccountNumber":   transaction.ToAccountNumber,
		"type":              transaction.Type,
		"status":            transaction.Status,
	})

	const query = `
INSERT INTO transactions (
	transaction_id,
	from_account_number,
	to_account_number,
	amount,
	currency,
	status,
	type,
	description
) VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8)
RETURNING id, created_at, updated_at`

	var (
		id        string
		createdAt time.Time
		updatedAt time.Time
	)

	if err := r.db.QueryRowContext(
		ctx,
		query,
		transaction.TransactionID,
		transaction.FromAccountNumber,
		transaction.ToAccountNumber,
		transaction.Amount.String(),
		transaction.Currency,
		transaction.Status,
		transaction.Type,
		transaction.Description,
	).Scan(&id, &createdAt, &updatedAt); err != nil {
		logger.Error("transaction repository create failed", err, logger.Fields{
			"transactionId": transaction.TransactionID,
		})
		return domain.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	transaction.ID = id
	transaction.CreatedAt = createdAt
	transaction.UpdatedAt = updatedAt

	return transaction, nil
}

func (r *TransactionRepository) UpdateStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, failureReason *string) error {
	logger.Info("transaction repository update status", logger.Fields{
		"transactionId": transactionID,
		"status":        status,
	})

	return updateTransactionStatus(ctx, r.db, transactionID, status, failureReason)
}

func (r *TransactionRepository) GetByTransactionID(ctx context.Context, transactionID string) (domain.Transaction, error) {
	const query = `
SELECT id,
       transaction_id,
       from_account_number,
       to_account_number,
       amount,
       currency,
       status,
       type,
       description,
       failure_reason,
       created_at,
       updated_at
FROM transactions
WHERE transaction_id = $1`

	var (
		transaction   domain.Transaction
		description   sql.NullString
		failureReason sql.NullString
	)

	if err := r.db.QueryRowContext(ctx, query, transactionID).Scan(
		&transaction.ID,
		&transaction.TransactionID,
		&transaction.FromAccountNumber,
		&transaction.ToAccountNumber,
		&transaction.Amount,
		&transaction.Currency,
		&transaction.Status,
		&transaction.Type,
		&description,
		&failureReason,
		&transaction.CreatedAt,
		&transaction.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("transaction repository record not found", logger.Fields{
				"transactionId": transactionID,
			})
			return domain.Transaction{}, domain.ErrTransactionNotFound
		}
		logger.Error("transaction repository get failed", err, logger.Fields{
			"transactionId": transactionID,
		})
		return domain.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}

	if description.Valid {
		value := description.String
		transaction.Description = &value
	}
	if failureReason.Valid {
		value := failureReason.String
		transaction.FailureReason = &value
	}

	return transaction, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// updateTransactionStatus transitions a PENDING record to a terminal status.
// The status guard in the WHERE clause makes terminal states immutable.
func updateTransactionStatus(ctx context.Context, db execer, transactionID string, status domain.TransactionStatus, failureReason *string) error {
	const query = `
UPDATE transactions
SET status = $2,
    failure_reason = COALESCE($3, failure_reason),
    updated_at = NOW()
WHERE transaction_id = $1
  AND status = 'PENDING'`

	result, err := db.ExecContext(ctx, query, transactionID, status, failureReason)
	if err != nil {
		logger.Error("transaction repository update status failed", err, logger.Fields{
			"transactionId": transactionID,
		})
		return fmt.Errorf("update transaction status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("transaction %s is not pending: %w", transactionID, domain.ErrTransactionNotFound)
	}

	return nil
}
