package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/banking-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/banking-ledger/src/internal/domain"
	"github.com/api-sage/banking-ledger/src/internal/logger"
)

// LedgerStore scopes account locks, balance writes, and the terminal status
// update of a transfer to a single serializable database transaction.
type LedgerStore struct {
	db *sql.DB
}

func NewLedgerStore(db *sql.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

func (s *LedgerStore) WithinTx(ctx context.Context, fn func(tx repo_interfaces.LedgerTx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		logger.Error("ledger store begin tx failed", err, nil)
		return fmt.Errorf("begin ledger transaction: %w", err)
	}

	if err := fn(&ledgerTx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Error("ledger store rollback failed", rbErr, nil)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("ledger store commit tx failed", err, nil)
		return fmt.Errorf("commit ledger transaction: %w", err)
	}

	return nil
}

type ledgerTx struct {
	tx *sql.Tx
}

func (t *ledgerTx) LockAccount(ctx context.Context, accountNumber string) (domain.Account, error) {
	const query = `
SELECT id, account_number, account_holder_name, balance, currency, status, version, created_at, updated_at
FROM accounts
WHERE account_number = $1
FOR UPDATE`

	account, err := scanAccount(t.tx.QueryRowContext(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		logger.Error("ledger store lock account failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Account{}, fmt.Errorf("lock account %s: %w", accountNumber, err)
	}

	return account, nil
}

func (t *ledgerTx) SaveAccount(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
UPDATE accounts
SET balance = $2::numeric,
    status = $3,
    version = version + 1,
    updated_at = NOW()
WHERE account_number = $1
RETURNING version, updated_at`

	var (
		version   int64
		updatedAt time.Time
	)

	if err := t.tx.QueryRowContext(
		ctx,
		query,
		account.AccountNumber,
		account.Balance.String(),
		account.Status,
	).Scan(&version, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		logger.Error("ledger store save account failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return domain.Account{}, fmt.Errorf("save account %s: %w", account.AccountNumber, err)
	}

	account.Version = version
	account.UpdatedAt = updatedAt

	return account, nil
}

func (t *ledgerTx) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, failureReason *string) error {
	return updateTransactionStatus(ctx, t.tx, transactionID, status, failureReason)
}
