package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/api-sage/banking-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/banking-ledger/src/internal/domain"
)

// fakeLedger is an in-memory stand-in for the Postgres repositories and the
// ledger store. Row locks are real mutexes held per account, so the lock
// ordering behavior of the engine is exercised for real under concurrency.
type fakeLedger struct {
	mu           sync.Mutex
	accounts     map[string]*fakeAccount
	transactions map[string]domain.Transaction
	saveErr      map[string]error
	statusErr    error
	nextID       int
}

type fakeAccount struct {
	mu     sync.Mutex
	record domain.Account
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		accounts:     make(map[string]*fakeAccount),
		transactions: make(map[string]domain.Transaction),
		saveErr:      make(map[string]error),
	}
}

func (f *fakeLedger) addAccount(accountNumber, balance, currency string, status domain.AccountStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	f.accounts[accountNumber] = &fakeAccount{record: domain.Account{
		ID:                fmt.Sprintf("acct-%d", f.nextID),
		AccountNumber:     accountNumber,
		AccountHolderName: "Holder " + accountNumber,
		Balance:           decimal.RequireFromString(balance),
		Currency:          currency,
		Status:            status,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}}
}

func (f *fakeLedger) balance(accountNumber string) decimal.Decimal {
	f.mu.Lock()
	fa := f.accounts[accountNumber]
	f.mu.Unlock()

	fa.mu.Lock()
	defer fa.mu.Unlock()
	return fa.record.Balance
}

func (f *fakeLedger) transaction(transactionID string) (domain.Transaction, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	txn, ok := f.transactions[transactionID]
	return txn, ok
}

func (f *fakeLedger) transactionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.transactions)
}

// AccountRepository

func (f *fakeLedger) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.accounts[account.AccountNumber]; exists {
		return domain.Account{}, &pq.Error{Code: "23505"}
	}

	f.nextID++
	account.ID = fmt.Sprintf("acct-%d", f.nextID)
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()
	f.accounts[account.AccountNumber] = &fakeAccount{record: account}

	return account, nil
}

func (f *fakeLedger) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	f.mu.Lock()
	fa, ok := f.accounts[accountNumber]
	f.mu.Unlock()

	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	fa.mu.Lock()
	defer fa.mu.Unlock()
	return fa.record, nil
}

func (f *fakeLedger) List(ctx context.Context) ([]domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	accounts := make([]domain.Account, 0, len(f.accounts))
	for _, fa := range f.accounts {
		accounts = append(accounts, fa.record)
	}
	return accounts, nil
}

// fakeTransactionRepo adapts the shared ledger state to the
// TransactionRepository interface (the account repository already claims the
// Create method name on fakeLedger).
type fakeTransactionRepo struct {
	ledger *fakeLedger
}

func (r *fakeTransactionRepo) Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	return r.ledger.createTransaction(transaction)
}

func (r *fakeTransactionRepo) UpdateStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, failureReason *string) error {
	return r.ledger.updateStatus(transactionID, status, failureReason)
}

func (r *fakeTransactionRepo) GetByTransactionID(ctx context.Context, transactionID string) (domain.Transaction, error) {
	return r.ledger.getByTransactionID(transactionID)
}

func (f *fakeLedger) createTransaction(transaction domain.Transaction) (domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.transactions[transaction.TransactionID]; exists {
		return domain.Transaction{}, &pq.Error{Code: "23505"}
	}

	f.nextID++
	transaction.ID = fmt.Sprintf("txn-%d", f.nextID)
	transaction.CreatedAt = time.Now()
	transaction.UpdatedAt = time.Now()
	f.transactions[transaction.TransactionID] = transaction

	return transaction, nil
}

func (f *fakeLedger) updateStatus(transactionID string, status domain.TransactionStatus, failureReason *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updateStatusLocked(transactionID, status, failureReason)
}

func (f *fakeLedger) updateStatusLocked(transactionID string, status domain.TransactionStatus, failureReason *string) error {
	txn, ok := f.transactions[transactionID]
	if !ok || txn.Status != domain.TransactionStatusPending {
		return fmt.Errorf("transaction %s is not pending: %w", transactionID, domain.ErrTransactionNotFound)
	}

	txn.Status = status
	if failureReason != nil {
		txn.FailureReason = failureReason
	}
	txn.UpdatedAt = time.Now()
	f.transactions[transactionID] = txn

	return nil
}

func (f *fakeLedger) getByTransactionID(transactionID string) (domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	txn, ok := f.transactions[transactionID]
	if !ok {
		return domain.Transaction{}, domain.ErrTransactionNotFound
	}
	return txn, nil
}

// LedgerStore

func (f *fakeLedger) WithinTx(ctx context.Context, fn func(tx repo_interfaces.LedgerTx) error) error {
	t := &fakeTx{ledger: f, statusFailure: f.statusErr}
	defer t.release()

	if err := fn(t); err != nil {
		return err
	}

	t.apply()
	return nil
}

type statusChange struct {
	transactionID string
	status        domain.TransactionStatus
	failureReason *string
}

type fakeTx struct {
	ledger        *fakeLedger
	locked        []*fakeAccount
	staged        []domain.Account
	stagedStatus  []statusChange
	statusFailure error
}

func (t *fakeTx) LockAccount(ctx context.Context, accountNumber string) (domain.Account, error) {
	t.ledger.mu.Lock()
	fa, ok := t.ledger.accounts[accountNumber]
	t.ledger.mu.Unlock()

	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	fa.mu.Lock()
	t.locked = append(t.locked, fa)
	return fa.record, nil
}

func (t *fakeTx) SaveAccount(ctx context.Context, account domain.Account) (domain.Account, error) {
	t.ledger.mu.Lock()
	err := t.ledger.saveErr[account.AccountNumber]
	t.ledger.mu.Unlock()
	if err != nil {
		return domain.Account{}, err
	}

	account.Version++
	account.UpdatedAt = time.Now()
	t.staged = append(t.staged, account)
	return account, nil
}

func (t *fakeTx) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, failureReason *string) error {
	if t.statusFailure != nil {
		return t.statusFailure
	}

	t.stagedStatus = append(t.stagedStatus, statusChange{
		transactionID: transactionID,
		status:        status,
		failureReason: failureReason,
	})
	return nil
}

func (t *fakeTx) apply() {
	t.ledger.mu.Lock()
	defer t.ledger.mu.Unlock()

	for _, account := range t.staged {
		if fa, ok := t.ledger.accounts[account.AccountNumber]; ok {
			fa.record = account
		}
	}
	for _, change := range t.stagedStatus {
		_ = t.ledger.updateStatusLocked(change.transactionID, change.status, change.failureReason)
	}
}

func (t *fakeTx) release() {
	for i := len(t.locked) - 1; i >= 0; i-- {
		t.locked[i].mu.Unlock()
	}
	t.locked = nil
}

var errSyntheticWrite = errors.New("synthetic write failure")
