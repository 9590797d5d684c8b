package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	// TransactionStatusReversed is reserved for a future compensating-transfer
	// flow and is never produced by the transfer engine.
	TransactionStatusReversed TransactionStatus = "REVERSED"
)

// IsTerminal reports whether no further status transition is permitted.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusFailed || s == TransactionStatusReversed
}

type TransactionType string

const (
	TransactionTypeTransfer   TransactionType = "TRANSFER"
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
)

type Transaction struct {
	ID                string
	TransactionID     string
	FromAccountNumber string
	ToAccountNumber   string
	Amount            decimal.Decimal
	Currency          string
	Status            TransactionStatus
	Type              TransactionType
	Description       *string
	FailureReason     *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
