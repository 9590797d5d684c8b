package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountStatusActive AccountStatus = "ACTIVE"
	AccountStatusFrozen AccountStatus = "FROZEN"
	AccountStatusClosed AccountStatus = "CLOSED"
)

type Account struct {
	ID                string
	AccountNumber     string
	AccountHolderName string
	Balance           decimal.Decimal
	Currency          string
	Status            AccountStatus
	Version           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
