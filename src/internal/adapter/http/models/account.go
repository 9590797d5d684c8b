package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type CreateAccountRequest struct {
	AccountHolderName string          `json:"accountHolderName"`
	InitialBalance    decimal.Decimal `json:"initialBalance"`
	Currency          string          `json:"currency"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.AccountHolderName) == "" {
		errs = append(errs, "accountHolderName is required")
	}
	if r.InitialBalance.IsNegative() {
		errs = append(errs, "initialBalance cannot be negative")
	}
	if !isCurrencyCode(r.Currency) {
		errs = append(errs, "currency must be a 3-letter code")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type AccountResponse struct {
	ID                string `json:"id"`
	AccountNumber     string `json:"accountNumber"`
	AccountHolderName string `json:"accountHolderName"`
	Balance           string `json:"balance"`
	Currency          string `json:"currency"`
	Status            string `json:"status"`
	Version           int64  `json:"version"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt"`
}

type BalanceResponse struct {
	AccountNumber string `json:"accountNumber"`
	Balance       string `json:"balance"`
	Currency      string `json:"currency"`
}

func isCurrencyCode(currency string) bool {
	currency = strings.TrimSpace(currency)
	if len(currency) != 3 {
		return false
	}
	for _, c := range currency {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
