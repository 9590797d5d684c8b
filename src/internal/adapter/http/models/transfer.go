package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const maxDescriptionLength = 255

type TransferRequest struct {
	FromAccountNumber string          `json:"fromAccountNumber"`
	ToAccountNumber   string          `json:"toAccountNumber"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	if !isAccountNumber(r.FromAccountNumber) {
		errs = append(errs, "fromAccountNumber must match XXXX-XXXX-XXXX")
	}
	if !isAccountNumber(r.ToAccountNumber) {
		errs = append(errs, "toAccountNumber must match XXXX-XXXX-XXXX")
	}
	if strings.TrimSpace(r.FromAccountNumber) == strings.TrimSpace(r.ToAccountNumber) {
		errs = append(errs, "fromAccountNumber and toAccountNumber cannot be the same")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}
	if len(strings.TrimSpace(r.Description)) > maxDescriptionLength {
		errs = append(errs, "description is too long")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type DepositRequest struct {
	AccountNumber string          `json:"accountNumber"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
}

func (r DepositRequest) Validate() error {
	return validateSingleAccountPosting(r.AccountNumber, r.Amount, r.Description)
}

type WithdrawRequest struct {
	AccountNumber string          `json:"accountNumber"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
}

func (r WithdrawRequest) Validate() error {
	return validateSingleAccountPosting(r.AccountNumber, r.Amount, r.Description)
}

type TransferResponse struct {
	TransactionID     string `json:"transactionId"`
	FromAccountNumber string `json:"fromAccountNumber"`
	ToAccountNumber   string `json:"toAccountNumber"`
	Amount            string `json:"amount"`
	Currency          string `json:"currency"`
	Type              string `json:"type"`
	Status            string `json:"status"`
	Description       string `json:"description,omitempty"`
	FailureReason     string `json:"failureReason,omitempty"`
	Timestamp         string `json:"timestamp"`
}

func validateSingleAccountPosting(accountNumber string, amount decimal.Decimal, description string) error {
	var errs []string

	if !isAccountNumber(accountNumber) {
		errs = append(errs, "accountNumber must match XXXX-XXXX-XXXX")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}
	if len(strings.TrimSpace(description)) > maxDescriptionLength {
		errs = append(errs, "description is too long")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// isAccountNumber reports whether value matches the XXXX-XXXX-XXXX account
// number format.
func isAccountNumber(value string) bool {
	value = strings.TrimSpace(value)
	if len(value) != 14 {
		return false
	}
	for i, c := range value {
		if i == 4 || i == 9 {
			if c != '-' {
				return false
			}
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
