package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/api-sage/banking-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/banking-ledger/src/internal/domain"
	"github.com/api-sage/banking-ledger/src/internal/usecase/services"
)

func TestCreateAccountSuccess(t *testing.T) {
	ledger := newFakeLedger()
	svc := services.NewAccountService(ledger)

	resp, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		AccountHolderName: "Ada Lovelace",
		InitialBalance:    decimal.RequireFromString("1000.00"),
		Currency:          "usd",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Success || resp.Data == nil {
		t.Fatalf("expected success response, got %+v", resp)
	}

	account := resp.Data
	if !isGeneratedAccountNumber(account.AccountNumber) {
		t.Fatalf("expected XXXX-XXXX-XXXX account number, got %q", account.AccountNumber)
	}
	if account.Status != string(domain.AccountStatusActive) {
		t.Fatalf("expected ACTIVE status, got %s", account.Status)
	}
	if account.Currency != "USD" {
		t.Fatalf("expected currency normalized to USD, got %s", account.Currency)
	}
	if account.Balance != "1000.00" {
		t.Fatalf("expected balance 1000.00, got %s", account.Balance)
	}
}

func TestCreateAccountValidationFailures(t *testing.T) {
	ledger := newFakeLedger()
	svc := services.NewAccountService(ledger)

	cases := []struct {
		name string
		req  models.CreateAccountRequest
	}{
		{
			name: "missing holder name",
			req: models.CreateAccountRequest{
				InitialBalance: decimal.RequireFromString("10.00"),
				Currency:       "USD",
			},
		},
		{
			name: "negative initial balance",
			req: models.CreateAccountRequest{
				AccountHolderName: "Ada Lovelace",
				InitialBalance:    decimal.RequireFromString("-1.00"),
				Currency:          "USD",
			},
		},
		{
			name: "bad currency code",
			req: models.CreateAccountRequest{
				AccountHolderName: "Ada Lovelace",
				InitialBalance:    decimal.RequireFromString("10.00"),
				Currency:          "DOLLARS",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := svc.CreateAccount(context.Background(), tc.req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if resp.Message != "validation failed" {
				t.Fatalf("expected validation failed message, got %q", resp.Message)
			}
		})
	}
}

func TestGetAccountNotFound(t *testing.T) {
	ledger := newFakeLedger()
	svc := services.NewAccountService(ledger)

	resp, err := svc.GetAccount(context.Background(), "9999-9999-9999")
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if resp.Message != "Account not found" {
		t.Fatalf("expected Account not found message, got %q", resp.Message)
	}
}

func TestGetBalance(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(accountX, "42.50", "USD", domain.AccountStatusActive)
	svc := services.NewAccountService(ledger)

	resp, err := svc.GetBalance(context.Background(), accountX)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Data.Balance != "42.50" {
		t.Fatalf("expected balance 42.50, got %s", resp.Data.Balance)
	}
	if resp.Data.Currency != "USD" {
		t.Fatalf("expected currency USD, got %s", resp.Data.Currency)
	}
}

func TestListAccounts(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(accountX, "10.00", "USD", domain.AccountStatusActive)
	ledger.addAccount(accountY, "20.00", "USD", domain.AccountStatusFrozen)
	svc := services.NewAccountService(ledger)

	resp, err := svc.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*resp.Data) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(*resp.Data))
	}
}

func isGeneratedAccountNumber(value string) bool {
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
