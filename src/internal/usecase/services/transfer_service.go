package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/banking-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/banking-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/banking-ledger/src/internal/commons"
	"github.com/api-sage/banking-ledger/src/internal/domain"
	"github.com/api-sage/banking-ledger/src/internal/logger"
	"github.com/api-sage/banking-ledger/src/internal/usecase/service_interfaces"
)

// TransferService is the fund-transfer engine. It is the sole mutator of
// account balances and the sole writer of transaction status: every transfer,
// deposit, and withdrawal is admitted as a PENDING record, executed under
// exclusive row locks inside one atomic unit, and driven to a terminal status.
type TransferService struct {
	store        repo_interfaces.LedgerStore
	ledgerWriter service_interfaces.LedgerWriter
	baseCurrency string
}

func NewTransferService(
	store repo_interfaces.LedgerStore,
	ledgerWriter service_interfaces.LedgerWriter,
	baseCurrency string,
) *TransferService {
	return &TransferService{
		store:        store,
		ledgerWriter: ledgerWriter,
		baseCurrency: strings.ToUpper(strings.TrimSpace(baseCurrency)),
	}
}

func (s *TransferService) TransferFunds(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("transfer service transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()),
			fmt.Errorf("%w: %s", domain.ErrInvalidTransfer, err.Error())
	}

	fromAccountNumber := strings.TrimSpace(req.FromAccountNumber)
	toAccountNumber := strings.TrimSpace(req.ToAccountNumber)

	pending, err := s.ledgerWriter.RecordPending(ctx, domain.Transaction{
		TransactionID:     newTransactionID(),
		FromAccountNumber: fromAccountNumber,
		ToAccountNumber:   toAccountNumber,
		Amount:            req.Amount,
		Currency:          s.baseCurrency,
		Type:              domain.TransactionTypeTransfer,
		Description:       optionalString(req.Description),
	})
	if err != nil {
		return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	err = s.store.WithinTx(ctx, func(tx repo_interfaces.LedgerTx) error {
		source, destination, err := lockAccountPair(ctx, tx, fromAccountNumber, toAccountNumber)
		if err != nil {
			return err
		}

		if err := s.validateActiveInBaseCurrency(source); err != nil {
			return err
		}
		if err := s.validateActiveInBaseCurrency(destination); err != nil {
			return err
		}
		if source.Balance.LessThan(req.Amount) {
			return fmt.Errorf("%w in account %s", domain.ErrInsufficientFunds, source.AccountNumber)
		}

		source.Balance = source.Balance.Sub(req.Amount)
		destination.Balance = destination.Balance.Add(req.Amount)

		if _, err := tx.SaveAccount(ctx, source); err != nil {
			return err
		}
		if _, err := tx.SaveAccount(ctx, destination); err != nil {
			return err
		}

		return tx.UpdateTransactionStatus(ctx, pending.TransactionID, domain.TransactionStatusCompleted, nil)
	})
	if err != nil {
		return s.failTransaction(ctx, pending, err)
	}

	pending.Status = domain.TransactionStatusCompleted
	logger.Info("transfer service transfer completed", logger.Fields{
		"transactionId":     pending.TransactionID,
		"fromAccountNumber": pending.FromAccountNumber,
		"toAccountNumber":   pending.ToAccountNumber,
		"amount":            pending.Amount.StringFixed(2),
	})

	return commons.SuccessResponse("transfer completed successfully", mapTransactionToResponse(pending)), nil
}

// Deposit credits a single account from outside the ledger, recorded as a
// DEPOSIT transaction with the same admission and terminal-state lifecycle as
// a transfer.
func (s *TransferService) Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("transfer service deposit request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()),
			fmt.Errorf("%w: %s", domain.ErrInvalidTransfer, err.Error())
	}

	return s.postSingleAccount(ctx, domain.TransactionTypeDeposit, strings.TrimSpace(req.AccountNumber), req.Amount, req.Description)
}

// Withdraw debits a single account, recorded as a WITHDRAWAL transaction.
func (s *TransferService) Withdraw(ctx context.Context, req models.WithdrawRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("transfer service withdraw request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()),
			fmt.Errorf("%w: %s", domain.ErrInvalidTransfer, err.Error())
	}

	return s.postSingleAccount(ctx, domain.TransactionTypeWithdrawal, strings.TrimSpace(req.AccountNumber), req.Amount, req.Description)
}

func (s *TransferService) GetTransactionStatus(ctx context.Context, transactionID string) (commons.Response[models.TransferResponse], error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return commons.ErrorResponse[models.TransferResponse]("validation failed", "transactionId is required"),
			fmt.Errorf("%w: transactionId is required", domain.ErrInvalidTransfer)
	}

	transaction, err := s.ledgerWriter.Get(ctx, transactionID)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return commons.ErrorResponse[models.TransferResponse]("Transaction not found"), err
		}
		logger.Error("transfer service get transaction status failed", err, logger.Fields{
			"transactionId": transactionID,
		})
		return commons.ErrorResponse[models.TransferResponse]("failed to fetch transaction", "Unable to fetch transaction right now"), err
	}

	return commons.SuccessResponse("transaction fetched successfully", mapTransactionToResponse(transaction)), nil
}

func (s *TransferService) postSingleAccount(
	ctx context.Context,
	transactionType domain.TransactionType,
	accountNumber string,
	amount decimal.Decimal,
	description string,
) (commons.Response[models.TransferResponse], error) {
	pending, err := s.ledgerWriter.RecordPending(ctx, domain.Transaction{
		TransactionID:     newTransactionID(),
		FromAccountNumber: accountNumber,
		ToAccountNumber:   accountNumber,
		Amount:            amount,
		Currency:          s.baseCurrency,
		Type:              transactionType,
		Description:       optionalString(description),
	})
	if err != nil {
		return commons.ErrorResponse[models.TransferResponse]("failed to process transaction", "Unable to process transaction right now"), err
	}

	err = s.store.WithinTx(ctx, func(tx repo_interfaces.LedgerTx) error {
		account, err := lockAccount(ctx, tx, accountNumber)
		if err != nil {
			return err
		}

		if err := s.validateActiveInBaseCurrency(account); err != nil {
			return err
		}

		if transactionType == domain.TransactionTypeWithdrawal {
			if account.Balance.LessThan(amount) {
				return fmt.Errorf("%w in account %s", domain.ErrInsufficientFunds, account.AccountNumber)
			}
			account.Balance = account.Balance.Sub(amount)
		} else {
			account.Balance = account.Balance.Add(amount)
		}

		if _, err := tx.SaveAccount(ctx, account); err != nil {
			return err
		}

		return tx.UpdateTransactionStatus(ctx, pending.TransactionID, domain.TransactionStatusCompleted, nil)
	})
	if err != nil {
		return s.failTransaction(ctx, pending, err)
	}

	pending.Status = domain.TransactionStatusCompleted
	return commons.SuccessResponse("transaction completed successfully", mapTransactionToResponse(pending)), nil
}

// failTransaction records the terminal FAILED state for an admitted
// transaction and maps the error to the caller-facing response. Every
// post-admission failure path funnels through here so no attempt goes
// unrecorded.
func (s *TransferService) failTransaction(ctx context.Context, pending domain.Transaction, err error) (commons.Response[models.TransferResponse], error) {
	reason := failureReason(err)
	s.ledgerWriter.MarkFailed(ctx, pending.TransactionID, reason)

	logger.Error("transfer service transaction failed", err, logger.Fields{
		"transactionId":     pending.TransactionID,
		"fromAccountNumber": pending.FromAccountNumber,
		"toAccountNumber":   pending.ToAccountNumber,
		"type":              pending.Type,
	})

	return commons.ErrorResponse[models.TransferResponse](errorMessage(err), reason), err
}

func (s *TransferService) validateActiveInBaseCurrency(account domain.Account) error {
	if account.Status != domain.AccountStatusActive {
		return fmt.Errorf("%w: %s", domain.ErrAccountInactive, account.AccountNumber)
	}
	if !strings.EqualFold(strings.TrimSpace(account.Currency), s.baseCurrency) {
		return fmt.Errorf("%w: account %s is not denominated in %s", domain.ErrCurrencyMismatch, account.AccountNumber, s.baseCurrency)
	}
	return nil
}

// lockAccountPair acquires exclusive locks on both accounts in ascending
// account-number order regardless of transfer direction, so two concurrent
// transfers over the same pair always request locks in the same relative
// order and cannot deadlock.
func lockAccountPair(ctx context.Context, tx repo_interfaces.LedgerTx, fromAccountNumber, toAccountNumber string) (domain.Account, domain.Account, error) {
	first, second := fromAccountNumber, toAccountNumber
	if second < first {
		first, second = second, first
	}

	firstAccount, err := lockAccount(ctx, tx, first)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}
	secondAccount, err := lockAccount(ctx, tx, second)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	if first == fromAccountNumber {
		return firstAccount, secondAccount, nil
	}
	return secondAccount, firstAccount, nil
}

func lockAccount(ctx context.Context, tx repo_interfaces.LedgerTx, accountNumber string) (domain.Account, error) {
	account, err := tx.LockAccount(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.Account{}, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountNumber)
		}
		return domain.Account{}, err
	}
	return account, nil
}

// failureReason keeps client-attributable causes verbatim and collapses
// everything else into a generic reason so internal details never leak into
// the ledger record.
func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrAccountInactive),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrCurrencyMismatch):
		return err.Error()
	default:
		return "internal failure: transaction posting did not complete"
	}
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return "Account not found"
	case errors.Is(err, domain.ErrAccountInactive):
		return "Account is not active"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "Insufficient balance"
	case errors.Is(err, domain.ErrCurrencyMismatch):
		return "Currency mismatch"
	default:
		return "failed to process transaction"
	}
}

func mapTransactionToResponse(transaction domain.Transaction) models.TransferResponse {
	return models.TransferResponse{
		TransactionID:     transaction.TransactionID,
		FromAccountNumber: transaction.FromAccountNumber,
		ToAccountNumber:   transaction.ToAccountNumber,
		Amount:            transaction.Amount.StringFixed(2),
		Currency:          transaction.Currency,
		Type:              string(transaction.Type),
		Status:            string(transaction.Status),
		Description:       valueOrEmpty(transaction.Description),
		FailureReason:     valueOrEmpty(transaction.FailureReason),
		Timestamp:         transaction.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func newTransactionID() string {
	return "TXN-" + uuid.NewString()
}

func optionalString(value string) *string {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	return &v
}

func valueOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}
