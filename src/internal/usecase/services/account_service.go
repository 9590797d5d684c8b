package services

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/api-sage/banking-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/banking-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/banking-ledger/src/internal/commons"
	"github.com/api-sage/banking-ledger/src/internal/domain"
	"github.com/api-sage/banking-ledger/src/internal/logger"
)

const accountNumberAttempts = 5

type AccountService struct {
	accountRepo repo_interfaces.AccountRepository
}

func NewAccountService(accountRepo repo_interfaces.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

func (s *AccountService) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service create account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service create account validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	account := domain.Account{
		AccountHolderName: strings.TrimSpace(req.AccountHolderName),
		Balance:           req.InitialBalance,
		Currency:          strings.ToUpper(strings.TrimSpace(req.Currency)),
		Status:            domain.AccountStatusActive,
	}

	// Uniqueness comes from the store's constraint, with a bounded retry on
	// the rare collision.
	var created domain.Account
	var err error
	for attempt := 0; attempt < accountNumberAttempts; attempt++ {
		account.AccountNumber, err = generateAccountNumber()
		if err != nil {
			return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
		}

		created, err = s.accountRepo.Create(ctx, account)
		if err == nil {
			break
		}
		if !isUniqueViolation(err) {
			logger.Error("account service create account repository failed", err, nil)
			return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
		}
	}
	if err != nil {
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
	}

	logger.Info("account service create account success", logger.Fields{
		"accountId":     created.ID,
		"accountNumber": created.AccountNumber,
	})

	return commons.SuccessResponse("account created successfully", mapAccountToResponse(created)), nil
}

func (s *AccountService) GetAccount(ctx context.Context, accountNumber string) (commons.Response[models.AccountResponse], error) {
	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		return commons.ErrorResponse[models.AccountResponse]("validation failed", "accountNumber is required"),
			fmt.Errorf("accountNumber is required")
	}

	account, err := s.accountRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Account not found"), err
		}
		logger.Error("account service get account failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to fetch account", "Unable to fetch account right now"), err
	}

	return commons.SuccessResponse("account fetched successfully", mapAccountToResponse(account)), nil
}

func (s *AccountService) GetBalance(ctx context.Context, accountNumber string) (commons.Response[models.BalanceResponse], error) {
	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		return commons.ErrorResponse[models.BalanceResponse]("validation failed", "accountNumber is required"),
			fmt.Errorf("accountNumber is required")
	}

	account, err := s.accountRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return commons.ErrorResponse[models.BalanceResponse]("Account not found"), err
		}
		logger.Error("account service get balance failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return commons.ErrorResponse[models.BalanceResponse]("failed to fetch balance", "Unable to fetch balance right now"), err
	}

	response := models.BalanceResponse{
		AccountNumber: account.AccountNumber,
		Balance:       account.Balance.StringFixed(2),
		Currency:      account.Currency,
	}

	return commons.SuccessResponse("balance fetched successfully", response), nil
}

func (s *AccountService) ListAccounts(ctx context.Context) (commons.Response[[]models.AccountResponse], error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		logger.Error("account service list accounts failed", err, nil)
		return commons.ErrorResponse[[]models.AccountResponse]("failed to list accounts", "Unable to list accounts right now"), err
	}

	responses := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, mapAccountToResponse(account))
	}

	return commons.SuccessResponse("accounts fetched successfully", responses), nil
}

func mapAccountToResponse(account domain.Account) models.AccountResponse {
	return models.AccountResponse{
		ID:                account.ID,
		AccountNumber:     account.AccountNumber,
		AccountHolderName: account.AccountHolderName,
		Balance:           account.Balance.StringFixed(2),
		Currency:          account.Currency,
		Status:            string(account.Status),
		Version:           account.Version,
		CreatedAt:         account.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:         account.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// generateAccountNumber draws the XXXX-XXXX-XXXX digits from crypto/rand so
// concurrent creations share no generator state.
func generateAccountNumber() (string, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("generate account number: %w", err)
	}

	value := binary.BigEndian.Uint64(buf[:])
	first := value % 10000
	second := (value / 10000) % 10000
	third := (value / 100000000) % 10000

	return fmt.Sprintf("%04d-%04d-%04d", first, second, third), nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}
