package domain

import "errors"

var ErrInvalidTransfer = errors.New("invalid transfer request")
var ErrAccountNotFound = errors.New("account not found")
var ErrAccountInactive = errors.New("account is not active")
var ErrInsufficientFunds = errors.New("insufficient funds")
var ErrCurrencyMismatch = errors.New("currency mismatch")
var ErrTransactionNotFound = errors.New("transaction not found")
