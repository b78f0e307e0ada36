package model

import (
	"errors"

	"github.com/bibbank/treasury/pkg/money"
)

// Malformed-input errors. Callers distinguish them with errors.Is.
var (
	ErrNegativeRate        = errors.New("negative daily rate")
	ErrUnsupportedCurrency = money.ErrUnsupportedCurrency
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidDate         = errors.New("invalid date")
	ErrNotFound            = errors.New("not found")
)
