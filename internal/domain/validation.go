package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors
var (
	ErrInvalidFundTitle = errors.New("invalid fund title")
	ErrInvalidCurrency  = errors.New("invalid currency code")
)

const (
	MaxFundTitleLength = 255
	MinFundTitleLength = 1
)

// Valid currency codes (ISO 4217)
var validCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "NGN": true,
	"GHS": true, "KES": true, "ZAR": true, "ETB": true,
	"TZS": true, "UGX": true, "XOF": true, "XAF": true,
	"INR": true, "BRL": true, "MXN": true, "PHP": true,
}

// ValidateFundTitle validates a fund title.
func ValidateFundTitle(title string) error {
	title = strings.TrimSpace(title)

	if len(title) < MinFundTitleLength {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidFundTitle)
	}

	if len(title) > MaxFundTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidFundTitle, MaxFundTitleLength)
	}

	return nil
}

// ValidateCurrency validates a currency code.
func ValidateCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))

	if !validCurrencies[currency] {
		return fmt.Errorf("%w: %s is not a supported ISO 4217 currency code", ErrInvalidCurrency, currency)
	}

	return nil
}

// ValidatePagination limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 100
	const defaultPageSize = 20

	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
