package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/oseme/esusu/internal/adapter/http/dto"
	"github.com/oseme/esusu/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrFundNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrPolicyNotFound),
		errors.Is(err, domain.ErrNoEffectivePolicy),
		errors.Is(err, domain.ErrDepositNotFound),
		errors.Is(err, domain.ErrMemberNotFound),
		errors.Is(err, domain.ErrNotificationNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateDeposit),
		errors.Is(err, domain.ErrMemberExists),
		errors.Is(err, domain.ErrPolicyMonthClosed),
		errors.Is(err, domain.ErrPolicyNotUpcoming),
		errors.Is(err, domain.ErrDepositNotPending),
		errors.Is(err, domain.ErrFundNotEmpty),
		errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSameFund),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrCurrencyMismatch),
		errors.Is(err, domain.ErrInvalidMonth),
		errors.Is(err, domain.ErrInvalidDayOfMonth),
		errors.Is(err, domain.ErrPolicyOutOfWindow),
		errors.Is(err, domain.ErrDepositAmountMismatch),
		errors.Is(err, domain.ErrMissingReceipt),
		errors.Is(err, domain.ErrMissingRejectReason),
		errors.Is(err, domain.ErrInvalidFundTitle),
		errors.Is(err, domain.ErrInvalidCurrency):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInsufficientRole):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
