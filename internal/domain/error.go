package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrPlanNotFound       = errors.New("plan not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrInternshipNotFound = errors.New("internship not found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrRateLimited        = errors.New("rate limit exceeded")

	// Persistence errors
	ErrOperationFailed    = errors.New("storage operation failed")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
	ErrInvalidExecContext = errors.New("invalid executor context")

	// ErrGatewayFailed covers transport failures and explicit non-success
	// responses from the payment provider.
	ErrGatewayFailed = errors.New("payment gateway request failed")
)
