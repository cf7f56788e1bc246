package pyebwa

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios. Every operation failure
// surfaces synchronously with no partial state change; retry policy belongs
// to the caller.
var (
	// General errors
	ErrNotFound      = errors.New("pyebwa: not found")
	ErrAlreadyExists = errors.New("pyebwa: already exists")
	ErrInvalidInput  = errors.New("pyebwa: invalid input")
	ErrUnauthorized  = errors.New("pyebwa: unauthorized")

	// Pool errors
	ErrPoolNotInitialized = errors.New("pyebwa: pool not initialized")
	ErrPoolExists         = errors.New("pyebwa: pool already initialized")

	// Account errors
	ErrParticipantNotFound = errors.New("pyebwa: participant not found")
	ErrPlanterNotFound     = errors.New("pyebwa: planter not found")
	ErrInsufficientBalance = errors.New("pyebwa: insufficient credit balance")
	ErrPlanterNotVerified  = errors.New("pyebwa: planter not verified")

	// Evidence errors
	ErrEvidenceNotFound       = errors.New("pyebwa: evidence not found")
	ErrInvalidTreeCount       = errors.New("pyebwa: invalid tree count")
	ErrInvalidGPSCoordinates  = errors.New("pyebwa: invalid gps coordinates")
	ErrHashTooLong            = errors.New("pyebwa: evidence hash too long")
	ErrAlreadyVerified        = errors.New("pyebwa: evidence already verified")
	ErrPaymentAlreadyReleased = errors.New("pyebwa: payment already released")

	// Heritage errors
	ErrInvalidHeritageType = errors.New("pyebwa: invalid heritage type")

	// Arithmetic errors
	ErrMathOverflow = errors.New("pyebwa: math overflow")

	// Store errors
	ErrStoreClosed       = errors.New("pyebwa: store is closed")
	ErrTransactionFailed = errors.New("pyebwa: transaction failed")
	ErrMigrationFailed   = errors.New("pyebwa: migration failed")
)

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("pyebwa: validation failed for %s: %s", e.Field, e.Message)
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrPoolNotInitialized) ||
		errors.Is(err, ErrParticipantNotFound) ||
		errors.Is(err, ErrPlanterNotFound) ||
		errors.Is(err, ErrEvidenceNotFound)
}

// IsValidation returns true if the error is an input validation failure.
func IsValidation(err error) bool {
	var ve ValidationError
	if errors.As(err, &ve) {
		return true
	}
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidTreeCount) ||
		errors.Is(err, ErrInvalidGPSCoordinates) ||
		errors.Is(err, ErrHashTooLong) ||
		errors.Is(err, ErrInvalidHeritageType)
}

// IsOverflow returns true if the error is a checked-arithmetic failure.
func IsOverflow(err error) bool {
	return errors.Is(err, ErrMathOverflow)
}
