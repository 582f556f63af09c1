package prize

import (
	"errors"

	apperrors "github.com/affhub/meetup-backend/pkg/errors"
)

// Sentinel errors for the prize domain.
var (
	ErrPrizeNotFound      = errors.New("prize not found")
	ErrPrizeUnavailable   = errors.New("prize is out of stock")
	ErrAlreadyAwarded     = errors.New("registrant already has a prize")
	ErrRegistrantNotFound = errors.New("registrant not found")
)

func NewPrizeNotFoundError() error {
	return apperrors.NewNotFoundError("prize not found", ErrPrizeNotFound)
}

func NewPrizeUnavailableError() error {
	return apperrors.NewConflictError("prize is out of stock", ErrPrizeUnavailable)
}

func NewAlreadyAwardedError() error {
	return apperrors.NewConflictError("registrant already has a prize", ErrAlreadyAwarded)
}

func NewRegistrantNotFoundError() error {
	return apperrors.NewNotFoundError("registrant not found", ErrRegistrantNotFound)
}
