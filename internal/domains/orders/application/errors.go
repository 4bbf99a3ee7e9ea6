package application

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated an order rule.
	ErrInvalidInput = errors.New("invalid order input")
)

// ValidationError carries every violation found in an order payload.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(e.Errors, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrUnknownStatus) ||
		errors.Is(err, domain.ErrStatusRequired) ||
		errors.Is(err, domain.ErrEmptyOrder) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
