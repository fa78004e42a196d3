package analytics

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRange        = errors.New("invalid date range")
	ErrInsufficientData    = errors.New("insufficient data")
	ErrForecastUnavailable = errors.New("forecast unavailable")
)

// InsufficientDataError reports a sample threshold that was not met. It
// matches ErrInsufficientData.
type InsufficientDataError struct {
	What string
	Need int
	Have int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("not enough data for %s: need at least %d, have %d", e.What, e.Need, e.Have)
}

func (e *InsufficientDataError) Is(target error) bool { return target == ErrInsufficientData }

func insufficient(what string, need, have int) error {
	return &InsufficientDataError{What: what, Need: need, Have: have}
}

func forecastUnavailable(reason string) error {
	return fmt.Errorf("%w: %s", ErrForecastUnavailable, reason)
}
