package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter marks input that is rejected before any computation:
	// non-positive or non-finite physical quantities, unknown target types.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidSchedule marks a mission timeline that cannot produce a
	// required delta-v: impact not after launch, or non-positive warning time.
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrUnknownStrategy is returned for a strategy tag outside the five
	// canonical deflection techniques.
	ErrUnknownStrategy = fmt.Errorf("%w: unknown deflection strategy", ErrInvalidParameter)

	// ErrUnknownRequestKind is returned by Evaluate for an unrecognized kind.
	ErrUnknownRequestKind = fmt.Errorf("%w: unknown request kind", ErrInvalidParameter)
)

func invalidParameter(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

func invalidSchedule(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSchedule, fmt.Sprintf(format, args...))
}
