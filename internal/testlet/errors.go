package testlet

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every construction error, so callers can treat
// all of them as bad input with a single errors.Is check.
var ErrValidation = errors.New("invalid testlet")

var (
	ErrInvalidIdentifier        = fmt.Errorf("%w: identifier must be a non-empty string", ErrValidation)
	ErrInvalidPretestCount      = fmt.Errorf("%w: initial pretest count must be positive", ErrValidation)
	ErrMissingItems             = fmt.Errorf("%w: items collection is nil", ErrValidation)
	ErrEmptyItems               = fmt.Errorf("%w: items collection must have at least one item", ErrValidation)
	ErrInsufficientPretestItems = fmt.Errorf("%w: not enough pretest items", ErrValidation)
	ErrInvalidItem              = fmt.Errorf("%w: item identifier must be a non-empty string", ErrValidation)
	ErrDuplicateItem            = fmt.Errorf("%w: duplicate item identifier", ErrValidation)
)

var ErrUnknownItemType = errors.New("unknown item type")
