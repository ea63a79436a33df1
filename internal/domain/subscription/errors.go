package subscription

import (
	"errors"
	"fmt"

	vo "boaz/internal/domain/subscription/valueobjects"
)

var (
	ErrSubscriptionNotFound    = errors.New("subscription not found")
	ErrSubscriptionLocked      = errors.New("subscription can no longer be edited")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrReferenceExists         = errors.New("subscription reference already exists")
)

// ErrInvalidTransition wraps ErrInvalidStatusTransition with the offending
// from/to pair for diagnostics.
func ErrInvalidTransition(from, to vo.SubscriptionStatus) error {
	return fmt.Errorf("%w: from %s to %s", ErrInvalidStatusTransition, from, to)
}
