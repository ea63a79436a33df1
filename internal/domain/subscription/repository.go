package subscription

import (
	"context"
	"time"

	vo "boaz/internal/domain/subscription/valueobjects"
)

// ListFilter narrows List queries.
type ListFilter struct {
	Status        *vo.SubscriptionStatus
	HousingUnitID uint
	Page          int
	PageSize      int
}

// Repository is the persistence contract for subscriptions. Implementations
// must honour an open transaction carried by the context.
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	GetByReference(ctx context.Context, reference string) (*Subscription, error)
	ExistsByReference(ctx context.Context, reference string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]*Subscription, int64, error)
	Update(ctx context.Context, sub *Subscription) error
	Delete(ctx context.Context, id uint) error

	// FindExpiredDelivered returns delivered subscriptions whose expiry
	// date lies strictly before asOf. Already-closed subscriptions never
	// match, which makes the closure sweep idempotent.
	FindExpiredDelivered(ctx context.Context, asOf time.Time) ([]*Subscription, error)
}
