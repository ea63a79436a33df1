package housing

import (
	"context"

	vo "boaz/internal/domain/housing/valueobjects"
)

// ListFilter narrows List queries.
type ListFilter struct {
	Status   *vo.UnitStatus
	City     string
	Page     int
	PageSize int
}

// Repository is the persistence contract for housing units. Implementations
// must honour an open transaction carried by the context.
type Repository interface {
	Create(ctx context.Context, unit *HousingUnit) error
	GetByID(ctx context.Context, id uint) (*HousingUnit, error)
	GetByLocation(ctx context.Context, address, city, postalCode string) (*HousingUnit, error)
	List(ctx context.Context, filter ListFilter) ([]*HousingUnit, int64, error)
	Update(ctx context.Context, unit *HousingUnit) error
	Delete(ctx context.Context, id uint) error

	// UpdateStatusIf flips the unit status only when the current stored
	// status matches expected, and reports whether a row changed. This is
	// the atomic guard used by delivery to prevent double occupancy.
	UpdateStatusIf(ctx context.Context, id uint, expected, target vo.UnitStatus) (bool, error)
}
