package usecases

import (
	"context"
	"errors"

	"boaz/internal/domain/housing"
	"boaz/internal/domain/subscription"
	appErrors "boaz/internal/shared/errors"
	"boaz/internal/shared/logger"
)

// DeleteHousingUnitUseCase permanently removes a housing unit. Deletion is
// refused while any subscription still references the unit.
type DeleteHousingUnitUseCase struct {
	unitRepo housing.Repository
	subRepo  subscription.Repository
	logger   logger.Interface
}

func NewDeleteHousingUnitUseCase(
	unitRepo housing.Repository,
	subRepo subscription.Repository,
	logger logger.Interface,
) *DeleteHousingUnitUseCase {
	return &DeleteHousingUnitUseCase{
		unitRepo: unitRepo,
		subRepo:  subRepo,
		logger:   logger,
	}
}

func (uc *DeleteHousingUnitUseCase) Execute(ctx context.Context, id uint) error {
	unit, err := uc.unitRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get housing unit", "id", id, "error", err)
		return appErrors.NewInternalError("failed to delete housing unit")
	}
	if unit == nil {
		return appErrors.NewNotFoundError("housing unit not found")
	}

	_, total, err := uc.subRepo.List(ctx, subscription.ListFilter{HousingUnitID: id, Page: 1, PageSize: 1})
	if err != nil {
		uc.logger.Errorw("failed to check subscriptions for housing unit", "id", id, "error", err)
		return appErrors.NewInternalError("failed to delete housing unit")
	}
	if total > 0 {
		return appErrors.NewConflictError("housing unit is referenced by existing subscriptions")
	}

	if err := uc.unitRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, housing.ErrUnitNotFound) {
			return appErrors.NewNotFoundError("housing unit not found")
		}
		uc.logger.Errorw("failed to delete housing unit", "id", id, "error", err)
		return appErrors.NewInternalError("failed to delete housing unit")
	}

	uc.logger.Infow("housing unit permanently deleted", "id", id)
	return nil
}
