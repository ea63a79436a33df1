package usecases

import (
	"context"

	"boaz/internal/domain/housing"
	appErrors "boaz/internal/shared/errors"
	"boaz/internal/shared/logger"
)

type GetHousingUnitUseCase struct {
	unitRepo housing.Repository
	logger   logger.Interface
}

func NewGetHousingUnitUseCase(
	unitRepo housing.Repository,
	logger logger.Interface,
) *GetHousingUnitUseCase {
	return &GetHousingUnitUseCase{
		unitRepo: unitRepo,
		logger:   logger,
	}
}

func (uc *GetHousingUnitUseCase) Execute(ctx context.Context, id uint) (*housing.HousingUnit, error) {
	unit, err := uc.unitRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get housing unit", "id", id, "error", err)
		return nil, appErrors.NewInternalError("failed to get housing unit")
	}
	if unit == nil {
		return nil, appErrors.NewNotFoundError("housing unit not found")
	}

	return unit, nil
}
