package usecases

import (
	"context"

	"boaz/internal/domain/housing"
	vo "boaz/internal/domain/housing/valueobjects"
	appErrors "boaz/internal/shared/errors"
	"boaz/internal/shared/logger"
)

type SetHousingUnitStatusCommand struct {
	ID     uint
	Status string
}

// SetHousingUnitStatusUseCase applies an administrative occupancy change,
// e.g. taking a unit into maintenance. Subscription-driven flips go through
// the delivery and closure use cases instead.
type SetHousingUnitStatusUseCase struct {
	unitRepo housing.Repository
	logger   logger.Interface
}

func NewSetHousingUnitStatusUseCase(
	unitRepo housing.Repository,
	logger logger.Interface,
) *SetHousingUnitStatusUseCase {
	return &SetHousingUnitStatusUseCase{
		unitRepo: unitRepo,
		logger:   logger,
	}
}

func (uc *SetHousingUnitStatusUseCase) Execute(ctx context.Context, cmd SetHousingUnitStatusCommand) (*housing.HousingUnit, error) {
	status, ok := vo.ParseUnitStatus(cmd.Status)
	if !ok {
		return nil, appErrors.NewValidationError("unknown housing unit status: " + cmd.Status)
	}

	unit, err := uc.unitRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		uc.logger.Errorw("failed to get housing unit", "id", cmd.ID, "error", err)
		return nil, appErrors.NewInternalError("failed to change housing unit status")
	}
	if unit == nil {
		return nil, appErrors.NewNotFoundError("housing unit not found")
	}

	previous := unit.Status()
	if err := unit.SetStatus(status); err != nil {
		return nil, appErrors.NewValidationError(err.Error())
	}

	if err := uc.unitRepo.Update(ctx, unit); err != nil {
		uc.logger.Errorw("failed to update housing unit status", "id", cmd.ID, "error", err)
		return nil, appErrors.NewInternalError("failed to change housing unit status")
	}

	uc.logger.Infow("housing unit status changed",
		"id", cmd.ID, "from", previous, "to", status)
	return unit, nil
}
