package usecases

import (
	"context"
	"errors"

	"boaz/internal/domain/housing"
	appErrors "boaz/internal/shared/errors"
	"boaz/internal/shared/logger"
)

// UpdateHousingUnitCommand is a partial update; nil fields are untouched.
type UpdateHousingUnitCommand struct {
	ID          uint
	Title       *string
	Description *string
	Address     *string
	City        *string
	PostalCode  *string
	Country     *string
	Rent        *float64
	Charges     *float64
}

type UpdateHousingUnitUseCase struct {
	unitRepo housing.Repository
	logger   logger.Interface
}

func NewUpdateHousingUnitUseCase(
	unitRepo housing.Repository,
	logger logger.Interface,
) *UpdateHousingUnitUseCase {
	return &UpdateHousingUnitUseCase{
		unitRepo: unitRepo,
		logger:   logger,
	}
}

func (uc *UpdateHousingUnitUseCase) Execute(ctx context.Context, cmd UpdateHousingUnitCommand) (*housing.HousingUnit, error) {
	unit, err := uc.unitRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		uc.logger.Errorw("failed to get housing unit", "id", cmd.ID, "error", err)
		return nil, appErrors.NewInternalError("failed to update housing unit")
	}
	if unit == nil {
		return nil, appErrors.NewNotFoundError("housing unit not found")
	}

	if cmd.Title != nil {
		if err := unit.UpdateTitle(*cmd.Title); err != nil {
			return nil, appErrors.NewValidationError(err.Error())
		}
	}
	if cmd.Description != nil {
		unit.UpdateDescription(*cmd.Description)
	}
	if cmd.Address != nil || cmd.City != nil || cmd.PostalCode != nil || cmd.Country != nil {
		address := valueOr(cmd.Address, unit.Address())
		city := valueOr(cmd.City, unit.City())
		postalCode := valueOr(cmd.PostalCode, unit.PostalCode())
		country := valueOr(cmd.Country, unit.Country())
		if err := unit.UpdateLocation(address, city, postalCode, country); err != nil {
			return nil, appErrors.NewValidationError(err.Error())
		}
	}
	if cmd.Rent != nil || cmd.Charges != nil {
		rent := unit.Rent()
		if cmd.Rent != nil {
			rent = *cmd.Rent
		}
		charges := unit.Charges()
		if cmd.Charges != nil {
			charges = *cmd.Charges
		}
		if err := unit.UpdateAmounts(rent, charges); err != nil {
			return nil, appErrors.NewValidationError(err.Error())
		}
	}

	if err := uc.unitRepo.Update(ctx, unit); err != nil {
		if errors.Is(err, housing.ErrDuplicateLocation) {
			return nil, appErrors.NewValidationError("a housing unit already exists at this address")
		}
		uc.logger.Errorw("failed to update housing unit", "id", cmd.ID, "error", err)
		return nil, appErrors.NewInternalError("failed to update housing unit")
	}

	return unit, nil
}

func valueOr(ptr *string, fallback string) string {
	if ptr != nil {
		return *ptr
	}
	return fallback
}
