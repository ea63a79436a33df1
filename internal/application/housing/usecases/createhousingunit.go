package usecases

import (
	"context"
	"errors"

	"boaz/internal/domain/housing"
	appErrors "boaz/internal/shared/errors"
	"boaz/internal/shared/logger"
)

type CreateHousingUnitCommand struct {
	Title       string
	Description string
	Address     string
	City        string
	PostalCode  string
	Country     string
	Rent        float64
	Charges     float64
}

type CreateHousingUnitUseCase struct {
	unitRepo housing.Repository
	logger   logger.Interface
}

func NewCreateHousingUnitUseCase(
	unitRepo housing.Repository,
	logger logger.Interface,
) *CreateHousingUnitUseCase {
	return &CreateHousingUnitUseCase{
		unitRepo: unitRepo,
		logger:   logger,
	}
}

func (uc *CreateHousingUnitUseCase) Execute(ctx context.Context, cmd CreateHousingUnitCommand) (*housing.HousingUnit, error) {
	unit, err := housing.NewHousingUnit(housing.NewHousingUnitParams{
		Title:       cmd.Title,
		Description: cmd.Description,
		Address:     cmd.Address,
		City:        cmd.City,
		PostalCode:  cmd.PostalCode,
		Country:     cmd.Country,
		Rent:        cmd.Rent,
		Charges:     cmd.Charges,
	})
	if err != nil {
		return nil, appErrors.NewValidationError(err.Error())
	}

	existing, err := uc.unitRepo.GetByLocation(ctx, unit.Address(), unit.City(), unit.PostalCode())
	if err != nil {
		uc.logger.Errorw("failed to check housing unit location", "error", err)
		return nil, appErrors.NewInternalError("failed to create housing unit")
	}
	if existing != nil {
		return nil, appErrors.NewValidationError("a housing unit already exists at this address")
	}

	if err := uc.unitRepo.Create(ctx, unit); err != nil {
		if errors.Is(err, housing.ErrDuplicateLocation) {
			return nil, appErrors.NewValidationError("a housing unit already exists at this address")
		}
		uc.logger.Errorw("failed to create housing unit", "error", err)
		return nil, appErrors.NewInternalError("failed to create housing unit")
	}

	uc.logger.Infow("housing unit created", "id", unit.ID(), "city", unit.City())
	return unit, nil
}
