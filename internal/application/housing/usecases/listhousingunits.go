package usecases

import (
	"context"

	"boaz/internal/domain/housing"
	vo "boaz/internal/domain/housing/valueobjects"
	appErrors "boaz/internal/shared/errors"
	"boaz/internal/shared/logger"
)

type ListHousingUnitsQuery struct {
	Status   string
	City     string
	Page     int
	PageSize int
}

type ListHousingUnitsResult struct {
	Units []*housing.HousingUnit
	Total int64
}

type ListHousingUnitsUseCase struct {
	unitRepo housing.Repository
	logger   logger.Interface
}

func NewListHousingUnitsUseCase(
	unitRepo housing.Repository,
	logger logger.Interface,
) *ListHousingUnitsUseCase {
	return &ListHousingUnitsUseCase{
		unitRepo: unitRepo,
		logger:   logger,
	}
}

func (uc *ListHousingUnitsUseCase) Execute(ctx context.Context, query ListHousingUnitsQuery) (*ListHousingUnitsResult, error) {
	filter := housing.ListFilter{
		City:     query.City,
		Page:     query.Page,
		PageSize: query.PageSize,
	}

	if query.Status != "" {
		status, ok := vo.ParseUnitStatus(query.Status)
		if !ok {
			return nil, appErrors.NewValidationError("unknown housing unit status: " + query.Status)
		}
		filter.Status = &status
	}

	units, total, err := uc.unitRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list housing units", "error", err)
		return nil, appErrors.NewInternalError("failed to list housing units")
	}

	return &ListHousingUnitsResult{Units: units, Total: total}, nil
}
