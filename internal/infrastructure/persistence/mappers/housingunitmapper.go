package mappers

import (
	"fmt"

	"boaz/internal/domain/housing"
	vo "boaz/internal/domain/housing/valueobjects"
	"boaz/internal/infrastructure/persistence/models"
)

type HousingUnitMapper interface {
	ToEntity(model *models.HousingUnitModel) (*housing.HousingUnit, error)
	ToModel(entity *housing.HousingUnit) (*models.HousingUnitModel, error)
	ToEntities(models []*models.HousingUnitModel) ([]*housing.HousingUnit, error)
}

type HousingUnitMapperImpl struct{}

func NewHousingUnitMapper() HousingUnitMapper {
	return &HousingUnitMapperImpl{}
}

func (m *HousingUnitMapperImpl) ToEntity(model *models.HousingUnitModel) (*housing.HousingUnit, error) {
	if model == nil {
		return nil, nil
	}

	status, ok := vo.ParseUnitStatus(model.Status)
	if !ok {
		return nil, fmt.Errorf("invalid housing unit status: %s", model.Status)
	}

	entity, err := housing.ReconstructHousingUnit(housing.ReconstructHousingUnitParams{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Address:     model.Address,
		City:        model.City,
		PostalCode:  model.PostalCode,
		Country:     model.Country,
		Rent:        model.Rent,
		Charges:     model.Charges,
		Total:       model.Total,
		Status:      status,
		Version:     model.Version,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct housing unit %d: %w", model.ID, err)
	}

	return entity, nil
}

func (m *HousingUnitMapperImpl) ToModel(entity *housing.HousingUnit) (*models.HousingUnitModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.HousingUnitModel{
		ID:          entity.ID(),
		Title:       entity.Title(),
		Description: entity.Description(),
		Address:     entity.Address(),
		City:        entity.City(),
		PostalCode:  entity.PostalCode(),
		Country:     entity.Country(),
		Rent:        entity.Rent(),
		Charges:     entity.Charges(),
		Total:       entity.Total(),
		Status:      entity.Status().String(),
		Version:     entity.Version(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}

func (m *HousingUnitMapperImpl) ToEntities(unitModels []*models.HousingUnitModel) ([]*housing.HousingUnit, error) {
	entities := make([]*housing.HousingUnit, 0, len(unitModels))
	for _, model := range unitModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
