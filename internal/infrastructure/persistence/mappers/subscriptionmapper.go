package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"boaz/internal/domain/subscription"
	vo "boaz/internal/domain/subscription/valueobjects"
	"boaz/internal/infrastructure/persistence/models"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error)
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	status, ok := vo.ParseStatus(model.Status)
	if !ok {
		return nil, fmt.Errorf("invalid subscription status: %s", model.Status)
	}

	var serviceIDs []int
	if len(model.ServiceIDs) > 0 {
		if err := json.Unmarshal(model.ServiceIDs, &serviceIDs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal service IDs: %w", err)
		}
	}

	entity, err := subscription.ReconstructSubscription(subscription.ReconstructSubscriptionParams{
		ID:        model.ID,
		Reference: model.Reference,
		Tenant: subscription.Tenant{
			LastName:           model.TenantLastName,
			FirstName:          model.TenantFirstName,
			Email:              model.TenantEmail,
			BirthDate:          model.TenantBirthDate,
			BirthCity:          model.TenantBirthCity,
			BirthCountry:       model.TenantBirthCountry,
			Nationality:        model.TenantNationality,
			DestinationCountry: model.TenantDestinationCountry,
			ArrivalDate:        model.TenantArrivalDate,
		},
		Academic: subscription.Academic{
			School:           model.School,
			Program:          model.Program,
			SchoolCountry:    model.SchoolCountry,
			SchoolCity:       model.SchoolCity,
			SchoolPostalCode: model.SchoolPostalCode,
			SchoolAddress:    model.SchoolAddress,
		},
		HousingUnitID:    model.HousingUnitID,
		MoveInDate:       model.MoveInDate,
		DurationMonths:   model.DurationMonths,
		ServiceIDs:       serviceIDs,
		Status:           status,
		DeliveredAt:      model.DeliveredAt,
		ExpiresAt:        model.ExpiresAt,
		PaymentProofPath: model.PaymentProofPath,
		CreatedByUserID:  model.CreatedByUserID,
		Version:          model.Version,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription %d: %w", model.ID, err)
	}

	return entity, nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	serviceIDs, err := json.Marshal(entity.ServiceIDs())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal service IDs: %w", err)
	}

	tenant := entity.Tenant()
	academic := entity.Academic()

	return &models.SubscriptionModel{
		ID:                       entity.ID(),
		Reference:                entity.Reference(),
		TenantLastName:           tenant.LastName,
		TenantFirstName:          tenant.FirstName,
		TenantEmail:              tenant.Email,
		TenantBirthDate:          tenant.BirthDate,
		TenantBirthCity:          tenant.BirthCity,
		TenantBirthCountry:       tenant.BirthCountry,
		TenantNationality:        tenant.Nationality,
		TenantDestinationCountry: tenant.DestinationCountry,
		TenantArrivalDate:        tenant.ArrivalDate,
		School:                   academic.School,
		Program:                  academic.Program,
		SchoolCountry:            academic.SchoolCountry,
		SchoolCity:               academic.SchoolCity,
		SchoolPostalCode:         academic.SchoolPostalCode,
		SchoolAddress:            academic.SchoolAddress,
		HousingUnitID:            entity.HousingUnitID(),
		MoveInDate:               entity.MoveInDate(),
		DurationMonths:           entity.DurationMonths(),
		ServiceIDs:               datatypes.JSON(serviceIDs),
		Status:                   entity.Status().String(),
		DeliveredAt:              entity.DeliveredAt(),
		ExpiresAt:                entity.ExpiresAt(),
		PaymentProofPath:         entity.PaymentProofPath(),
		CreatedByUserID:          entity.CreatedByUserID(),
		Version:                  entity.Version(),
		CreatedAt:                entity.CreatedAt(),
		UpdatedAt:                entity.UpdatedAt(),
	}, nil
}

func (m *SubscriptionMapperImpl) ToEntities(subModels []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	entities := make([]*subscription.Subscription, 0, len(subModels))
	for _, model := range subModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
