package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"boaz/internal/domain/subscription"
	vo "boaz/internal/domain/subscription/valueobjects"
	"boaz/internal/infrastructure/persistence/mappers"
	"boaz/internal/infrastructure/persistence/models"
	"boaz/internal/shared/constants"
	"boaz/internal/shared/db"
	"boaz/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(
	db *gorm.DB,
	logger logger.Interface,
) subscription.Repository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, sub *subscription.Subscription) error {
	model, err := r.mapper.ToModel(sub)
	if err != nil {
		return fmt.Errorf("failed to map subscription: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return subscription.ErrReferenceExists
		}
		r.logger.Errorw("failed to create subscription", "error", err)
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := sub.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set subscription ID: %w", err)
	}

	r.logger.Infow("subscription created",
		"id", model.ID, "reference", model.Reference, "housing_unit_id", model.HousingUnitID)
	return nil
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) GetByReference(ctx context.Context, reference string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("reference = ?", reference).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subscription by reference: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	var count int64

	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Model(&models.SubscriptionModel{}).
		Where("reference = ?", reference).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check reference existence: %w", err)
	}

	return count > 0, nil
}

func (r *SubscriptionRepositoryImpl) List(ctx context.Context, filter subscription.ListFilter) ([]*subscription.Subscription, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.SubscriptionModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.HousingUnitID != 0 {
		query = query.Where("housing_unit_id = ?", filter.HousingUnitID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	var subModels []*models.SubscriptionModel
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&subModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	entities, err := r.mapper.ToEntities(subModels)
	if err != nil {
		return nil, 0, err
	}

	return entities, total, nil
}

func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, sub *subscription.Subscription) error {
	model, err := r.mapper.ToModel(sub)
	if err != nil {
		return fmt.Errorf("failed to map subscription: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Save(model).Error; err != nil {
		r.logger.Errorw("failed to update subscription", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	return nil
}

func (r *SubscriptionRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.SubscriptionModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete subscription", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return subscription.ErrSubscriptionNotFound
	}

	r.logger.Infow("subscription deleted", "id", id)
	return nil
}

// FindExpiredDelivered returns delivered subscriptions whose validity window
// ended strictly before asOf. The sweep closes them and frees their units.
func (r *SubscriptionRepositoryImpl) FindExpiredDelivered(ctx context.Context, asOf time.Time) ([]*subscription.Subscription, error) {
	var subModels []*models.SubscriptionModel

	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?",
		vo.StatusDelivered.String(), asOf).
		Order("expires_at ASC").
		Find(&subModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find expired subscriptions: %w", err)
	}

	return r.mapper.ToEntities(subModels)
}
