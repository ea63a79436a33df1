package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"boaz/internal/domain/housing"
	vo "boaz/internal/domain/housing/valueobjects"
	"boaz/internal/infrastructure/persistence/mappers"
	"boaz/internal/infrastructure/persistence/models"
	"boaz/internal/shared/constants"
	"boaz/internal/shared/db"
	"boaz/internal/shared/logger"
)

type HousingUnitRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.HousingUnitMapper
	logger logger.Interface
}

func NewHousingUnitRepository(
	db *gorm.DB,
	logger logger.Interface,
) housing.Repository {
	return &HousingUnitRepositoryImpl{
		db:     db,
		mapper: mappers.NewHousingUnitMapper(),
		logger: logger,
	}
}

func (r *HousingUnitRepositoryImpl) Create(ctx context.Context, unit *housing.HousingUnit) error {
	model, err := r.mapper.ToModel(unit)
	if err != nil {
		return fmt.Errorf("failed to map housing unit: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return housing.ErrDuplicateLocation
		}
		r.logger.Errorw("failed to create housing unit", "error", err)
		return fmt.Errorf("failed to create housing unit: %w", err)
	}

	if err := unit.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set housing unit ID: %w", err)
	}

	r.logger.Infow("housing unit created", "id", model.ID, "city", model.City)
	return nil
}

func (r *HousingUnitRepositoryImpl) GetByID(ctx context.Context, id uint) (*housing.HousingUnit, error) {
	var model models.HousingUnitModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get housing unit", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get housing unit: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *HousingUnitRepositoryImpl) GetByLocation(ctx context.Context, address, city, postalCode string) (*housing.HousingUnit, error) {
	var model models.HousingUnitModel

	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Where("address = ? AND city = ? AND postal_code = ?", address, city, postalCode).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get housing unit by location: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *HousingUnitRepositoryImpl) List(ctx context.Context, filter housing.ListFilter) ([]*housing.HousingUnit, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.HousingUnitModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count housing units: %w", err)
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

	var unitModels []*models.HousingUnitModel
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&unitModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list housing units: %w", err)
	}

	entities, err := r.mapper.ToEntities(unitModels)
	if err != nil {
		return nil, 0, err
	}

	return entities, total, nil
}

func (r *HousingUnitRepositoryImpl) Update(ctx context.Context, unit *housing.HousingUnit) error {
	model, err := r.mapper.ToModel(unit)
	if err != nil {
		return fmt.Errorf("failed to map housing unit: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return housing.ErrDuplicateLocation
		}
		r.logger.Errorw("failed to update housing unit", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update housing unit: %w", err)
	}

	return nil
}

func (r *HousingUnitRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.HousingUnitModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete housing unit", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete housing unit: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return housing.ErrUnitNotFound
	}

	r.logger.Infow("housing unit deleted", "id", id)
	return nil
}

// UpdateStatusIf flips the unit status only when the current status matches
// the expectation, in a single conditional UPDATE. The boolean result tells
// the caller whether the flip happened, which makes the check-and-occupy
// race safe without row locks.
func (r *HousingUnitRepositoryImpl) UpdateStatusIf(ctx context.Context, id uint, expected, target vo.UnitStatus) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.HousingUnitModel{}).
		Where("id = ? AND status = ?", id, expected.String()).
		Updates(map[string]interface{}{
			"status":  target.String(),
			"version": gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update housing unit status",
			"id", id, "expected", expected, "target", target, "error", result.Error)
		return false, fmt.Errorf("failed to update housing unit status: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func isDuplicateError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry") ||
		strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
