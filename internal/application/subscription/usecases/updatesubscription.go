package usecases

import (
	"context"
	"errors"
	"time"

	"boaz/internal/domain/housing"
	housingVO "boaz/internal/domain/housing/valueobjects"
	"boaz/internal/domain/subscription"
	appErrors "boaz/internal/shared/errors"
	"boaz/internal/shared/logger"
)

type UpdateSubscriptionCommand struct {
	ID             uint
	Tenant         *subscription.Tenant
	Academic       *subscription.Academic
	HousingUnitID  *uint
	MoveInDate     *time.Time
	DurationMonths *int
	ServiceIDs     []int
}

type UpdateSubscriptionUseCase struct {
	subRepo  subscription.Repository
	unitRepo housing.Repository
	logger   logger.Interface
}

func NewUpdateSubscriptionUseCase(
	subRepo subscription.Repository,
	unitRepo housing.Repository,
	logger logger.Interface,
) *UpdateSubscriptionUseCase {
	return &UpdateSubscriptionUseCase{
		subRepo:  subRepo,
		unitRepo: unitRepo,
		logger:   logger,
	}
}

func (uc *UpdateSubscriptionUseCase) Execute(ctx context.Context, cmd UpdateSubscriptionCommand) (*subscription.Subscription, error) {
	sub, err := uc.subRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "id", cmd.ID, "error", err)
		return nil, appErrors.NewInternalError("failed to update subscription")
	}
	if sub == nil {
		return nil, appErrors.NewNotFoundError("subscription not found")
	}

	if cmd.HousingUnitID != nil && *cmd.HousingUnitID != sub.HousingUnitID() {
		unit, err := uc.unitRepo.GetByID(ctx, *cmd.HousingUnitID)
		if err != nil {
			uc.logger.Errorw("failed to get housing unit", "id", *cmd.HousingUnitID, "error", err)
			return nil, appErrors.NewInternalError("failed to update subscription")
		}
		if unit == nil {
			return nil, appErrors.NewNotFoundError("housing unit not found")
		}
		if unit.Status() != housingVO.UnitStatusAvailable {
			return nil, appErrors.NewUnavailableError("housing unit is not available")
		}
		if err := sub.ChangeHousingUnit(*cmd.HousingUnitID); err != nil {
			return nil, mapSubscriptionError(err)
		}
	}

	err = sub.UpdateDetails(subscription.UpdateDetailsParams{
		Tenant:         cmd.Tenant,
		Academic:       cmd.Academic,
		MoveInDate:     cmd.MoveInDate,
		DurationMonths: cmd.DurationMonths,
		ServiceIDs:     cmd.ServiceIDs,
	})
	if err != nil {
		return nil, mapSubscriptionError(err)
	}

	if err := uc.subRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "id", cmd.ID, "error", err)
		return nil, appErrors.NewInternalError("failed to update subscription")
	}

	return sub, nil
}

// mapSubscriptionError translates domain errors into the API error taxonomy.
func mapSubscriptionError(err error) error {
	switch {
	case errors.Is(err, subscription.ErrSubscriptionLocked):
		return appErrors.NewLockedError("subscription can no longer be edited")
	case errors.Is(err, subscription.ErrInvalidStatusTransition):
		return appErrors.NewInvalidTransitionError(err.Error())
	default:
		return appErrors.NewValidationError(err.Error())
	}
}
