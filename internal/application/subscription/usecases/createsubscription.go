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

// referenceAttempts bounds the retry loop when a generated reference
// collides with an existing one. With 36^16 possible references a second
// attempt is already vanishingly rare.
const referenceAttempts = 5

type CreateSubscriptionCommand struct {
	Tenant          subscription.Tenant
	Academic        subscription.Academic
	HousingUnitID   uint
	MoveInDate      *time.Time
	DurationMonths  int
	ServiceIDs      []int
	CreatedByUserID *uint
}

type CreateSubscriptionUseCase struct {
	subRepo  subscription.Repository
	unitRepo housing.Repository
	refGen   ReferenceGenerator
	logger   logger.Interface
}

func NewCreateSubscriptionUseCase(
	subRepo subscription.Repository,
	unitRepo housing.Repository,
	refGen ReferenceGenerator,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subRepo:  subRepo,
		unitRepo: unitRepo,
		refGen:   refGen,
		logger:   logger,
	}
}

func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*subscription.Subscription, error) {
	unit, err := uc.unitRepo.GetByID(ctx, cmd.HousingUnitID)
	if err != nil {
		uc.logger.Errorw("failed to get housing unit", "id", cmd.HousingUnitID, "error", err)
		return nil, appErrors.NewInternalError("failed to create subscription")
	}
	if unit == nil {
		return nil, appErrors.NewNotFoundError("housing unit not found")
	}
	if unit.Status() != housingVO.UnitStatusAvailable {
		return nil, appErrors.NewUnavailableError("housing unit is not available")
	}

	reference, err := uc.uniqueReference(ctx)
	if err != nil {
		uc.logger.Errorw("failed to generate unique reference", "error", err)
		return nil, appErrors.NewInternalError("failed to create subscription")
	}

	sub, err := subscription.NewSubscription(subscription.NewSubscriptionParams{
		Reference:       reference,
		Tenant:          cmd.Tenant,
		Academic:        cmd.Academic,
		HousingUnitID:   cmd.HousingUnitID,
		MoveInDate:      cmd.MoveInDate,
		DurationMonths:  cmd.DurationMonths,
		ServiceIDs:      cmd.ServiceIDs,
		CreatedByUserID: cmd.CreatedByUserID,
	})
	if err != nil {
		return nil, appErrors.NewValidationError(err.Error())
	}

	if err := uc.subRepo.Create(ctx, sub); err != nil {
		if errors.Is(err, subscription.ErrReferenceExists) {
			// Lost the race between uniqueness check and insert.
			return nil, appErrors.NewConflictError("reference collision, please retry")
		}
		uc.logger.Errorw("failed to create subscription", "error", err)
		return nil, appErrors.NewInternalError("failed to create subscription")
	}

	uc.logger.Infow("subscription created",
		"id", sub.ID(), "reference", sub.Reference(), "housing_unit_id", sub.HousingUnitID())
	return sub, nil
}

func (uc *CreateSubscriptionUseCase) uniqueReference(ctx context.Context) (string, error) {
	for i := 0; i < referenceAttempts; i++ {
		candidate, err := uc.refGen.NewReference()
		if err != nil {
			return "", err
		}

		exists, err := uc.subRepo.ExistsByReference(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}

		uc.logger.Warnw("reference collision, regenerating", "reference", candidate)
	}
	return "", errors.New("exhausted reference generation attempts")
}
