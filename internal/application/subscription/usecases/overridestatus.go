package usecases

import (
	"context"

	"boaz/internal/domain/housing"
	housingVO "boaz/internal/domain/housing/valueobjects"
	"boaz/internal/domain/subscription"
	vo "boaz/internal/domain/subscription/valueobjects"
	"boaz/internal/shared/db"
	appErrors "boaz/internal/shared/errors"
	"boaz/internal/shared/logger"
)

type OverrideStatusCommand struct {
	ID         uint
	Status     string
	Reason     string
	ActorID    uint
	ActorEmail string
}

// OverrideStatusUseCase force-sets a subscription status without transition
// checks. It exists for administrative repair only; every call is logged
// with the acting user and the stated reason. Moving out of or into the
// delivered status keeps the housing unit occupancy consistent.
type OverrideStatusUseCase struct {
	subRepo  subscription.Repository
	unitRepo housing.Repository
	txMgr    db.Transactor
	logger   logger.Interface
}

func NewOverrideStatusUseCase(
	subRepo subscription.Repository,
	unitRepo housing.Repository,
	txMgr db.Transactor,
	logger logger.Interface,
) *OverrideStatusUseCase {
	return &OverrideStatusUseCase{
		subRepo:  subRepo,
		unitRepo: unitRepo,
		txMgr:    txMgr,
		logger:   logger,
	}
}

func (uc *OverrideStatusUseCase) Execute(ctx context.Context, cmd OverrideStatusCommand) (*subscription.Subscription, error) {
	target, ok := vo.ParseStatus(cmd.Status)
	if !ok {
		return nil, appErrors.NewValidationError("unknown subscription status: " + cmd.Status)
	}
	if cmd.Reason == "" {
		return nil, appErrors.NewValidationError("a reason is required for a status override")
	}

	var sub *subscription.Subscription

	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		sub, err = uc.subRepo.GetByID(txCtx, cmd.ID)
		if err != nil {
			return err
		}
		if sub == nil {
			return appErrors.NewNotFoundError("subscription not found")
		}

		previous := sub.Status()
		if previous == target {
			return nil
		}

		if err := sub.OverrideStatus(target); err != nil {
			return appErrors.NewValidationError(err.Error())
		}
		if err := uc.subRepo.Update(txCtx, sub); err != nil {
			return err
		}

		if sub.RequiresHousing() {
			if err := uc.reconcileUnit(txCtx, sub, previous, target); err != nil {
				return err
			}
		}

		uc.logger.Warnw("subscription status overridden",
			"id", sub.ID(),
			"reference", sub.Reference(),
			"from", previous,
			"to", target,
			"reason", cmd.Reason,
			"actor_id", cmd.ActorID,
			"actor_email", cmd.ActorEmail)
		return nil
	})
	if err != nil {
		if _, ok := appErrors.AsAppError(err); ok {
			return nil, err
		}
		uc.logger.Errorw("failed to override subscription status", "id", cmd.ID, "error", err)
		return nil, appErrors.NewInternalError("failed to override subscription status")
	}

	return sub, nil
}

// reconcileUnit keeps the housing unit consistent with a forced status
// change: leaving delivered frees the unit, entering delivered occupies it.
func (uc *OverrideStatusUseCase) reconcileUnit(ctx context.Context, sub *subscription.Subscription, previous, target vo.SubscriptionStatus) error {
	wasDelivered := previous == vo.StatusDelivered
	isDelivered := target == vo.StatusDelivered

	switch {
	case wasDelivered && !isDelivered:
		_, err := uc.unitRepo.UpdateStatusIf(ctx, sub.HousingUnitID(),
			housingVO.UnitStatusOccupied, housingVO.UnitStatusAvailable)
		return err
	case !wasDelivered && isDelivered:
		occupied, err := uc.unitRepo.UpdateStatusIf(ctx, sub.HousingUnitID(),
			housingVO.UnitStatusAvailable, housingVO.UnitStatusOccupied)
		if err != nil {
			return err
		}
		if !occupied {
			return appErrors.NewUnavailableError("housing unit is not available")
		}
	}
	return nil
}
