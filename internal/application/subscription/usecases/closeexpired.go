package usecases

import (
	"context"

	"boaz/internal/domain/housing"
	housingVO "boaz/internal/domain/housing/valueobjects"
	"boaz/internal/domain/subscription"
	"boaz/internal/shared/biztime"
	"boaz/internal/shared/db"
	"boaz/internal/shared/logger"
)

type CloseExpiredResult struct {
	Closed     int
	FreedUnits int
	Failed     int
}

// CloseExpiredSubscriptionsUseCase closes delivered subscriptions whose
// validity window has elapsed and releases their housing units. Each
// subscription is processed in its own transaction, so one failure does
// not hold back the rest, and re-running the sweep is idempotent: already
// closed subscriptions no longer match the query.
type CloseExpiredSubscriptionsUseCase struct {
	subRepo  subscription.Repository
	unitRepo housing.Repository
	txMgr    db.Transactor
	logger   logger.Interface
}

func NewCloseExpiredSubscriptionsUseCase(
	subRepo subscription.Repository,
	unitRepo housing.Repository,
	txMgr db.Transactor,
	logger logger.Interface,
) *CloseExpiredSubscriptionsUseCase {
	return &CloseExpiredSubscriptionsUseCase{
		subRepo:  subRepo,
		unitRepo: unitRepo,
		txMgr:    txMgr,
		logger:   logger,
	}
}

func (uc *CloseExpiredSubscriptionsUseCase) Execute(ctx context.Context) (*CloseExpiredResult, error) {
	now := biztime.NowUTC()

	expired, err := uc.subRepo.FindExpiredDelivered(ctx, now)
	if err != nil {
		uc.logger.Errorw("failed to find expired subscriptions", "error", err)
		return nil, err
	}

	result := &CloseExpiredResult{}
	for _, sub := range expired {
		freed, err := uc.closeOne(ctx, sub)
		if err != nil {
			result.Failed++
			uc.logger.Errorw("failed to close expired subscription",
				"id", sub.ID(), "reference", sub.Reference(), "error", err)
			continue
		}
		result.Closed++
		if freed {
			result.FreedUnits++
		}
	}

	return result, nil
}

func (uc *CloseExpiredSubscriptionsUseCase) closeOne(ctx context.Context, sub *subscription.Subscription) (bool, error) {
	var freed bool

	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := sub.Close(); err != nil {
			return err
		}
		if err := uc.subRepo.Update(txCtx, sub); err != nil {
			return err
		}

		if sub.RequiresHousing() {
			var err error
			freed, err = uc.unitRepo.UpdateStatusIf(txCtx, sub.HousingUnitID(),
				housingVO.UnitStatusOccupied, housingVO.UnitStatusAvailable)
			if err != nil {
				return err
			}
			if !freed {
				// The unit was moved to maintenance or already freed by an
				// administrative change; nothing to release.
				uc.logger.Debugw("housing unit not in occupied status at closure",
					"subscription_id", sub.ID(), "housing_unit_id", sub.HousingUnitID())
			}
		}

		uc.logger.Infow("expired subscription closed",
			"id", sub.ID(), "reference", sub.Reference(), "expired_at", sub.ExpiresAt())
		return nil
	})
	if err != nil {
		return false, err
	}

	return freed, nil
}
