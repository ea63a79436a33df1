package usecases

import (
	"context"

	"boaz/internal/domain/catalog"
	"boaz/internal/domain/housing"
	housingVO "boaz/internal/domain/housing/valueobjects"
	"boaz/internal/domain/subscription"
	subscriptionVO "boaz/internal/domain/subscription/valueobjects"
	"boaz/internal/shared/biztime"
	"boaz/internal/shared/constants"
	"boaz/internal/shared/db"
	appErrors "boaz/internal/shared/errors"
	"boaz/internal/shared/logger"
)

// MarkDeliveredUseCase delivers a paid subscription: it stamps the delivery
// date, computes the expiry from the services catalog, and occupies the
// housing unit. The status change and the unit flip commit atomically; the
// unit flip is a conditional update so two concurrent deliveries against
// the same unit cannot both succeed.
type MarkDeliveredUseCase struct {
	subRepo  subscription.Repository
	unitRepo housing.Repository
	catalog  catalog.Catalog
	txMgr    db.Transactor
	docs     DocumentGenerator
	notifier Notifier
	logger   logger.Interface
}

func NewMarkDeliveredUseCase(
	subRepo subscription.Repository,
	unitRepo housing.Repository,
	svcCatalog catalog.Catalog,
	txMgr db.Transactor,
	docs DocumentGenerator,
	notifier Notifier,
	logger logger.Interface,
) *MarkDeliveredUseCase {
	return &MarkDeliveredUseCase{
		subRepo:  subRepo,
		unitRepo: unitRepo,
		catalog:  svcCatalog,
		txMgr:    txMgr,
		docs:     docs,
		notifier: notifier,
		logger:   logger,
	}
}

func (uc *MarkDeliveredUseCase) Execute(ctx context.Context, subID uint) (*subscription.Subscription, error) {
	var sub *subscription.Subscription

	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		sub, err = uc.subRepo.GetByID(txCtx, subID)
		if err != nil {
			return err
		}
		if sub == nil {
			return appErrors.NewNotFoundError("subscription not found")
		}

		// Lifecycle order first: a subscription that cannot move to livre
		// must fail with a transition error before any unit side effect.
		if !sub.Status().CanTransitionTo(subscriptionVO.StatusDelivered) {
			return mapSubscriptionError(subscription.ErrInvalidTransition(sub.Status(), subscriptionVO.StatusDelivered))
		}

		if sub.RequiresHousing() {
			occupied, err := uc.unitRepo.UpdateStatusIf(txCtx, sub.HousingUnitID(),
				housingVO.UnitStatusAvailable, housingVO.UnitStatusOccupied)
			if err != nil {
				return err
			}
			if !occupied {
				return appErrors.NewUnavailableError("housing unit is not available")
			}
		} else {
			unit, err := uc.unitRepo.GetByID(txCtx, sub.HousingUnitID())
			if err != nil {
				return err
			}
			if unit == nil || unit.Status() != housingVO.UnitStatusAvailable {
				return appErrors.NewUnavailableError("housing unit is not available")
			}
		}

		deliveredAt := biztime.NowUTC()
		if err := sub.MarkDelivered(deliveredAt, uc.validityDays(sub.ServiceIDs())); err != nil {
			return mapSubscriptionError(err)
		}

		return uc.subRepo.Update(txCtx, sub)
	})
	if err != nil {
		if _, ok := appErrors.AsAppError(err); ok {
			return nil, err
		}
		uc.logger.Errorw("failed to deliver subscription", "id", subID, "error", err)
		return nil, appErrors.NewInternalError("failed to deliver subscription")
	}

	uc.logger.Infow("subscription delivered",
		"id", sub.ID(), "reference", sub.Reference(), "expires_at", sub.ExpiresAt())

	uc.sendDocuments(sub)

	return sub, nil
}

// validityDays returns the longest validity window among the selected
// services. Catalog misses fall back to the default window so delivery
// never fails on catalog problems.
func (uc *MarkDeliveredUseCase) validityDays(serviceIDs []int) int {
	days := 0
	for _, serviceID := range serviceIDs {
		svc, err := uc.catalog.GetService(serviceID)
		if err != nil {
			uc.logger.Warnw("service not found in catalog, using default validity",
				"service_id", serviceID, "error", err)
			if constants.DefaultServiceValidityDays > days {
				days = constants.DefaultServiceValidityDays
			}
			continue
		}
		if svc.ValidityDays > days {
			days = svc.ValidityDays
		}
	}
	if days <= 0 {
		days = constants.DefaultServiceValidityDays
	}
	return days
}

// sendDocuments generates the attestation and emails it. Both steps are
// fail-soft: the delivery already committed.
func (uc *MarkDeliveredUseCase) sendDocuments(sub *subscription.Subscription) {
	if !sub.RequiresHousing() {
		return
	}

	unit, err := uc.unitRepo.GetByID(context.Background(), sub.HousingUnitID())
	if err != nil || unit == nil {
		uc.logger.Warnw("housing unit unavailable for attestation",
			"subscription_id", sub.ID(), "housing_unit_id", sub.HousingUnitID(), "error", err)
		return
	}

	org, err := uc.catalog.Organisation()
	if err != nil {
		uc.logger.Warnw("organisation details unavailable for attestation",
			"subscription_id", sub.ID(), "error", err)
		org = nil
	}

	path, err := uc.docs.GenerateAttestation(sub, unit, org)
	if err != nil {
		uc.logger.Warnw("failed to generate attestation",
			"subscription_id", sub.ID(), "error", err)
		return
	}

	tenant := sub.Tenant()
	if err := uc.notifier.SendAttestation(tenant.Email,
		tenant.FirstName+" "+tenant.LastName, sub.Reference(), path); err != nil {
		uc.logger.Warnw("failed to email attestation",
			"subscription_id", sub.ID(), "email", tenant.Email, "error", err)
	}
}
