package usecases

import (
	"context"

	"boaz/internal/domain/subscription"
	appErrors "boaz/internal/shared/errors"
	"boaz/internal/shared/logger"
)

type MarkPaidCommand struct {
	ID               uint
	PaymentProofPath *string
}

// MarkPaidUseCase records the tenant's payment and advances the
// subscription to the pending-delivery status. A confirmation email is
// attempted but never blocks the transition.
type MarkPaidUseCase struct {
	subRepo  subscription.Repository
	notifier Notifier
	logger   logger.Interface
}

func NewMarkPaidUseCase(
	subRepo subscription.Repository,
	notifier Notifier,
	logger logger.Interface,
) *MarkPaidUseCase {
	return &MarkPaidUseCase{
		subRepo:  subRepo,
		notifier: notifier,
		logger:   logger,
	}
}

func (uc *MarkPaidUseCase) Execute(ctx context.Context, cmd MarkPaidCommand) (*subscription.Subscription, error) {
	sub, err := uc.subRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "id", cmd.ID, "error", err)
		return nil, appErrors.NewInternalError("failed to record payment")
	}
	if sub == nil {
		return nil, appErrors.NewNotFoundError("subscription not found")
	}

	if err := sub.MarkPaid(cmd.PaymentProofPath); err != nil {
		return nil, mapSubscriptionError(err)
	}

	if err := uc.subRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "id", cmd.ID, "error", err)
		return nil, appErrors.NewInternalError("failed to record payment")
	}

	uc.logger.Infow("payment recorded",
		"id", sub.ID(), "reference", sub.Reference())

	tenant := sub.Tenant()
	if err := uc.notifier.SendPaymentConfirmation(tenant.Email,
		tenant.FirstName+" "+tenant.LastName, sub.Reference()); err != nil {
		uc.logger.Warnw("failed to send payment confirmation email",
			"id", sub.ID(), "email", tenant.Email, "error", err)
	}

	return sub, nil
}
