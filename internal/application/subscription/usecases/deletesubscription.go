package usecases

import (
	"context"
	"errors"

	"boaz/internal/domain/subscription"
	appErrors "boaz/internal/shared/errors"
	"boaz/internal/shared/logger"
)

// DeleteSubscriptionUseCase permanently removes a subscription. The housing
// unit keeps its current status: releasing an occupied unit is an explicit
// administrative action, not a deletion side effect.
type DeleteSubscriptionUseCase struct {
	subRepo subscription.Repository
	logger  logger.Interface
}

func NewDeleteSubscriptionUseCase(
	subRepo subscription.Repository,
	logger logger.Interface,
) *DeleteSubscriptionUseCase {
	return &DeleteSubscriptionUseCase{
		subRepo: subRepo,
		logger:  logger,
	}
}

func (uc *DeleteSubscriptionUseCase) Execute(ctx context.Context, subID uint) error {
	sub, err := uc.subRepo.GetByID(ctx, subID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "id", subID, "error", err)
		return appErrors.NewInternalError("failed to delete subscription")
	}
	if sub == nil {
		return appErrors.NewNotFoundError("subscription not found")
	}

	if err := uc.subRepo.Delete(ctx, subID); err != nil {
		if errors.Is(err, subscription.ErrSubscriptionNotFound) {
			return appErrors.NewNotFoundError("subscription not found")
		}
		uc.logger.Errorw("failed to delete subscription", "id", subID, "error", err)
		return appErrors.NewInternalError("failed to delete subscription")
	}

	uc.logger.Infow("subscription permanently deleted",
		"id", subID, "reference", sub.Reference())
	return nil
}
