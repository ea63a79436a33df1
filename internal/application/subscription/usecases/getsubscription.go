package usecases

import (
	"context"

	"boaz/internal/domain/subscription"
	appErrors "boaz/internal/shared/errors"
	"boaz/internal/shared/id"
	"boaz/internal/shared/logger"
)

type GetSubscriptionUseCase struct {
	subRepo subscription.Repository
	logger  logger.Interface
}

func NewGetSubscriptionUseCase(
	subRepo subscription.Repository,
	logger logger.Interface,
) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		subRepo: subRepo,
		logger:  logger,
	}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, subID uint) (*subscription.Subscription, error) {
	sub, err := uc.subRepo.GetByID(ctx, subID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "id", subID, "error", err)
		return nil, appErrors.NewInternalError("failed to get subscription")
	}
	if sub == nil {
		return nil, appErrors.NewNotFoundError("subscription not found")
	}

	return sub, nil
}

// ExecuteByReference looks a subscription up by its public reference, the
// identifier printed on attestations.
func (uc *GetSubscriptionUseCase) ExecuteByReference(ctx context.Context, reference string) (*subscription.Subscription, error) {
	reference = id.NormalizeReference(reference)
	if !id.ValidReference(reference) {
		return nil, appErrors.NewValidationError("invalid reference format")
	}

	sub, err := uc.subRepo.GetByReference(ctx, reference)
	if err != nil {
		uc.logger.Errorw("failed to get subscription by reference", "reference", reference, "error", err)
		return nil, appErrors.NewInternalError("failed to get subscription")
	}
	if sub == nil {
		return nil, appErrors.NewNotFoundError("subscription not found")
	}

	return sub, nil
}
