package usecases

import (
	"context"

	"boaz/internal/domain/subscription"
	vo "boaz/internal/domain/subscription/valueobjects"
	appErrors "boaz/internal/shared/errors"
	"boaz/internal/shared/logger"
)

type ListSubscriptionsQuery struct {
	Status        string
	HousingUnitID uint
	Page          int
	PageSize      int
}

type ListSubscriptionsResult struct {
	Subscriptions []*subscription.Subscription
	Total         int64
}

type ListSubscriptionsUseCase struct {
	subRepo subscription.Repository
	logger  logger.Interface
}

func NewListSubscriptionsUseCase(
	subRepo subscription.Repository,
	logger logger.Interface,
) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{
		subRepo: subRepo,
		logger:  logger,
	}
}

func (uc *ListSubscriptionsUseCase) Execute(ctx context.Context, query ListSubscriptionsQuery) (*ListSubscriptionsResult, error) {
	filter := subscription.ListFilter{
		HousingUnitID: query.HousingUnitID,
		Page:          query.Page,
		PageSize:      query.PageSize,
	}

	if query.Status != "" {
		status, ok := vo.ParseStatus(query.Status)
		if !ok {
			return nil, appErrors.NewValidationError("unknown subscription status: " + query.Status)
		}
		filter.Status = &status
	}

	subs, total, err := uc.subRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list subscriptions", "error", err)
		return nil, appErrors.NewInternalError("failed to list subscriptions")
	}

	return &ListSubscriptionsResult{Subscriptions: subs, Total: total}, nil
}
