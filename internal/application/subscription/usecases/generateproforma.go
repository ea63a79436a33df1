package usecases

import (
	"context"

	"boaz/internal/domain/catalog"
	"boaz/internal/domain/subscription"
	appErrors "boaz/internal/shared/errors"
	"boaz/internal/shared/logger"
)

// GenerateProformaUseCase renders the proforma invoice for a subscription,
// pricing the selected services from the catalog. Services missing from the
// catalog are skipped with a warning rather than failing the document.
type GenerateProformaUseCase struct {
	subRepo subscription.Repository
	catalog catalog.Catalog
	docs    DocumentGenerator
	logger  logger.Interface
}

func NewGenerateProformaUseCase(
	subRepo subscription.Repository,
	svcCatalog catalog.Catalog,
	docs DocumentGenerator,
	logger logger.Interface,
) *GenerateProformaUseCase {
	return &GenerateProformaUseCase{
		subRepo: subRepo,
		catalog: svcCatalog,
		docs:    docs,
		logger:  logger,
	}
}

func (uc *GenerateProformaUseCase) Execute(ctx context.Context, subID uint) (string, error) {
	sub, err := uc.subRepo.GetByID(ctx, subID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "id", subID, "error", err)
		return "", appErrors.NewInternalError("failed to generate proforma")
	}
	if sub == nil {
		return "", appErrors.NewNotFoundError("subscription not found")
	}

	services := make([]catalog.Service, 0, len(sub.ServiceIDs()))
	for _, serviceID := range sub.ServiceIDs() {
		svc, err := uc.catalog.GetService(serviceID)
		if err != nil {
			uc.logger.Warnw("service missing from catalog, omitted from proforma",
				"subscription_id", subID, "service_id", serviceID)
			continue
		}
		services = append(services, *svc)
	}
	if len(services) == 0 {
		return "", appErrors.NewValidationError("no priced services available for this subscription")
	}

	org, err := uc.catalog.Organisation()
	if err != nil {
		uc.logger.Warnw("organisation details unavailable for proforma", "subscription_id", subID)
		org = nil
	}

	path, err := uc.docs.GenerateProforma(sub, services, org)
	if err != nil {
		uc.logger.Errorw("failed to generate proforma", "subscription_id", subID, "error", err)
		return "", appErrors.NewInternalError("failed to generate proforma")
	}

	return path, nil
}
