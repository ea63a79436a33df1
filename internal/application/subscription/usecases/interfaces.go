package usecases

import (
	"boaz/internal/domain/catalog"
	"boaz/internal/domain/housing"
	"boaz/internal/domain/subscription"
)

// ReferenceGenerator produces candidate subscription references. The create
// use case retries until the candidate is unique.
type ReferenceGenerator interface {
	NewReference() (string, error)
}

// ReferenceGeneratorFunc adapts a plain function to ReferenceGenerator.
type ReferenceGeneratorFunc func() (string, error)

func (f ReferenceGeneratorFunc) NewReference() (string, error) { return f() }

// DocumentGenerator renders the PDFs delivered with a subscription.
type DocumentGenerator interface {
	GenerateAttestation(sub *subscription.Subscription, unit *housing.HousingUnit, org *catalog.Organisation) (string, error)
	GenerateProforma(sub *subscription.Subscription, services []catalog.Service, org *catalog.Organisation) (string, error)
}

// Notifier sends lifecycle emails to tenants. Delivery failures are logged
// and never fail the operation that triggered them.
type Notifier interface {
	SendAttestation(to, tenantName, reference string, attachmentPath string) error
	SendPaymentConfirmation(to, tenantName, reference string) error
}
