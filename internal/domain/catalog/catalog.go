// Package catalog defines the services catalog contract: the mapping from
// a sellable service to its price and validity window, plus the organisation
// identity printed on generated documents.
package catalog

import "errors"

// Service describes one sellable service.
type Service struct {
	ID           int     `json:"id"`
	Slug         string  `json:"slug"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	ValidityDays int     `json:"validity_days"`
	Active       bool    `json:"active"`
}

// Organisation describes the issuing organisation shown on attestations
// and proforma invoices.
type Organisation struct {
	Name           string `json:"name"`
	LegalForm      string `json:"legal_form"`
	Address        string `json:"address"`
	City           string `json:"city"`
	PostalCode     string `json:"postal_code"`
	Country        string `json:"country"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	RegistrationNo string `json:"registration_no"`
	Representative string `json:"representative"`
}

var (
	ErrServiceNotFound     = errors.New("service not found in catalog")
	ErrOrganisationMissing = errors.New("organisation details not available")
)

// Catalog is the read-only services catalog contract. Lookups used for
// expiry computation are fail-soft at the call site: callers fall back to a
// default validity instead of failing the operation.
type Catalog interface {
	ListServices(activeOnly bool) ([]Service, error)
	GetService(id int) (*Service, error)
	GetServiceBySlug(slug string) (*Service, error)
	Organisation() (*Organisation, error)
}
