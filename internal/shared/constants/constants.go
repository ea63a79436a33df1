package constants

// Table names.
const (
	TableHousingUnits  = "housing_units"
	TableSubscriptions = "subscriptions"
	TableUsers         = "users"
)

// Pagination defaults.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// HousingAttestationServiceID is the catalog identifier of the housing
// attestation service. Selecting it couples a subscription to its housing
// unit's occupancy: delivery occupies the unit, closure frees it.
const HousingAttestationServiceID = 1

// DefaultServiceValidityDays is the fail-soft validity applied when the
// services catalog is unreachable or does not know a service.
const DefaultServiceValidityDays = 365

// Gin context keys set by the authentication middleware.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserRole  = "user_role"
)
