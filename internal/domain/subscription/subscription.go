package subscription

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	vo "boaz/internal/domain/subscription/valueobjects"
	"boaz/internal/shared/constants"
)

const (
	// DefaultDurationMonths is applied when no rental duration is given.
	DefaultDurationMonths = 12
	// MaxDurationMonths bounds the rental duration against entry mistakes.
	MaxDurationMonths = 60
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Tenant groups the identity fields of the subscribing tenant.
type Tenant struct {
	LastName           string
	FirstName          string
	Email              string
	BirthDate          *time.Time
	BirthCity          string
	BirthCountry       string
	Nationality        string
	DestinationCountry string
	ArrivalDate        *time.Time
}

// Academic groups the school enrolment fields used on attestations.
type Academic struct {
	School           string
	Program          string
	SchoolCountry    string
	SchoolCity       string
	SchoolPostalCode string
	SchoolAddress    string
}

// Subscription is the aggregate root for a tenant's housing placement
// request. Its status advances forward only, through the guarded methods
// below; the paired housing unit flips are owned by the use case layer.
type Subscription struct {
	id               uint
	reference        string
	tenant           Tenant
	academic         Academic
	housingUnitID    uint
	moveInDate       *time.Time
	durationMonths   int
	serviceIDs       []int
	status           vo.SubscriptionStatus
	deliveredAt      *time.Time
	expiresAt        *time.Time
	paymentProofPath *string
	createdByUserID  *uint
	version          int
	createdAt        time.Time
	updatedAt        time.Time
}

// NewSubscriptionParams carries input for creating a subscription. The
// reference must already be generated and verified unique by the caller.
type NewSubscriptionParams struct {
	Reference       string
	Tenant          Tenant
	Academic        Academic
	HousingUnitID   uint
	MoveInDate      *time.Time
	DurationMonths  int
	ServiceIDs      []int
	CreatedByUserID *uint
}

// NewSubscription creates a subscription in the pending-payment status.
func NewSubscription(p NewSubscriptionParams) (*Subscription, error) {
	if p.Reference == "" {
		return nil, fmt.Errorf("reference is required")
	}
	if p.HousingUnitID == 0 {
		return nil, fmt.Errorf("housing unit ID is required")
	}
	tenant, err := validateTenant(p.Tenant)
	if err != nil {
		return nil, err
	}
	academic, err := validateAcademic(p.Academic)
	if err != nil {
		return nil, err
	}

	durationMonths := p.DurationMonths
	if durationMonths == 0 {
		durationMonths = DefaultDurationMonths
	}
	if durationMonths < 1 || durationMonths > MaxDurationMonths {
		return nil, fmt.Errorf("duration must be between 1 and %d months", MaxDurationMonths)
	}

	serviceIDs := p.ServiceIDs
	if len(serviceIDs) == 0 {
		serviceIDs = []int{constants.HousingAttestationServiceID}
	}

	now := time.Now().UTC()
	return &Subscription{
		reference:       p.Reference,
		tenant:          tenant,
		academic:        academic,
		housingUnitID:   p.HousingUnitID,
		moveInDate:      p.MoveInDate,
		durationMonths:  durationMonths,
		serviceIDs:      serviceIDs,
		status:          vo.StatusPendingPayment,
		createdByUserID: p.CreatedByUserID,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructSubscriptionParams carries persisted state.
type ReconstructSubscriptionParams struct {
	ID               uint
	Reference        string
	Tenant           Tenant
	Academic         Academic
	HousingUnitID    uint
	MoveInDate       *time.Time
	DurationMonths   int
	ServiceIDs       []int
	Status           vo.SubscriptionStatus
	DeliveredAt      *time.Time
	ExpiresAt        *time.Time
	PaymentProofPath *string
	CreatedByUserID  *uint
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ReconstructSubscription rebuilds a subscription from persistence.
func ReconstructSubscription(p ReconstructSubscriptionParams) (*Subscription, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if p.Reference == "" {
		return nil, fmt.Errorf("reference is required")
	}
	if p.HousingUnitID == 0 {
		return nil, fmt.Errorf("housing unit ID is required")
	}
	if !vo.ValidStatuses[p.Status] {
		return nil, fmt.Errorf("invalid subscription status: %s", p.Status)
	}

	serviceIDs := p.ServiceIDs
	if serviceIDs == nil {
		serviceIDs = []int{}
	}

	return &Subscription{
		id:               p.ID,
		reference:        p.Reference,
		tenant:           p.Tenant,
		academic:         p.Academic,
		housingUnitID:    p.HousingUnitID,
		moveInDate:       p.MoveInDate,
		durationMonths:   p.DurationMonths,
		serviceIDs:       serviceIDs,
		status:           p.Status,
		deliveredAt:      p.DeliveredAt,
		expiresAt:        p.ExpiresAt,
		paymentProofPath: p.PaymentProofPath,
		createdByUserID:  p.CreatedByUserID,
		version:          p.Version,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
	}, nil
}

func (s *Subscription) ID() uint                      { return s.id }
func (s *Subscription) Reference() string             { return s.reference }
func (s *Subscription) Tenant() Tenant                { return s.tenant }
func (s *Subscription) Academic() Academic            { return s.academic }
func (s *Subscription) HousingUnitID() uint           { return s.housingUnitID }
func (s *Subscription) MoveInDate() *time.Time        { return s.moveInDate }
func (s *Subscription) DurationMonths() int           { return s.durationMonths }
func (s *Subscription) Status() vo.SubscriptionStatus { return s.status }
func (s *Subscription) DeliveredAt() *time.Time       { return s.deliveredAt }
func (s *Subscription) ExpiresAt() *time.Time         { return s.expiresAt }
func (s *Subscription) PaymentProofPath() *string     { return s.paymentProofPath }
func (s *Subscription) CreatedByUserID() *uint        { return s.createdByUserID }
func (s *Subscription) Version() int                  { return s.version }
func (s *Subscription) CreatedAt() time.Time          { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time          { return s.updatedAt }

// ServiceIDs returns a copy of the selected service identifiers.
func (s *Subscription) ServiceIDs() []int {
	ids := make([]int, len(s.serviceIDs))
	copy(ids, s.serviceIDs)
	return ids
}

// RequiresHousing reports whether the housing attestation service is among
// the selected services, which couples delivery and closure to the housing
// unit's occupancy.
func (s *Subscription) RequiresHousing() bool {
	for _, id := range s.serviceIDs {
		if id == constants.HousingAttestationServiceID {
			return true
		}
	}
	return false
}

// SetID sets the ID after the initial insert (persistence layer use only).
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// MarkPaid moves the subscription from pending-payment to pending-delivery,
// recording the payment proof reference when one is supplied.
func (s *Subscription) MarkPaid(paymentProofPath *string) error {
	if s.status != vo.StatusPendingPayment {
		return ErrInvalidTransition(s.status, vo.StatusPendingDelivery)
	}

	s.status = vo.StatusPendingDelivery
	if paymentProofPath != nil && *paymentProofPath != "" {
		s.paymentProofPath = paymentProofPath
	}
	s.touch()
	return nil
}

// MarkDelivered moves the subscription from pending-delivery to delivered,
// stamping the delivery date and computing expiry from the validity window.
// The caller is responsible for the paired housing unit flip.
func (s *Subscription) MarkDelivered(deliveredAt time.Time, validityDays int) error {
	if s.status != vo.StatusPendingDelivery {
		return ErrInvalidTransition(s.status, vo.StatusDelivered)
	}
	if validityDays <= 0 {
		validityDays = constants.DefaultServiceValidityDays
	}

	deliveredAt = deliveredAt.UTC()
	expiresAt := deliveredAt.AddDate(0, 0, validityDays)

	s.status = vo.StatusDelivered
	s.deliveredAt = &deliveredAt
	s.expiresAt = &expiresAt
	s.touch()
	return nil
}

// Close moves a delivered subscription to the terminal closed status.
func (s *Subscription) Close() error {
	if s.status != vo.StatusDelivered {
		return ErrInvalidTransition(s.status, vo.StatusClosed)
	}
	s.status = vo.StatusClosed
	s.touch()
	return nil
}

// IsExpiredAsOf reports whether a delivered subscription's validity window
// ended strictly before asOf.
func (s *Subscription) IsExpiredAsOf(asOf time.Time) bool {
	return s.status == vo.StatusDelivered && s.expiresAt != nil && s.expiresAt.Before(asOf)
}

// UpdateDetailsParams carries a partial update; nil fields are untouched.
type UpdateDetailsParams struct {
	Tenant         *Tenant
	Academic       *Academic
	MoveInDate     *time.Time
	DurationMonths *int
	ServiceIDs     []int
}

// UpdateDetails applies a partial update to the editable fields. Updates
// are refused once the subscription reaches the delivered status.
func (s *Subscription) UpdateDetails(p UpdateDetailsParams) error {
	if !s.status.IsEditable() {
		return fmt.Errorf("%w: status %s", ErrSubscriptionLocked, s.status)
	}

	if p.Tenant != nil {
		tenant, err := validateTenant(*p.Tenant)
		if err != nil {
			return err
		}
		s.tenant = tenant
	}
	if p.Academic != nil {
		academic, err := validateAcademic(*p.Academic)
		if err != nil {
			return err
		}
		s.academic = academic
	}
	if p.MoveInDate != nil {
		s.moveInDate = p.MoveInDate
	}
	if p.DurationMonths != nil {
		if *p.DurationMonths < 1 || *p.DurationMonths > MaxDurationMonths {
			return fmt.Errorf("duration must be between 1 and %d months", MaxDurationMonths)
		}
		s.durationMonths = *p.DurationMonths
	}
	if p.ServiceIDs != nil {
		if len(p.ServiceIDs) == 0 {
			return fmt.Errorf("at least one service must be selected")
		}
		ids := make([]int, len(p.ServiceIDs))
		copy(ids, p.ServiceIDs)
		s.serviceIDs = ids
	}

	s.touch()
	return nil
}

// ChangeHousingUnit repoints the subscription at another unit. The use case
// layer validates the target unit's existence and availability first.
func (s *Subscription) ChangeHousingUnit(unitID uint) error {
	if !s.status.IsEditable() {
		return fmt.Errorf("%w: status %s", ErrSubscriptionLocked, s.status)
	}
	if unitID == 0 {
		return fmt.Errorf("housing unit ID is required")
	}
	s.housingUnitID = unitID
	s.touch()
	return nil
}

// OverrideStatus sets the status without transition checks. This exists only
// for the audited administrative override; every other caller must use the
// guarded transitions.
func (s *Subscription) OverrideStatus(status vo.SubscriptionStatus) error {
	if !vo.ValidStatuses[status] {
		return fmt.Errorf("invalid subscription status: %s", status)
	}
	s.status = status
	s.touch()
	return nil
}

func (s *Subscription) touch() {
	s.updatedAt = time.Now().UTC()
	s.version++
}

func validateTenant(t Tenant) (Tenant, error) {
	t.LastName = strings.TrimSpace(t.LastName)
	t.FirstName = strings.TrimSpace(t.FirstName)
	t.Email = strings.TrimSpace(t.Email)

	if t.LastName == "" {
		return Tenant{}, fmt.Errorf("tenant last name is required")
	}
	if t.FirstName == "" {
		return Tenant{}, fmt.Errorf("tenant first name is required")
	}
	if !emailPattern.MatchString(t.Email) {
		return Tenant{}, fmt.Errorf("invalid tenant email: %q", t.Email)
	}
	return t, nil
}

func validateAcademic(a Academic) (Academic, error) {
	a.School = strings.TrimSpace(a.School)
	a.Program = strings.TrimSpace(a.Program)

	if a.School == "" {
		return Academic{}, fmt.Errorf("school is required")
	}
	if a.Program == "" {
		return Academic{}, fmt.Errorf("program is required")
	}
	return a, nil
}
