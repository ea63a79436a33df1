package housing

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	vo "boaz/internal/domain/housing/valueobjects"
)

const (
	// MaxRent is a sanity bound against data-entry mistakes.
	MaxRent = 50000.0
	// MaxCharges is a sanity bound against data-entry mistakes.
	MaxCharges = 10000.0
	// MaxChargesRentRatio caps charges relative to rent.
	MaxChargesRentRatio = 0.8
)

var cityPattern = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s\-']+$`)

// postalPatterns validates postal codes for the supported countries. A code
// is accepted when it matches any pattern; the original data set mixes
// countries so validation is deliberately permissive across formats.
var postalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{5}$`),                           // France, and 5-digit codes generally
	regexp.MustCompile(`^\d{4}$`),                           // Belgium, Switzerland
	regexp.MustCompile(`^[A-Za-z]\d[A-Za-z] \d[A-Za-z]\d$`), // Canada
	regexp.MustCompile(`^\d{5}-\d{4}$`),                     // USA extended
}

var allowedCountries = map[string]bool{
	"france":     true,
	"belgique":   true,
	"suisse":     true,
	"luxembourg": true,
	"canada":     true,
	"usa":        true,
	"etats-unis": true,
	"allemagne":  true,
	"italie":     true,
	"espagne":    true,
}

// HousingUnit is the aggregate root for a rentable dwelling.
type HousingUnit struct {
	id          uint
	title       string
	description string
	address     string
	city        string
	postalCode  string
	country     string
	rent        float64
	charges     float64
	total       float64
	status      vo.UnitStatus
	version     int
	createdAt   time.Time
	updatedAt   time.Time
}

// NewHousingUnitParams carries validated input for creating a housing unit.
type NewHousingUnitParams struct {
	Title       string
	Description string
	Address     string
	City        string
	PostalCode  string
	Country     string
	Rent        float64
	Charges     float64
}

// NewHousingUnit creates a housing unit after validating every field. The
// total amount is derived, never supplied.
func NewHousingUnit(p NewHousingUnitParams) (*HousingUnit, error) {
	title, err := validateTitle(p.Title)
	if err != nil {
		return nil, err
	}
	address, err := validateAddress(p.Address)
	if err != nil {
		return nil, err
	}
	city, err := validateCity(p.City)
	if err != nil {
		return nil, err
	}
	postalCode, err := validatePostalCode(p.PostalCode)
	if err != nil {
		return nil, err
	}
	country, err := validateCountry(p.Country)
	if err != nil {
		return nil, err
	}
	rent, err := validateRent(p.Rent)
	if err != nil {
		return nil, err
	}
	charges, err := validateCharges(p.Charges, rent)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &HousingUnit{
		title:       title,
		description: strings.TrimSpace(p.Description),
		address:     address,
		city:        city,
		postalCode:  postalCode,
		country:     country,
		rent:        rent,
		charges:     charges,
		status:      vo.UnitStatusAvailable,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}
	u.recomputeTotal()

	return u, nil
}

// ReconstructHousingUnitParams carries persisted state.
type ReconstructHousingUnitParams struct {
	ID          uint
	Title       string
	Description string
	Address     string
	City        string
	PostalCode  string
	Country     string
	Rent        float64
	Charges     float64
	Total       float64
	Status      vo.UnitStatus
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ReconstructHousingUnit rebuilds a housing unit from persistence without
// re-running input validation, but still refusing corrupted state.
func ReconstructHousingUnit(p ReconstructHousingUnitParams) (*HousingUnit, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("housing unit ID cannot be zero")
	}
	if !vo.ValidUnitStatuses[p.Status] {
		return nil, fmt.Errorf("invalid housing unit status: %s", p.Status)
	}
	if round2(p.Total) != round2(p.Rent+p.Charges) {
		return nil, fmt.Errorf("inconsistent amounts: total %.2f != rent %.2f + charges %.2f", p.Total, p.Rent, p.Charges)
	}

	return &HousingUnit{
		id:          p.ID,
		title:       p.Title,
		description: p.Description,
		address:     p.Address,
		city:        p.City,
		postalCode:  p.PostalCode,
		country:     p.Country,
		rent:        p.Rent,
		charges:     p.Charges,
		total:       p.Total,
		status:      p.Status,
		version:     p.Version,
		createdAt:   p.CreatedAt,
		updatedAt:   p.UpdatedAt,
	}, nil
}

func (u *HousingUnit) ID() uint              { return u.id }
func (u *HousingUnit) Title() string         { return u.title }
func (u *HousingUnit) Description() string   { return u.description }
func (u *HousingUnit) Address() string       { return u.address }
func (u *HousingUnit) City() string          { return u.city }
func (u *HousingUnit) PostalCode() string    { return u.postalCode }
func (u *HousingUnit) Country() string       { return u.country }
func (u *HousingUnit) Rent() float64         { return u.rent }
func (u *HousingUnit) Charges() float64      { return u.charges }
func (u *HousingUnit) Total() float64        { return u.total }
func (u *HousingUnit) Status() vo.UnitStatus { return u.status }
func (u *HousingUnit) Version() int          { return u.version }
func (u *HousingUnit) CreatedAt() time.Time  { return u.createdAt }
func (u *HousingUnit) UpdatedAt() time.Time  { return u.updatedAt }

// SetID sets the ID after the initial insert (persistence layer use only).
func (u *HousingUnit) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("housing unit ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("housing unit ID cannot be zero")
	}
	u.id = id
	return nil
}

// UpdateTitle replaces the title after validation.
func (u *HousingUnit) UpdateTitle(title string) error {
	validated, err := validateTitle(title)
	if err != nil {
		return err
	}
	u.title = validated
	u.touch()
	return nil
}

// UpdateDescription replaces the free-form description.
func (u *HousingUnit) UpdateDescription(description string) {
	u.description = strings.TrimSpace(description)
	u.touch()
}

// UpdateLocation replaces address fields after validation.
func (u *HousingUnit) UpdateLocation(address, city, postalCode, country string) error {
	validatedAddress, err := validateAddress(address)
	if err != nil {
		return err
	}
	validatedCity, err := validateCity(city)
	if err != nil {
		return err
	}
	validatedPostal, err := validatePostalCode(postalCode)
	if err != nil {
		return err
	}
	validatedCountry, err := validateCountry(country)
	if err != nil {
		return err
	}

	u.address = validatedAddress
	u.city = validatedCity
	u.postalCode = validatedPostal
	u.country = validatedCountry
	u.touch()
	return nil
}

// UpdateAmounts replaces rent and charges and recomputes the total. The
// total always equals rent + charges after this call.
func (u *HousingUnit) UpdateAmounts(rent, charges float64) error {
	validatedRent, err := validateRent(rent)
	if err != nil {
		return err
	}
	validatedCharges, err := validateCharges(charges, validatedRent)
	if err != nil {
		return err
	}

	u.rent = validatedRent
	u.charges = validatedCharges
	u.recomputeTotal()
	u.touch()
	return nil
}

// SetStatus moves the unit to any status. Transitions are unrestricted for
// administrative changes; subscription-driven flips use the repository's
// conditional update instead.
func (u *HousingUnit) SetStatus(status vo.UnitStatus) error {
	if !vo.ValidUnitStatuses[status] {
		return fmt.Errorf("%w: %s", ErrInvalidUnitStatus, status)
	}
	if u.status == status {
		return nil
	}
	u.status = status
	u.touch()
	return nil
}

func (u *HousingUnit) recomputeTotal() {
	u.total = round2(u.rent + u.charges)
}

func (u *HousingUnit) touch() {
	u.updatedAt = time.Now().UTC()
	u.version++
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", ErrInvalidField)
	}
	if len([]rune(title)) < 3 {
		return "", fmt.Errorf("%w: title must be at least 3 characters", ErrInvalidField)
	}
	return title, nil
}

func validateAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", fmt.Errorf("%w: address is required", ErrInvalidField)
	}
	if len([]rune(address)) < 5 {
		return "", fmt.Errorf("%w: address must be at least 5 characters", ErrInvalidField)
	}
	return address, nil
}

func validateCity(city string) (string, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return "", fmt.Errorf("%w: city is required", ErrInvalidField)
	}
	if len([]rune(city)) < 2 {
		return "", fmt.Errorf("%w: city must be at least 2 characters", ErrInvalidField)
	}
	if !cityPattern.MatchString(city) {
		return "", fmt.Errorf("%w: city may only contain letters, spaces, hyphens and apostrophes", ErrInvalidField)
	}
	return city, nil
}

func validatePostalCode(postalCode string) (string, error) {
	postalCode = strings.ToUpper(strings.TrimSpace(postalCode))
	if postalCode == "" {
		return "", fmt.Errorf("%w: postal code is required", ErrInvalidField)
	}
	for _, pattern := range postalPatterns {
		if pattern.MatchString(postalCode) {
			return postalCode, nil
		}
	}
	return "", fmt.Errorf("%w: invalid postal code format", ErrInvalidField)
}

func validateCountry(country string) (string, error) {
	country = strings.TrimSpace(country)
	if country == "" {
		return "France", nil
	}
	if !allowedCountries[strings.ToLower(country)] {
		return "", fmt.Errorf("%w: unsupported country %q", ErrInvalidField, country)
	}
	return country, nil
}

func validateRent(rent float64) (float64, error) {
	if rent <= 0 {
		return 0, fmt.Errorf("%w: rent must be greater than 0", ErrInvalidField)
	}
	if rent > MaxRent {
		return 0, fmt.Errorf("%w: rent exceeds the maximum of %.0f", ErrInvalidField, MaxRent)
	}
	return round2(rent), nil
}

func validateCharges(charges, rent float64) (float64, error) {
	if charges < 0 {
		return 0, fmt.Errorf("%w: charges cannot be negative", ErrInvalidField)
	}
	if charges > MaxCharges {
		return 0, fmt.Errorf("%w: charges exceed the maximum of %.0f", ErrInvalidField, MaxCharges)
	}
	if charges > rent*MaxChargesRentRatio {
		return 0, fmt.Errorf("%w: charges cannot exceed %.0f%% of the rent", ErrInvalidField, MaxChargesRentRatio*100)
	}
	return round2(charges), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
