package housing

import (
	"testing"
	"time"

	vo "boaz/internal/domain/housing/valueobjects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func validParams() NewHousingUnitParams {
	return NewHousingUnitParams{
		Title:       "Studio meublé centre-ville",
		Description: "Studio de 20m2 proche des transports",
		Address:     "12 rue des Lilas",
		City:        "Lyon",
		PostalCode:  "69003",
		Country:     "France",
		Rent:        450,
		Charges:     50,
	}
}

func newValidUnit(t *testing.T) *HousingUnit {
	t.Helper()
	unit, err := NewHousingUnit(validParams())
	require.NoError(t, err)
	require.NotNil(t, unit)
	return unit
}

func reconstructParams() ReconstructHousingUnitParams {
	now := time.Now().UTC()
	return ReconstructHousingUnitParams{
		ID:         7,
		Title:      "Studio meublé",
		Address:    "12 rue des Lilas",
		City:       "Lyon",
		PostalCode: "69003",
		Country:    "France",
		Rent:       450,
		Charges:    50,
		Total:      500,
		Status:     vo.UnitStatusAvailable,
		Version:    3,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// =====================================================================
// TestNewHousingUnit_*
// =====================================================================

func TestNewHousingUnit_ValidInput(t *testing.T) {
	unit := newValidUnit(t)

	assert.Equal(t, "Studio meublé centre-ville", unit.Title())
	assert.Equal(t, vo.UnitStatusAvailable, unit.Status())
	assert.Equal(t, 450.0, unit.Rent())
	assert.Equal(t, 50.0, unit.Charges())
	assert.Equal(t, 500.0, unit.Total(), "total must equal rent plus charges")
	assert.Equal(t, 1, unit.Version())
	assert.False(t, unit.CreatedAt().IsZero())
}

func TestNewHousingUnit_TotalAlwaysDerived(t *testing.T) {
	cases := []struct {
		name    string
		rent    float64
		charges float64
		want    float64
	}{
		{"round amounts", 800, 120, 920},
		{"decimal amounts", 433.33, 66.67, 500.00},
		{"zero charges", 600, 0, 600},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validParams()
			p.Rent = tc.rent
			p.Charges = tc.charges
			unit, err := NewHousingUnit(p)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, unit.Total(), 0.001)
		})
	}
}

func TestNewHousingUnit_FieldValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*NewHousingUnitParams)
	}{
		{"title too short", func(p *NewHousingUnitParams) { p.Title = "ab" }},
		{"empty title", func(p *NewHousingUnitParams) { p.Title = "   " }},
		{"address too short", func(p *NewHousingUnitParams) { p.Address = "1 r" }},
		{"city with digits", func(p *NewHousingUnitParams) { p.City = "Lyon3" }},
		{"empty city", func(p *NewHousingUnitParams) { p.City = "  " }},
		{"country not allowed", func(p *NewHousingUnitParams) { p.Country = "Japon" }},
		{"postal code garbage", func(p *NewHousingUnitParams) { p.PostalCode = "abc" }},
		{"zero rent", func(p *NewHousingUnitParams) { p.Rent = 0 }},
		{"negative rent", func(p *NewHousingUnitParams) { p.Rent = -10 }},
		{"rent above ceiling", func(p *NewHousingUnitParams) { p.Rent = 50001 }},
		{"negative charges", func(p *NewHousingUnitParams) { p.Charges = -1 }},
		{"charges above ceiling", func(p *NewHousingUnitParams) { p.Rent = 50000; p.Charges = 10001 }},
		{"charges above rent ratio", func(p *NewHousingUnitParams) { p.Rent = 100; p.Charges = 90 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validParams()
			tc.mutate(&p)
			unit, err := NewHousingUnit(p)
			require.Error(t, err)
			assert.Nil(t, unit)
			assert.ErrorIs(t, err, ErrInvalidField)
		})
	}
}

func TestNewHousingUnit_CityAcceptsAccentsAndHyphens(t *testing.T) {
	for _, city := range []string{"Saint-Étienne", "Aix-en-Provence", "L'Haÿ-les-Roses", "Genève"} {
		p := validParams()
		p.City = city
		_, err := NewHousingUnit(p)
		assert.NoError(t, err, "city %q should be accepted", city)
	}
}

func TestNewHousingUnit_PostalCodeFormats(t *testing.T) {
	cases := []struct {
		name    string
		country string
		postal  string
		wantErr bool
	}{
		{"france five digits", "France", "75011", false},
		{"belgique four digits", "Belgique", "1000", false},
		{"suisse four digits", "Suisse", "8001", false},
		{"canada format", "Canada", "H2X 1Y4", false},
		{"canada lowercase normalized", "Canada", "h2x 1y4", false},
		{"usa zip plus four", "Etats-Unis", "10001-1234", false},
		{"too short", "France", "750", true},
		{"letters only", "France", "PARIS", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validParams()
			p.Country = tc.country
			p.PostalCode = tc.postal
			_, err := NewHousingUnit(p)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidField)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewHousingUnit_EmptyCountryDefaultsToFrance(t *testing.T) {
	p := validParams()
	p.Country = ""
	unit, err := NewHousingUnit(p)
	require.NoError(t, err)
	assert.Equal(t, "France", unit.Country())
}

// =====================================================================
// TestHousingUnit_Update*
// =====================================================================

func TestHousingUnit_UpdateAmountsRecomputesTotal(t *testing.T) {
	unit := newValidUnit(t)

	require.NoError(t, unit.UpdateAmounts(700, 100))

	assert.Equal(t, 700.0, unit.Rent())
	assert.Equal(t, 100.0, unit.Charges())
	assert.Equal(t, 800.0, unit.Total())
}

func TestHousingUnit_UpdateAmountsRejectsInvalid(t *testing.T) {
	unit := newValidUnit(t)
	before := unit.Total()

	err := unit.UpdateAmounts(0, 50)

	require.ErrorIs(t, err, ErrInvalidField)
	assert.Equal(t, before, unit.Total(), "total must be unchanged on rejected update")
}

func TestHousingUnit_UpdateTitleBumpsVersion(t *testing.T) {
	unit := newValidUnit(t)
	v := unit.Version()

	require.NoError(t, unit.UpdateTitle("Grand studio rénové"))

	assert.Equal(t, v+1, unit.Version())
	assert.Equal(t, "Grand studio rénové", unit.Title())
}

func TestHousingUnit_UpdateLocation(t *testing.T) {
	unit := newValidUnit(t)

	require.NoError(t, unit.UpdateLocation("5 avenue Foch", "Paris", "75016", "France"))
	assert.Equal(t, "Paris", unit.City())

	err := unit.UpdateLocation("5 avenue Foch", "Paris", "75016", "Japon")
	assert.ErrorIs(t, err, ErrInvalidField)
	assert.Equal(t, "France", unit.Country(), "country must be unchanged on rejected update")
}

// =====================================================================
// TestHousingUnit_Status / Reconstruct
// =====================================================================

func TestHousingUnit_SetStatus(t *testing.T) {
	unit := newValidUnit(t)

	require.NoError(t, unit.SetStatus(vo.UnitStatusMaintenance))
	assert.Equal(t, vo.UnitStatusMaintenance, unit.Status())

	require.NoError(t, unit.SetStatus(vo.UnitStatusAvailable))
	assert.Equal(t, vo.UnitStatusAvailable, unit.Status())

	err := unit.SetStatus(vo.UnitStatus("demolished"))
	assert.ErrorIs(t, err, ErrInvalidUnitStatus)
}

func TestHousingUnit_SetStatusSameStatusNoVersionBump(t *testing.T) {
	unit := newValidUnit(t)
	v := unit.Version()

	require.NoError(t, unit.SetStatus(vo.UnitStatusAvailable))

	assert.Equal(t, v, unit.Version())
}

func TestReconstructHousingUnit_Valid(t *testing.T) {
	p := reconstructParams()
	p.Status = vo.UnitStatusOccupied

	unit, err := ReconstructHousingUnit(p)

	require.NoError(t, err)
	assert.Equal(t, uint(7), unit.ID())
	assert.Equal(t, vo.UnitStatusOccupied, unit.Status())
	assert.Equal(t, 3, unit.Version())
}

func TestReconstructHousingUnit_RejectsCorruptedState(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ReconstructHousingUnitParams)
	}{
		{"zero id", func(p *ReconstructHousingUnitParams) { p.ID = 0 }},
		{"unknown status", func(p *ReconstructHousingUnitParams) { p.Status = "demolished" }},
		{"inconsistent total", func(p *ReconstructHousingUnitParams) { p.Total = 999 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := reconstructParams()
			tc.mutate(&p)
			unit, err := ReconstructHousingUnit(p)
			require.Error(t, err)
			assert.Nil(t, unit)
		})
	}
}

func TestHousingUnit_SetID(t *testing.T) {
	unit := newValidUnit(t)

	require.NoError(t, unit.SetID(42))
	assert.Equal(t, uint(42), unit.ID())

	assert.Error(t, unit.SetID(43), "ID cannot be reassigned")
	assert.Equal(t, uint(42), unit.ID())
}
