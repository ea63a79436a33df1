package subscription

import (
	"testing"
	"time"

	vo "boaz/internal/domain/subscription/valueobjects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func validTenant() Tenant {
	return Tenant{
		LastName:           "Diallo",
		FirstName:          "Aminata",
		Email:              "aminata.diallo@example.com",
		BirthCity:          "Dakar",
		BirthCountry:       "Sénégal",
		Nationality:        "Sénégalaise",
		DestinationCountry: "France",
	}
}

func validAcademic() Academic {
	return Academic{
		School:           "Université Lyon 2",
		Program:          "Master Informatique",
		SchoolCountry:    "France",
		SchoolCity:       "Lyon",
		SchoolPostalCode: "69007",
		SchoolAddress:    "86 rue Pasteur",
	}
}

func newPendingSubscription(t *testing.T) *Subscription {
	t.Helper()
	sub, err := NewSubscription(NewSubscriptionParams{
		Reference:     "ATT-ABCDEFGH12345678",
		Tenant:        validTenant(),
		Academic:      validAcademic(),
		HousingUnitID: 1,
	})
	require.NoError(t, err)
	require.NotNil(t, sub)
	return sub
}

func newPendingDeliverySubscription(t *testing.T) *Subscription {
	t.Helper()
	sub := newPendingSubscription(t)
	require.NoError(t, sub.MarkPaid(nil))
	return sub
}

func newDeliveredSubscription(t *testing.T, deliveredAt time.Time, validityDays int) *Subscription {
	t.Helper()
	sub := newPendingDeliverySubscription(t)
	require.NoError(t, sub.MarkDelivered(deliveredAt, validityDays))
	return sub
}

// =====================================================================
// TestNewSubscription_*
// =====================================================================

func TestNewSubscription_Defaults(t *testing.T) {
	sub := newPendingSubscription(t)

	assert.Equal(t, vo.StatusPendingPayment, sub.Status())
	assert.Equal(t, DefaultDurationMonths, sub.DurationMonths())
	assert.Equal(t, []int{1}, sub.ServiceIDs(), "housing attestation is the default service")
	assert.True(t, sub.RequiresHousing())
	assert.Nil(t, sub.DeliveredAt())
	assert.Nil(t, sub.ExpiresAt())
	assert.Equal(t, 1, sub.Version())
}

func TestNewSubscription_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*NewSubscriptionParams)
	}{
		{"missing reference", func(p *NewSubscriptionParams) { p.Reference = "" }},
		{"missing housing unit", func(p *NewSubscriptionParams) { p.HousingUnitID = 0 }},
		{"missing last name", func(p *NewSubscriptionParams) { p.Tenant.LastName = " " }},
		{"missing first name", func(p *NewSubscriptionParams) { p.Tenant.FirstName = "" }},
		{"bad email", func(p *NewSubscriptionParams) { p.Tenant.Email = "not-an-email" }},
		{"missing school", func(p *NewSubscriptionParams) { p.Academic.School = "" }},
		{"missing program", func(p *NewSubscriptionParams) { p.Academic.Program = "" }},
		{"duration too long", func(p *NewSubscriptionParams) { p.DurationMonths = 61 }},
		{"negative duration", func(p *NewSubscriptionParams) { p.DurationMonths = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewSubscriptionParams{
				Reference:     "ATT-ABCDEFGH12345678",
				Tenant:        validTenant(),
				Academic:      validAcademic(),
				HousingUnitID: 1,
			}
			tc.mutate(&p)
			sub, err := NewSubscription(p)
			require.Error(t, err)
			assert.Nil(t, sub)
		})
	}
}

func TestNewSubscription_ExplicitServices(t *testing.T) {
	sub, err := NewSubscription(NewSubscriptionParams{
		Reference:     "ATT-ABCDEFGH12345678",
		Tenant:        validTenant(),
		Academic:      validAcademic(),
		HousingUnitID: 1,
		ServiceIDs:    []int{2, 3},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, sub.ServiceIDs())
	assert.False(t, sub.RequiresHousing(), "no housing attestation selected")
}

// =====================================================================
// Lifecycle transitions
// =====================================================================

func TestSubscription_MarkPaid(t *testing.T) {
	sub := newPendingSubscription(t)
	proof := "uploads/proofs/virement.pdf"

	require.NoError(t, sub.MarkPaid(&proof))

	assert.Equal(t, vo.StatusPendingDelivery, sub.Status())
	require.NotNil(t, sub.PaymentProofPath())
	assert.Equal(t, proof, *sub.PaymentProofPath())
}

func TestSubscription_MarkPaidWithoutProof(t *testing.T) {
	sub := newPendingSubscription(t)

	require.NoError(t, sub.MarkPaid(nil))

	assert.Equal(t, vo.StatusPendingDelivery, sub.Status())
	assert.Nil(t, sub.PaymentProofPath())
}

func TestSubscription_MarkPaidTwiceRejected(t *testing.T) {
	sub := newPendingDeliverySubscription(t)

	err := sub.MarkPaid(nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	assert.Equal(t, vo.StatusPendingDelivery, sub.Status())
}

func TestSubscription_MarkDeliveredComputesExpiry(t *testing.T) {
	deliveredAt := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	sub := newDeliveredSubscription(t, deliveredAt, 90)

	assert.Equal(t, vo.StatusDelivered, sub.Status())
	require.NotNil(t, sub.DeliveredAt())
	assert.Equal(t, deliveredAt, *sub.DeliveredAt())
	require.NotNil(t, sub.ExpiresAt())
	assert.Equal(t, deliveredAt.AddDate(0, 0, 90), *sub.ExpiresAt())
}

func TestSubscription_MarkDeliveredDefaultValidity(t *testing.T) {
	deliveredAt := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	sub := newDeliveredSubscription(t, deliveredAt, 0)

	require.NotNil(t, sub.ExpiresAt())
	assert.Equal(t, deliveredAt.AddDate(0, 0, 365), *sub.ExpiresAt(), "zero validity falls back to 365 days")
}

func TestSubscription_MarkDeliveredFromWrongStatus(t *testing.T) {
	sub := newPendingSubscription(t)

	err := sub.MarkDelivered(time.Now().UTC(), 365)

	require.ErrorIs(t, err, ErrInvalidStatusTransition)
	assert.Equal(t, vo.StatusPendingPayment, sub.Status())
	assert.Nil(t, sub.ExpiresAt())
}

func TestSubscription_Close(t *testing.T) {
	sub := newDeliveredSubscription(t, time.Now().UTC(), 365)

	require.NoError(t, sub.Close())

	assert.Equal(t, vo.StatusClosed, sub.Status())
	assert.True(t, sub.Status().IsTerminal())
}

func TestSubscription_CloseFromWrongStatus(t *testing.T) {
	for _, build := range []func(*testing.T) *Subscription{
		newPendingSubscription,
		newPendingDeliverySubscription,
	} {
		sub := build(t)
		err := sub.Close()
		require.ErrorIs(t, err, ErrInvalidStatusTransition)
	}
}

func TestSubscription_NoBackwardTransitions(t *testing.T) {
	sub := newDeliveredSubscription(t, time.Now().UTC(), 365)

	assert.ErrorIs(t, sub.MarkPaid(nil), ErrInvalidStatusTransition)
	assert.ErrorIs(t, sub.MarkDelivered(time.Now().UTC(), 365), ErrInvalidStatusTransition)

	require.NoError(t, sub.Close())
	assert.ErrorIs(t, sub.Close(), ErrInvalidStatusTransition, "closed is terminal")
}

// =====================================================================
// Expiry
// =====================================================================

func TestSubscription_IsExpiredAsOf(t *testing.T) {
	deliveredAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	sub := newDeliveredSubscription(t, deliveredAt, 30)
	expiry := deliveredAt.AddDate(0, 0, 30)

	assert.False(t, sub.IsExpiredAsOf(expiry), "not expired at the exact boundary")
	assert.True(t, sub.IsExpiredAsOf(expiry.Add(time.Second)))

	require.NoError(t, sub.Close())
	assert.False(t, sub.IsExpiredAsOf(expiry.AddDate(1, 0, 0)), "closed subscriptions never report expired")
}

// =====================================================================
// Updates and locking
// =====================================================================

func TestSubscription_UpdateDetailsPartial(t *testing.T) {
	sub := newPendingSubscription(t)
	months := 6

	require.NoError(t, sub.UpdateDetails(UpdateDetailsParams{DurationMonths: &months}))

	assert.Equal(t, 6, sub.DurationMonths())
	assert.Equal(t, "Diallo", sub.Tenant().LastName, "untouched fields survive partial updates")
}

func TestSubscription_UpdateDetailsRejectsInvalidTenant(t *testing.T) {
	sub := newPendingSubscription(t)
	bad := validTenant()
	bad.Email = "broken"

	err := sub.UpdateDetails(UpdateDetailsParams{Tenant: &bad})

	require.Error(t, err)
	assert.Equal(t, "aminata.diallo@example.com", sub.Tenant().Email)
}

func TestSubscription_UpdateDetailsLockedAfterDelivery(t *testing.T) {
	sub := newDeliveredSubscription(t, time.Now().UTC(), 365)
	months := 6

	err := sub.UpdateDetails(UpdateDetailsParams{DurationMonths: &months})

	require.ErrorIs(t, err, ErrSubscriptionLocked)
	assert.Equal(t, DefaultDurationMonths, sub.DurationMonths())
}

func TestSubscription_UpdateDetailsEditableWhilePendingDelivery(t *testing.T) {
	sub := newPendingDeliverySubscription(t)
	months := 24

	require.NoError(t, sub.UpdateDetails(UpdateDetailsParams{DurationMonths: &months}))
	assert.Equal(t, 24, sub.DurationMonths())
}

func TestSubscription_ChangeHousingUnit(t *testing.T) {
	sub := newPendingSubscription(t)

	require.NoError(t, sub.ChangeHousingUnit(9))
	assert.Equal(t, uint(9), sub.HousingUnitID())

	delivered := newDeliveredSubscription(t, time.Now().UTC(), 365)
	assert.ErrorIs(t, delivered.ChangeHousingUnit(9), ErrSubscriptionLocked)
}

// =====================================================================
// Override and reconstruction
// =====================================================================

func TestSubscription_OverrideStatusSkipsGuards(t *testing.T) {
	sub := newDeliveredSubscription(t, time.Now().UTC(), 365)

	require.NoError(t, sub.OverrideStatus(vo.StatusPendingPayment))
	assert.Equal(t, vo.StatusPendingPayment, sub.Status())

	assert.Error(t, sub.OverrideStatus(vo.SubscriptionStatus("bogus")))
}

func TestReconstructSubscription_Valid(t *testing.T) {
	now := time.Now().UTC()
	expiresAt := now.AddDate(0, 0, 365)
	sub, err := ReconstructSubscription(ReconstructSubscriptionParams{
		ID:             3,
		Reference:      "ATT-ABCDEFGH12345678",
		Tenant:         validTenant(),
		Academic:       validAcademic(),
		HousingUnitID:  2,
		DurationMonths: 12,
		ServiceIDs:     []int{1},
		Status:         vo.StatusDelivered,
		DeliveredAt:    &now,
		ExpiresAt:      &expiresAt,
		Version:        4,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(3), sub.ID())
	assert.Equal(t, vo.StatusDelivered, sub.Status())
	assert.Equal(t, 4, sub.Version())
}

func TestReconstructSubscription_RejectsCorruptedState(t *testing.T) {
	base := ReconstructSubscriptionParams{
		ID:            3,
		Reference:     "ATT-ABCDEFGH12345678",
		HousingUnitID: 2,
		Status:        vo.StatusPendingPayment,
	}

	p := base
	p.ID = 0
	_, err := ReconstructSubscription(p)
	assert.Error(t, err)

	p = base
	p.Reference = ""
	_, err = ReconstructSubscription(p)
	assert.Error(t, err)

	p = base
	p.Status = "bogus"
	_, err = ReconstructSubscription(p)
	assert.Error(t, err)
}

func TestSubscription_ServiceIDsReturnsCopy(t *testing.T) {
	sub := newPendingSubscription(t)

	ids := sub.ServiceIDs()
	ids[0] = 99

	assert.Equal(t, []int{1}, sub.ServiceIDs())
}
