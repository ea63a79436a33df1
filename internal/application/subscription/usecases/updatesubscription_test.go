package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	housingVO "boaz/internal/domain/housing/valueobjects"
	"boaz/internal/domain/subscription"
	vo "boaz/internal/domain/subscription/valueobjects"
	appErrors "boaz/internal/shared/errors"
)

func TestUpdateSubscriptionUseCase_Execute(t *testing.T) {
	t.Run("partial tenant update", func(t *testing.T) {
		subRepo := newFakeSubscriptionRepo()
		unitRepo := newFakeHousingRepo()
		uc := NewUpdateSubscriptionUseCase(subRepo, unitRepo, testLogger())

		unit := seedUnit(t, unitRepo, housingVO.UnitStatusAvailable)
		sub := seedSubscription(t, subRepo, unit.ID(), nil)

		tenant := tenantFixture()
		tenant.Email = "new.address@example.com"
		updated, err := uc.Execute(context.Background(), UpdateSubscriptionCommand{
			ID:     sub.ID(),
			Tenant: &tenant,
		})

		require.NoError(t, err)
		assert.Equal(t, "new.address@example.com", updated.Tenant().Email)
		// Academic details were not part of the command.
		assert.Equal(t, academicFixture().School, updated.Academic().School)
	})

	t.Run("moves the subscription to another unit", func(t *testing.T) {
		subRepo := newFakeSubscriptionRepo()
		unitRepo := newFakeHousingRepo()
		uc := NewUpdateSubscriptionUseCase(subRepo, unitRepo, testLogger())

		unitA := seedUnit(t, unitRepo, housingVO.UnitStatusAvailable)
		unitB := seedUnit(t, unitRepo, housingVO.UnitStatusAvailable)
		sub := seedSubscription(t, subRepo, unitA.ID(), nil)

		target := unitB.ID()
		updated, err := uc.Execute(context.Background(), UpdateSubscriptionCommand{
			ID:            sub.ID(),
			HousingUnitID: &target,
		})

		require.NoError(t, err)
		assert.Equal(t, unitB.ID(), updated.HousingUnitID())
	})

	t.Run("rejects a move to a unit that is not available", func(t *testing.T) {
		subRepo := newFakeSubscriptionRepo()
		unitRepo := newFakeHousingRepo()
		uc := NewUpdateSubscriptionUseCase(subRepo, unitRepo, testLogger())

		unitA := seedUnit(t, unitRepo, housingVO.UnitStatusAvailable)
		unitB := seedUnit(t, unitRepo, housingVO.UnitStatusOccupied)
		sub := seedSubscription(t, subRepo, unitA.ID(), nil)

		target := unitB.ID()
		_, err := uc.Execute(context.Background(), UpdateSubscriptionCommand{
			ID:            sub.ID(),
			HousingUnitID: &target,
		})

		assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeUnavailable))
		assert.Equal(t, unitA.ID(), sub.HousingUnitID())
	})

	t.Run("rejects a move to a unit that does not exist", func(t *testing.T) {
		subRepo := newFakeSubscriptionRepo()
		unitRepo := newFakeHousingRepo()
		uc := NewUpdateSubscriptionUseCase(subRepo, unitRepo, testLogger())

		unit := seedUnit(t, unitRepo, housingVO.UnitStatusAvailable)
		sub := seedSubscription(t, subRepo, unit.ID(), nil)

		target := uint(404)
		_, err := uc.Execute(context.Background(), UpdateSubscriptionCommand{
			ID:            sub.ID(),
			HousingUnitID: &target,
		})

		assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeNotFound))
	})

	t.Run("edits stay allowed while awaiting delivery", func(t *testing.T) {
		subRepo := newFakeSubscriptionRepo()
		unitRepo := newFakeHousingRepo()
		uc := NewUpdateSubscriptionUseCase(subRepo, unitRepo, testLogger())

		unit := seedUnit(t, unitRepo, housingVO.UnitStatusAvailable)
		sub := seedPendingDelivery(t, subRepo, unit.ID(), nil)

		months := 6
		updated, err := uc.Execute(context.Background(), UpdateSubscriptionCommand{
			ID:             sub.ID(),
			DurationMonths: &months,
		})

		require.NoError(t, err)
		assert.Equal(t, 6, updated.DurationMonths())
	})

	t.Run("locked after delivery", func(t *testing.T) {
		subRepo := newFakeSubscriptionRepo()
		unitRepo := newFakeHousingRepo()
		uc := NewUpdateSubscriptionUseCase(subRepo, unitRepo, testLogger())

		unit := seedUnit(t, unitRepo, housingVO.UnitStatusOccupied)
		sub := seedDelivered(t, subRepo, unit.ID(), time.Now().UTC(), 365)

		tenant := tenantFixture()
		_, err := uc.Execute(context.Background(), UpdateSubscriptionCommand{
			ID:     sub.ID(),
			Tenant: &tenant,
		})

		assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeLocked))
	})

	t.Run("invalid duration maps to validation error", func(t *testing.T) {
		subRepo := newFakeSubscriptionRepo()
		unitRepo := newFakeHousingRepo()
		uc := NewUpdateSubscriptionUseCase(subRepo, unitRepo, testLogger())

		unit := seedUnit(t, unitRepo, housingVO.UnitStatusAvailable)
		sub := seedSubscription(t, subRepo, unit.ID(), nil)

		months := subscription.MaxDurationMonths + 1
		_, err := uc.Execute(context.Background(), UpdateSubscriptionCommand{
			ID:             sub.ID(),
			DurationMonths: &months,
		})

		assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeValidation))
	})
}

func TestMarkPaidUseCase_Execute(t *testing.T) {
	t.Run("advances to pending delivery and stores the proof", func(t *testing.T) {
		subRepo := newFakeSubscriptionRepo()
		unitRepo := newFakeHousingRepo()
		notifier := &fakeNotifier{}
		uc := NewMarkPaidUseCase(subRepo, notifier, testLogger())

		unit := seedUnit(t, unitRepo, housingVO.UnitStatusAvailable)
		sub := seedSubscription(t, subRepo, unit.ID(), nil)

		proof := "/uploads/proof-001.pdf"
		paid, err := uc.Execute(context.Background(), MarkPaidCommand{
			ID:               sub.ID(),
			PaymentProofPath: &proof,
		})

		require.NoError(t, err)
		assert.Equal(t, vo.StatusPendingDelivery, paid.Status())
		require.NotNil(t, paid.PaymentProofPath())
		assert.Equal(t, proof, *paid.PaymentProofPath())
		require.Len(t, notifier.confirmations, 1)
		assert.Equal(t, "amadou.diallo@example.com", notifier.confirmations[0])
	})

	t.Run("double payment is refused", func(t *testing.T) {
		subRepo := newFakeSubscriptionRepo()
		unitRepo := newFakeHousingRepo()
		uc := NewMarkPaidUseCase(subRepo, &fakeNotifier{}, testLogger())

		unit := seedUnit(t, unitRepo, housingVO.UnitStatusAvailable)
		sub := seedPendingDelivery(t, subRepo, unit.ID(), nil)

		_, err := uc.Execute(context.Background(), MarkPaidCommand{ID: sub.ID()})

		assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeInvalidTransition))
	})
}
