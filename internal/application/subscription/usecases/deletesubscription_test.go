package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	housingVO "boaz/internal/domain/housing/valueobjects"
	appErrors "boaz/internal/shared/errors"
)

func TestDeleteSubscriptionUseCase_Execute(t *testing.T) {
	t.Run("removes the subscription", func(t *testing.T) {
		subRepo := newFakeSubscriptionRepo()
		unitRepo := newFakeHousingRepo()
		uc := NewDeleteSubscriptionUseCase(subRepo, testLogger())

		unit := seedUnit(t, unitRepo, housingVO.UnitStatusAvailable)
		sub := seedSubscription(t, subRepo, unit.ID(), nil)

		err := uc.Execute(context.Background(), sub.ID())

		require.NoError(t, err)
		gone, err := subRepo.GetByID(context.Background(), sub.ID())
		require.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("leaves the occupied unit untouched", func(t *testing.T) {
		subRepo := newFakeSubscriptionRepo()
		unitRepo := newFakeHousingRepo()
		uc := NewDeleteSubscriptionUseCase(subRepo, testLogger())

		unit := seedUnit(t, unitRepo, housingVO.UnitStatusOccupied)
		sub := seedDelivered(t, subRepo, unit.ID(), time.Now().UTC(), 365)

		err := uc.Execute(context.Background(), sub.ID())

		require.NoError(t, err)
		// Releasing the unit is an explicit status change, never a
		// deletion side effect.
		assert.Equal(t, housingVO.UnitStatusOccupied, unit.Status())
	})

	t.Run("unknown subscription", func(t *testing.T) {
		subRepo := newFakeSubscriptionRepo()
		uc := NewDeleteSubscriptionUseCase(subRepo, testLogger())

		err := uc.Execute(context.Background(), 404)

		assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeNotFound))
	})
}
