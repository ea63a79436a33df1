package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	housingVO "boaz/internal/domain/housing/valueobjects"
	vo "boaz/internal/domain/subscription/valueobjects"
)

func TestCloseExpiredSubscriptionsUseCase_Execute(t *testing.T) {
	t.Run("closes expired subscriptions and frees their units", func(t *testing.T) {
		subRepo := newFakeSubscriptionRepo()
		unitRepo := newFakeHousingRepo()
		uc := NewCloseExpiredSubscriptionsUseCase(subRepo, unitRepo, passthroughTx{}, testLogger())

		unit := seedUnit(t, unitRepo, housingVO.UnitStatusOccupied)
		expired := seedDelivered(t, subRepo, unit.ID(), time.Now().UTC().AddDate(0, 0, -100), 90)

		result, err := uc.Execute(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, result.Closed)
		assert.Equal(t, 1, result.FreedUnits)
		assert.Equal(t, 0, result.Failed)
		assert.Equal(t, vo.StatusClosed, expired.Status())
		assert.Equal(t, housingVO.UnitStatusAvailable, unit.Status())
	})

	t.Run("leaves unexpired subscriptions alone", func(t *testing.T) {
		subRepo := newFakeSubscriptionRepo()
		unitRepo := newFakeHousingRepo()
		uc := NewCloseExpiredSubscriptionsUseCase(subRepo, unitRepo, passthroughTx{}, testLogger())

		unit := seedUnit(t, unitRepo, housingVO.UnitStatusOccupied)
		current := seedDelivered(t, subRepo, unit.ID(), time.Now().UTC(), 365)

		result, err := uc.Execute(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, result.Closed)
		assert.Equal(t, vo.StatusDelivered, current.Status())
		assert.Equal(t, housingVO.UnitStatusOccupied, unit.Status())
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		subRepo := newFakeSubscriptionRepo()
		unitRepo := newFakeHousingRepo()
		uc := NewCloseExpiredSubscriptionsUseCase(subRepo, unitRepo, passthroughTx{}, testLogger())

		unit := seedUnit(t, unitRepo, housingVO.UnitStatusOccupied)
		seedDelivered(t, subRepo, unit.ID(), time.Now().UTC().AddDate(0, 0, -100), 90)

		first, err := uc.Execute(context.Background())
		require.NoError(t, err)
		require.Equal(t, 1, first.Closed)

		second, err := uc.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, second.Closed)
		assert.Equal(t, 0, second.FreedUnits)
	})

	t.Run("unit under maintenance stays put", func(t *testing.T) {
		subRepo := newFakeSubscriptionRepo()
		unitRepo := newFakeHousingRepo()
		uc := NewCloseExpiredSubscriptionsUseCase(subRepo, unitRepo, passthroughTx{}, testLogger())

		unit := seedUnit(t, unitRepo, housingVO.UnitStatusMaintenance)
		expired := seedDelivered(t, subRepo, unit.ID(), time.Now().UTC().AddDate(0, 0, -100), 90)

		result, err := uc.Execute(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, result.Closed)
		assert.Equal(t, 0, result.FreedUnits)
		assert.Equal(t, vo.StatusClosed, expired.Status())
		assert.Equal(t, housingVO.UnitStatusMaintenance, unit.Status())
	})

	t.Run("processes several expired subscriptions independently", func(t *testing.T) {
		subRepo := newFakeSubscriptionRepo()
		unitRepo := newFakeHousingRepo()
		uc := NewCloseExpiredSubscriptionsUseCase(subRepo, unitRepo, passthroughTx{}, testLogger())

		past := time.Now().UTC().AddDate(0, 0, -200)
		unitA := seedUnit(t, unitRepo, housingVO.UnitStatusOccupied)
		unitB := seedUnit(t, unitRepo, housingVO.UnitStatusOccupied)
		seedDelivered(t, subRepo, unitA.ID(), past, 90)
		seedDelivered(t, subRepo, unitB.ID(), past, 90)

		result, err := uc.Execute(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, result.Closed)
		assert.Equal(t, 2, result.FreedUnits)
		assert.Equal(t, housingVO.UnitStatusAvailable, unitA.Status())
		assert.Equal(t, housingVO.UnitStatusAvailable, unitB.Status())
	})
}
