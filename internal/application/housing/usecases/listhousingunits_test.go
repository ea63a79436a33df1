package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "boaz/internal/domain/housing/valueobjects"
	appErrors "boaz/internal/shared/errors"
)

func TestListHousingUnitsUseCase_Execute(t *testing.T) {
	t.Run("filters by status", func(t *testing.T) {
		repo := newFakeUnitRepo()
		uc := NewListHousingUnitsUseCase(repo, testLogger())

		seedUnit(t, repo, "12 rue de Belleville", vo.UnitStatusAvailable)
		occupied := seedUnit(t, repo, "30 avenue Gambetta", vo.UnitStatusOccupied)

		result, err := uc.Execute(context.Background(), ListHousingUnitsQuery{
			Status: vo.UnitStatusOccupied.String(),
		})

		require.NoError(t, err)
		assert.EqualValues(t, 1, result.Total)
		require.Len(t, result.Units, 1)
		assert.Equal(t, occupied.ID(), result.Units[0].ID())
	})

	t.Run("no status filter returns everything", func(t *testing.T) {
		repo := newFakeUnitRepo()
		uc := NewListHousingUnitsUseCase(repo, testLogger())

		seedUnit(t, repo, "12 rue de Belleville", vo.UnitStatusAvailable)
		seedUnit(t, repo, "30 avenue Gambetta", vo.UnitStatusMaintenance)

		result, err := uc.Execute(context.Background(), ListHousingUnitsQuery{})

		require.NoError(t, err)
		assert.EqualValues(t, 2, result.Total)
	})

	t.Run("unknown status is a validation error", func(t *testing.T) {
		repo := newFakeUnitRepo()
		uc := NewListHousingUnitsUseCase(repo, testLogger())

		_, err := uc.Execute(context.Background(), ListHousingUnitsQuery{Status: "libre"})

		assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeValidation))
	})
}
