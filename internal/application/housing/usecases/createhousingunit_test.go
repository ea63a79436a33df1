package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "boaz/internal/domain/housing/valueobjects"
	appErrors "boaz/internal/shared/errors"
)

func TestCreateHousingUnitUseCase_Execute(t *testing.T) {
	t.Run("creates an available unit with the computed total", func(t *testing.T) {
		repo := newFakeUnitRepo()
		uc := NewCreateHousingUnitUseCase(repo, testLogger())

		unit, err := uc.Execute(context.Background(), unitCommand("12 rue de Belleville"))

		require.NoError(t, err)
		assert.NotZero(t, unit.ID())
		assert.Equal(t, vo.UnitStatusAvailable, unit.Status())
		assert.Equal(t, 700.0, unit.Total())
	})

	t.Run("duplicate address is a validation error", func(t *testing.T) {
		repo := newFakeUnitRepo()
		uc := NewCreateHousingUnitUseCase(repo, testLogger())

		_, err := uc.Execute(context.Background(), unitCommand("12 rue de Belleville"))
		require.NoError(t, err)

		_, err = uc.Execute(context.Background(), unitCommand("12 rue de Belleville"))

		assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeValidation))
	})

	t.Run("invalid amounts are rejected before the uniqueness check", func(t *testing.T) {
		repo := newFakeUnitRepo()
		uc := NewCreateHousingUnitUseCase(repo, testLogger())

		cmd := unitCommand("12 rue de Belleville")
		cmd.Rent = 0

		_, err := uc.Execute(context.Background(), cmd)

		assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeValidation))
	})
}

func TestUpdateHousingUnitUseCase_DuplicateLocation(t *testing.T) {
	repo := newFakeUnitRepo()
	uc := NewUpdateHousingUnitUseCase(repo, testLogger())

	seedUnit(t, repo, "12 rue de Belleville", vo.UnitStatusAvailable)
	other := seedUnit(t, repo, "30 avenue Gambetta", vo.UnitStatusAvailable)

	address := "12 rue de Belleville"
	_, err := uc.Execute(context.Background(), UpdateHousingUnitCommand{
		ID:      other.ID(),
		Address: &address,
	})

	assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeValidation))
}
