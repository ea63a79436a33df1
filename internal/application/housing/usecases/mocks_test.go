package usecases

import (
	"context"
	"sync"

	"boaz/internal/domain/housing"
	vo "boaz/internal/domain/housing/valueobjects"
	"boaz/internal/shared/logger"
)

// fakeUnitRepo is an in-memory housing.Repository that enforces the
// (address, city, postal code) uniqueness the real table index provides.
type fakeUnitRepo struct {
	mu     sync.Mutex
	nextID uint
	units  map[uint]*housing.HousingUnit
}

func newFakeUnitRepo() *fakeUnitRepo {
	return &fakeUnitRepo{nextID: 1, units: map[uint]*housing.HousingUnit{}}
}

func (r *fakeUnitRepo) Create(_ context.Context, unit *housing.HousingUnit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.locationTaken(unit, 0) {
		return housing.ErrDuplicateLocation
	}
	if err := unit.SetID(r.nextID); err != nil {
		return err
	}
	r.nextID++
	r.units[unit.ID()] = unit
	return nil
}

func (r *fakeUnitRepo) GetByID(_ context.Context, id uint) (*housing.HousingUnit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.units[id], nil
}

func (r *fakeUnitRepo) GetByLocation(_ context.Context, address, city, postalCode string) (*housing.HousingUnit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, unit := range r.units {
		if unit.Address() == address && unit.City() == city && unit.PostalCode() == postalCode {
			return unit, nil
		}
	}
	return nil, nil
}

func (r *fakeUnitRepo) List(_ context.Context, filter housing.ListFilter) ([]*housing.HousingUnit, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*housing.HousingUnit
	for _, unit := range r.units {
		if filter.Status != nil && unit.Status() != *filter.Status {
			continue
		}
		if filter.City != "" && unit.City() != filter.City {
			continue
		}
		out = append(out, unit)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUnitRepo) Update(_ context.Context, unit *housing.HousingUnit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.locationTaken(unit, unit.ID()) {
		return housing.ErrDuplicateLocation
	}
	r.units[unit.ID()] = unit
	return nil
}

func (r *fakeUnitRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.units[id]; !ok {
		return housing.ErrUnitNotFound
	}
	delete(r.units, id)
	return nil
}

func (r *fakeUnitRepo) UpdateStatusIf(_ context.Context, id uint, expected, target vo.UnitStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	unit, ok := r.units[id]
	if !ok || unit.Status() != expected {
		return false, nil
	}
	if err := unit.SetStatus(target); err != nil {
		return false, err
	}
	return true, nil
}

func (r *fakeUnitRepo) locationTaken(unit *housing.HousingUnit, selfID uint) bool {
	for id, existing := range r.units {
		if id == selfID {
			continue
		}
		if existing.Address() == unit.Address() &&
			existing.City() == unit.City() &&
			existing.PostalCode() == unit.PostalCode() {
			return true
		}
	}
	return false
}

func testLogger() logger.Interface {
	return logger.NewLogger()
}

func unitCommand(address string) CreateHousingUnitCommand {
	return CreateHousingUnitCommand{
		Title:      "Studio Belleville",
		Address:    address,
		City:       "Paris",
		PostalCode: "75020",
		Country:    "France",
		Rent:       650,
		Charges:    50,
	}
}

// testingT is the subset of *testing.T the fixtures need.
type testingT interface {
	Fatalf(format string, args ...any)
}

func seedUnit(t testingT, repo *fakeUnitRepo, address string, status vo.UnitStatus) *housing.HousingUnit {
	unit, err := housing.NewHousingUnit(housing.NewHousingUnitParams{
		Title:      "Studio Belleville",
		Address:    address,
		City:       "Paris",
		PostalCode: "75020",
		Country:    "France",
		Rent:       650,
		Charges:    50,
	})
	if err != nil {
		t.Fatalf("seed unit: %v", err)
	}
	if status != vo.UnitStatusAvailable {
		if err := unit.SetStatus(status); err != nil {
			t.Fatalf("seed unit status: %v", err)
		}
	}
	if err := repo.Create(context.Background(), unit); err != nil {
		t.Fatalf("seed unit create: %v", err)
	}
	return unit
}
