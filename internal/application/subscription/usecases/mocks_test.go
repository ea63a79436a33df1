package usecases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"boaz/internal/domain/catalog"
	"boaz/internal/domain/housing"
	housingVO "boaz/internal/domain/housing/valueobjects"
	"boaz/internal/domain/subscription"
	"boaz/internal/shared/db"
	"boaz/internal/shared/logger"
)

// --- in-memory repositories ---

type fakeSubscriptionRepo struct {
	mu     sync.Mutex
	nextID uint
	subs   map[uint]*subscription.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{nextID: 1, subs: map[uint]*subscription.Subscription{}}
}

func (r *fakeSubscriptionRepo) Create(_ context.Context, sub *subscription.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.subs {
		if existing.Reference() == sub.Reference() {
			return subscription.ErrReferenceExists
		}
	}
	if err := sub.SetID(r.nextID); err != nil {
		return err
	}
	r.nextID++
	r.subs[sub.ID()] = sub
	return nil
}

func (r *fakeSubscriptionRepo) GetByID(_ context.Context, id uint) (*subscription.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.subs[id], nil
}

func (r *fakeSubscriptionRepo) GetByReference(_ context.Context, reference string) (*subscription.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sub := range r.subs {
		if sub.Reference() == reference {
			return sub, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) ExistsByReference(_ context.Context, reference string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sub := range r.subs {
		if sub.Reference() == reference {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSubscriptionRepo) List(_ context.Context, filter subscription.ListFilter) ([]*subscription.Subscription, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*subscription.Subscription
	for _, sub := range r.subs {
		if filter.Status != nil && sub.Status() != *filter.Status {
			continue
		}
		if filter.HousingUnitID != 0 && sub.HousingUnitID() != filter.HousingUnitID {
			continue
		}
		out = append(out, sub)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSubscriptionRepo) Update(_ context.Context, sub *subscription.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[sub.ID()] = sub
	return nil
}

func (r *fakeSubscriptionRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[id]; !ok {
		return subscription.ErrSubscriptionNotFound
	}
	delete(r.subs, id)
	return nil
}

func (r *fakeSubscriptionRepo) FindExpiredDelivered(_ context.Context, asOf time.Time) ([]*subscription.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*subscription.Subscription
	for _, sub := range r.subs {
		if sub.IsExpiredAsOf(asOf) {
			out = append(out, sub)
		}
	}
	return out, nil
}

type fakeHousingRepo struct {
	mu     sync.Mutex
	nextID uint
	units  map[uint]*housing.HousingUnit
}

func newFakeHousingRepo() *fakeHousingRepo {
	return &fakeHousingRepo{nextID: 1, units: map[uint]*housing.HousingUnit{}}
}

func (r *fakeHousingRepo) Create(_ context.Context, unit *housing.HousingUnit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := unit.SetID(r.nextID); err != nil {
		return err
	}
	r.nextID++
	r.units[unit.ID()] = unit
	return nil
}

func (r *fakeHousingRepo) GetByID(_ context.Context, id uint) (*housing.HousingUnit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.units[id], nil
}

func (r *fakeHousingRepo) GetByLocation(_ context.Context, address, city, postalCode string) (*housing.HousingUnit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, unit := range r.units {
		if unit.Address() == address && unit.City() == city && unit.PostalCode() == postalCode {
			return unit, nil
		}
	}
	return nil, nil
}

func (r *fakeHousingRepo) List(_ context.Context, filter housing.ListFilter) ([]*housing.HousingUnit, int64, error) {
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

func (r *fakeHousingRepo) Update(_ context.Context, unit *housing.HousingUnit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.units[unit.ID()] = unit
	return nil
}

func (r *fakeHousingRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.units[id]; !ok {
		return housing.ErrUnitNotFound
	}
	delete(r.units, id)
	return nil
}

func (r *fakeHousingRepo) UpdateStatusIf(_ context.Context, id uint, expected, target housingVO.UnitStatus) (bool, error) {
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

// --- catalog, documents, notifier ---

type fakeCatalog struct {
	services map[int]catalog.Service
	org      *catalog.Organisation
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		services: map[int]catalog.Service{
			1: {ID: 1, Slug: "attestation-logement", Name: "Attestation de logement", Price: 50, ValidityDays: 365, Active: true},
			2: {ID: 2, Slug: "assurance", Name: "Assurance habitation", Price: 30, ValidityDays: 90, Active: true},
		},
		org: &catalog.Organisation{Name: "Boaz Housing", City: "Paris"},
	}
}

func (c *fakeCatalog) ListServices(activeOnly bool) ([]catalog.Service, error) {
	var out []catalog.Service
	for _, svc := range c.services {
		if activeOnly && !svc.Active {
			continue
		}
		out = append(out, svc)
	}
	return out, nil
}

func (c *fakeCatalog) GetService(id int) (*catalog.Service, error) {
	svc, ok := c.services[id]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	return &svc, nil
}

func (c *fakeCatalog) GetServiceBySlug(slug string) (*catalog.Service, error) {
	for _, svc := range c.services {
		if svc.Slug == slug {
			s := svc
			return &s, nil
		}
	}
	return nil, catalog.ErrServiceNotFound
}

func (c *fakeCatalog) Organisation() (*catalog.Organisation, error) {
	if c.org == nil {
		return nil, catalog.ErrOrganisationMissing
	}
	return c.org, nil
}

type fakeDocs struct {
	attestations int
	proformas    int
}

func (d *fakeDocs) GenerateAttestation(sub *subscription.Subscription, _ *housing.HousingUnit, _ *catalog.Organisation) (string, error) {
	d.attestations++
	return "/tmp/attestation_" + sub.Reference() + ".pdf", nil
}

func (d *fakeDocs) GenerateProforma(sub *subscription.Subscription, _ []catalog.Service, _ *catalog.Organisation) (string, error) {
	d.proformas++
	return "/tmp/proforma_" + sub.Reference() + ".pdf", nil
}

// failingDocs simulates a PDF toolchain outage.
type failingDocs struct{}

func (failingDocs) GenerateAttestation(*subscription.Subscription, *housing.HousingUnit, *catalog.Organisation) (string, error) {
	return "", fmt.Errorf("pdf engine unavailable")
}

func (failingDocs) GenerateProforma(*subscription.Subscription, []catalog.Service, *catalog.Organisation) (string, error) {
	return "", fmt.Errorf("pdf engine unavailable")
}

type fakeNotifier struct {
	attestations  []string
	confirmations []string
}

func (n *fakeNotifier) SendAttestation(to, _, _ string, _ string) error {
	n.attestations = append(n.attestations, to)
	return nil
}

func (n *fakeNotifier) SendPaymentConfirmation(to, _, _ string) error {
	n.confirmations = append(n.confirmations, to)
	return nil
}

// passthroughTx satisfies db.Transactor without a database: the fakes
// already serialize access, so the closure just runs in place.
type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var _ db.Transactor = passthroughTx{}

func testLogger() logger.Interface {
	return logger.NewLogger()
}

// --- fixtures ---

func seedUnit(t testingT, repo *fakeHousingRepo, status housingVO.UnitStatus) *housing.HousingUnit {
	unit, err := housing.NewHousingUnit(housing.NewHousingUnitParams{
		Title:      "Studio Belleville",
		Address:    "12 rue de Belleville",
		City:       "Paris",
		PostalCode: "75020",
		Country:    "France",
		Rent:       650,
		Charges:    50,
	})
	if err != nil {
		t.Fatalf("seed unit: %v", err)
	}
	if status != housingVO.UnitStatusAvailable {
		if err := unit.SetStatus(status); err != nil {
			t.Fatalf("seed unit status: %v", err)
		}
	}
	if err := repo.Create(context.Background(), unit); err != nil {
		t.Fatalf("seed unit create: %v", err)
	}
	return unit
}

func tenantFixture() subscription.Tenant {
	return subscription.Tenant{
		LastName:           "Diallo",
		FirstName:          "Amadou",
		Email:              "amadou.diallo@example.com",
		Nationality:        "Senegalese",
		DestinationCountry: "France",
	}
}

func academicFixture() subscription.Academic {
	return subscription.Academic{
		School:  "Sorbonne Universite",
		Program: "Master Informatique",
	}
}

func seedSubscription(t testingT, repo *fakeSubscriptionRepo, unitID uint, serviceIDs []int) *subscription.Subscription {
	sub, err := subscription.NewSubscription(subscription.NewSubscriptionParams{
		Reference:     fmt.Sprintf("ATT-TEST%012d", repo.nextID),
		Tenant:        tenantFixture(),
		Academic:      academicFixture(),
		HousingUnitID: unitID,
		ServiceIDs:    serviceIDs,
	})
	if err != nil {
		t.Fatalf("seed subscription: %v", err)
	}
	if err := repo.Create(context.Background(), sub); err != nil {
		t.Fatalf("seed subscription create: %v", err)
	}
	return sub
}

func seedPendingDelivery(t testingT, repo *fakeSubscriptionRepo, unitID uint, serviceIDs []int) *subscription.Subscription {
	sub := seedSubscription(t, repo, unitID, serviceIDs)
	if err := sub.MarkPaid(nil); err != nil {
		t.Fatalf("seed paid: %v", err)
	}
	return sub
}

func seedDelivered(t testingT, repo *fakeSubscriptionRepo, unitID uint, deliveredAt time.Time, validityDays int) *subscription.Subscription {
	sub := seedPendingDelivery(t, repo, unitID, nil)
	if err := sub.MarkDelivered(deliveredAt, validityDays); err != nil {
		t.Fatalf("seed delivered: %v", err)
	}
	return sub
}

// testingT is the subset of *testing.T the fixtures need.
type testingT interface {
	Fatalf(format string, args ...any)
}
