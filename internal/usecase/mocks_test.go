package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"fleet-rental/internal/data/entity"
	"fleet-rental/internal/data/repository"
	"fleet-rental/internal/rental"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// memStore is the shared backing state for the in-memory repositories. The
// fakes implement the same contracts as the Postgres repositories, including
// the half-open overlap rule, so service tests exercise the real accounting.
type memStore struct {
	mu       sync.Mutex
	bookings   map[uuid.UUID]*entity.Booking
	lines      []*entity.BookingLine
	stock      map[uuid.UUID]decimal.Decimal
	products   map[uuid.UUID]*entity.Product
	warehouses map[uuid.UUID]*entity.Warehouse
	locations  map[uuid.UUID]*entity.Location
	pickings   []*entity.Picking
	seq        int64

	failCreateLines bool
	failPickings    bool
}

func newMemStore() *memStore {
	return &memStore{
		bookings:   make(map[uuid.UUID]*entity.Booking),
		stock:      make(map[uuid.UUID]decimal.Decimal),
		products:   make(map[uuid.UUID]*entity.Product),
		warehouses: make(map[uuid.UUID]*entity.Warehouse),
		locations:  make(map[uuid.UUID]*entity.Location),
	}
}

func stateIn(state rental.BookingState, states []rental.BookingState) bool {
	for _, s := range states {
		if s == state {
			return true
		}
	}
	return false
}

// ==================== BOOKING ====================

type memBookingRepo struct{ *memStore }

var _ repository.BookingRepository = (*memBookingRepo)(nil)

func (m *memBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
	return nil
}

func (m *memBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookings[id], nil
}

func (m *memBookingRepo) FindByCompanyID(ctx context.Context, companyID uuid.UUID, state rental.BookingState, limit, offset int) ([]*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []*entity.Booking
	for _, b := range m.bookings {
		if b.CompanyID != companyID {
			continue
		}
		if state != "" && b.State != state {
			continue
		}
		matched = append(matched, b)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *memBookingRepo) CountByCompanyID(ctx context.Context, companyID uuid.UUID, state rental.BookingState) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for _, b := range m.bookings {
		if b.CompanyID == companyID && (state == "" || b.State == state) {
			count++
		}
	}
	return count, nil
}

func (m *memBookingRepo) Update(ctx context.Context, booking *entity.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[booking.ID]; !ok {
		return errors.New("booking not found")
	}
	m.bookings[booking.ID] = booking
	return nil
}

func (m *memBookingRepo) UpdateState(ctx context.Context, id uuid.UUID, state rental.BookingState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return errors.New("booking not found")
	}
	b.State = state
	return nil
}

func (m *memBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bookings, id)

	// Lines cascade with their booking, like the schema's FK does.
	kept := m.lines[:0]
	for _, line := range m.lines {
		if line.BookingID != id {
			kept = append(kept, line)
		}
	}
	m.lines = kept
	return nil
}

func (m *memBookingRepo) CountByState(ctx context.Context, companyID uuid.UUID) (map[rental.BookingState]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := make(map[rental.BookingState]int64)
	for _, b := range m.bookings {
		if b.CompanyID == companyID {
			counts[b.State]++
		}
	}
	return counts, nil
}

func (m *memBookingRepo) CountStartingBetween(ctx context.Context, companyID uuid.UUID, from, to time.Time, states []rental.BookingState) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for _, b := range m.bookings {
		if b.CompanyID != companyID || b.DateStart == nil || !stateIn(b.State, states) {
			continue
		}
		if !b.DateStart.Before(from) && b.DateStart.Before(to) {
			count++
		}
	}
	return count, nil
}

func (m *memBookingRepo) CountEndingBetween(ctx context.Context, companyID uuid.UUID, from, to time.Time, states []rental.BookingState) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for _, b := range m.bookings {
		if b.CompanyID != companyID || b.DateEnd == nil || !stateIn(b.State, states) {
			continue
		}
		if !b.DateEnd.Before(from) && b.DateEnd.Before(to) {
			count++
		}
	}
	return count, nil
}

func (m *memBookingRepo) FindRecent(ctx context.Context, companyID uuid.UUID, limit int) ([]*entity.Booking, error) {
	return m.FindByCompanyID(ctx, companyID, "", limit, 0)
}

func (m *memBookingRepo) FindLateStarts(ctx context.Context, companyID uuid.UUID, now time.Time) ([]*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []*entity.Booking
	for _, b := range m.bookings {
		if b.CompanyID != companyID || b.DateStart == nil {
			continue
		}
		if (b.State == rental.StatePlanned || b.State == rental.StateReserved) && b.DateStart.Before(now) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

func (m *memBookingRepo) FindLateReturns(ctx context.Context, companyID uuid.UUID, now time.Time) ([]*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []*entity.Booking
	for _, b := range m.bookings {
		if b.CompanyID != companyID || b.DateEnd == nil {
			continue
		}
		if (b.State == rental.StateReserved || b.State == rental.StateOngoing) && b.DateEnd.Before(now) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// ==================== BOOKING LINE ====================

type memBookingLineRepo struct{ *memStore }

var _ repository.BookingLineRepository = (*memBookingLineRepo)(nil)

func (m *memBookingLineRepo) CreateBatch(ctx context.Context, lines []*entity.BookingLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreateLines {
		return errors.New("create lines: connection reset")
	}
	m.lines = append(m.lines, lines...)
	return nil
}

func (m *memBookingLineRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []*entity.BookingLine
	for _, line := range m.lines {
		if line.BookingID == bookingID {
			matched = append(matched, line)
		}
	}
	return matched, nil
}

func (m *memBookingLineRepo) DeleteByBookingID(ctx context.Context, bookingID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.lines[:0]
	for _, line := range m.lines {
		if line.BookingID != bookingID {
			kept = append(kept, line)
		}
	}
	m.lines = kept
	return nil
}

func (m *memBookingLineRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.lines[:0]
	for _, line := range m.lines {
		if line.ID != id {
			kept = append(kept, line)
		}
	}
	m.lines = kept
	return nil
}

func (m *memBookingLineRepo) SumOverlapping(ctx context.Context, q repository.OverlapQuery) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := decimal.Zero
	for _, line := range m.lines {
		if line.ProductID != q.ProductID {
			continue
		}
		b := m.bookings[line.BookingID]
		if b == nil || b.ID == q.ExcludeBookingID || b.CompanyID != q.CompanyID {
			continue
		}
		if !stateIn(b.State, q.States) || b.DateStart == nil || b.DateEnd == nil {
			continue
		}
		if q.WarehouseID != nil && (b.SourceWarehouseID == nil || *b.SourceWarehouseID != *q.WarehouseID) {
			continue
		}
		if rental.Overlaps(*b.DateStart, *b.DateEnd, q.DateStart, q.DateEnd) {
			total = total.Add(line.Quantity)
		}
	}
	return total, nil
}

func (m *memBookingLineRepo) FindDemand(ctx context.Context, q repository.DemandQuery) ([]*entity.DemandLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	wanted := make(map[uuid.UUID]bool, len(q.ProductIDs))
	for _, id := range q.ProductIDs {
		wanted[id] = true
	}

	var matched []*entity.DemandLine
	for _, line := range m.lines {
		if !wanted[line.ProductID] {
			continue
		}
		b := m.bookings[line.BookingID]
		if b == nil || b.CompanyID != q.CompanyID {
			continue
		}
		if !stateIn(b.State, q.States) || b.DateStart == nil || b.DateEnd == nil {
			continue
		}
		if q.WarehouseID != nil && (b.SourceWarehouseID == nil || *b.SourceWarehouseID != *q.WarehouseID) {
			continue
		}
		if !rental.Overlaps(*b.DateStart, *b.DateEnd, q.DateStart, q.DateEnd) {
			continue
		}
		matched = append(matched, &entity.DemandLine{
			LineID:            line.ID,
			BookingID:         b.ID,
			ProductID:         line.ProductID,
			Quantity:          line.Quantity,
			DateStart:         *b.DateStart,
			DateEnd:           *b.DateEnd,
			State:             b.State,
			SourceWarehouseID: b.SourceWarehouseID,
		})
	}
	return matched, nil
}

// ==================== STOCK ====================

type memStockRepo struct{ *memStore }

var _ repository.StockRepository = (*memStockRepo)(nil)

func (m *memStockRepo) Create(ctx context.Context, level *entity.StockLevel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stock[level.ProductID] = m.stock[level.ProductID].Add(level.Quantity)
	return nil
}

func (m *memStockRepo) InternalOnHand(ctx context.Context, productID, companyID uuid.UUID) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stock[productID], nil
}

func (m *memStockRepo) InternalOnHandMany(ctx context.Context, productIDs []uuid.UUID, companyID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	totals := make(map[uuid.UUID]decimal.Decimal)
	for _, id := range productIDs {
		if qty, ok := m.stock[id]; ok {
			totals[id] = qty
		}
	}
	return totals, nil
}

// ==================== PRODUCT ====================

type memProductRepo struct{ *memStore }

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (m *memProductRepo) Create(ctx context.Context, product *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = product
	return nil
}

func (m *memProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products[id], nil
}

func (m *memProductRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []*entity.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (m *memProductRepo) FindTracked(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []*entity.Product
	for _, p := range m.products {
		if p.Tracked {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *memProductRepo) CountTracked(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for _, p := range m.products {
		if p.Tracked {
			count++
		}
	}
	return count, nil
}

// ==================== WAREHOUSE / LOCATION ====================

type memWarehouseRepo struct{ *memStore }

var _ repository.WarehouseRepository = (*memWarehouseRepo)(nil)

func (m *memWarehouseRepo) Create(ctx context.Context, warehouse *entity.Warehouse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warehouses[warehouse.ID] = warehouse
	return nil
}

func (m *memWarehouseRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Warehouse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.warehouses[id], nil
}

func (m *memWarehouseRepo) FindByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*entity.Warehouse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []*entity.Warehouse
	for _, w := range m.warehouses {
		if w.CompanyID == companyID {
			matched = append(matched, w)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Code < matched[j].Code })
	return matched, nil
}

func (m *memWarehouseRepo) SetRentalLocation(ctx context.Context, warehouseID, locationID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.warehouses[warehouseID]
	if !ok {
		return errors.New("warehouse not found")
	}
	w.RentalLocationID = &locationID
	return nil
}

type memLocationRepo struct{ *memStore }

var _ repository.LocationRepository = (*memLocationRepo)(nil)

func (m *memLocationRepo) Create(ctx context.Context, location *entity.Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[location.ID] = location
	return nil
}

func (m *memLocationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locations[id], nil
}

func (m *memLocationRepo) FindByWarehouseID(ctx context.Context, warehouseID uuid.UUID) ([]*entity.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []*entity.Location
	for _, l := range m.locations {
		if l.WarehouseID == warehouseID {
			matched = append(matched, l)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return matched, nil
}

// ==================== PICKING ====================

type memPickingRepo struct{ *memStore }

var _ repository.PickingRepository = (*memPickingRepo)(nil)

func (m *memPickingRepo) Create(ctx context.Context, picking *entity.Picking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPickings {
		return errors.New("create picking: connection reset")
	}
	m.pickings = append(m.pickings, picking)
	return nil
}

func (m *memPickingRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Picking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []*entity.Picking
	for _, p := range m.pickings {
		if p.BookingID == bookingID {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// ==================== SEQUENCE ====================

type memSequenceRepo struct{ *memStore }

var _ repository.SequenceRepository = (*memSequenceRepo)(nil)

func (m *memSequenceRepo) Next(ctx context.Context, code string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return fmt.Sprintf("RENT-%05d", m.seq), nil
}

// ==================== TEST ENVIRONMENT ====================

type testEnv struct {
	store     *memStore
	repo      *repository.Repository
	companyID uuid.UUID

	capacity     CapacityService
	booking      BookingService
	availability AvailabilityService
	dashboard    DashboardService
	reconcile    ReconcileService
	product      ProductService
	warehouse    WarehouseService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newMemStore()
	repo := &repository.Repository{
		Product:     &memProductRepo{store},
		Warehouse:   &memWarehouseRepo{store},
		Location:    &memLocationRepo{store},
		Stock:       &memStockRepo{store},
		Booking:     &memBookingRepo{store},
		BookingLine: &memBookingLineRepo{store},
		Picking:     &memPickingRepo{store},
		Sequence:    &memSequenceRepo{store},
	}

	log := zap.NewNop()
	capacity := NewCapacityService(repo.Stock, log)
	pickings := NewRepositoryPickingCreator(repo.Picking, log)

	return &testEnv{
		store:        store,
		repo:         repo,
		companyID:    uuid.New(),
		capacity:     capacity,
		booking:      NewBookingService(repo, capacity, pickings, "rent", log),
		availability: NewAvailabilityService(repo, capacity, log),
		dashboard:    NewDashboardService(repo, log),
		reconcile:    NewReconcileService(repo, log),
		product:      NewProductService(repo, capacity, log),
		warehouse:    NewWarehouseService(repo, log),
	}
}

// seedProduct registers a tracked product with the given internal on-hand
// total and returns its ID.
func (e *testEnv) seedProduct(t *testing.T, name string, onHand int64) uuid.UUID {
	t.Helper()

	id := uuid.New()
	e.store.products[id] = &entity.Product{
		Base:    entity.Base{ID: id, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		SKU:     name,
		Name:    name,
		Tracked: true,
	}
	if onHand > 0 {
		e.store.stock[id] = decimal.NewFromInt(onHand)
	}
	return id
}

type seedLine struct {
	productID uuid.UUID
	qty       int64
}

// seedBooking inserts a booking with lines directly into the store, skipping
// the service layer, so fixtures can start in any state.
func (e *testEnv) seedBooking(t *testing.T, state rental.BookingState, start, end time.Time, lines ...seedLine) *entity.Booking {
	t.Helper()

	booking := &entity.Booking{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Reference:  fmt.Sprintf("SEED-%05d", len(e.store.bookings)+1),
		CompanyID:  e.companyID,
		ProjectRef: "PRJ-001",
		DateStart:  &start,
		DateEnd:    &end,
		State:      state,
	}
	e.store.bookings[booking.ID] = booking

	for _, l := range lines {
		e.store.lines = append(e.store.lines, &entity.BookingLine{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
			BookingID:  booking.ID,
			ProductID:  l.productID,
			Quantity:   decimal.NewFromInt(l.qty),
		})
	}
	return booking
}
