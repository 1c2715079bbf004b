package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"orderhub/internal/domain"
)

// MemoryStore объединённое in-memory хранилище и простой генератор ID
type MemoryStore struct {
	mu           sync.RWMutex
	nextProdID   int64
	nextOrderID  int64
	customers    map[int64]domain.Customer
	productsByID map[int64]domain.Product
	hubs         map[int64]domain.DistributionHub
	statuses     map[int64]domain.OrderStatus
	ordersByID   map[int64]domain.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextProdID:   1,
		nextOrderID:  1,
		customers:    make(map[int64]domain.Customer),
		productsByID: make(map[int64]domain.Product),
		hubs:         make(map[int64]domain.DistributionHub),
		statuses:     make(map[int64]domain.OrderStatus),
		ordersByID:   make(map[int64]domain.Order),
	}
}

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(txKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

// Ensure interfaces
var _ ProductRepository = (*MemoryStore)(nil)

// PutCustomer / PutHub / PutStatus / PutProduct сохраняют справочные записи с заданным ID (сидинг)
func (m *MemoryStore) PutCustomer(c domain.Customer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers[c.ID] = c
}

func (m *MemoryStore) PutHub(h domain.DistributionHub) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hubs[h.ID] = h
}

func (m *MemoryStore) PutStatus(s domain.OrderStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses[s.ID] = s
}

func (m *MemoryStore) PutProduct(p domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.productsByID[p.ID] = p
	if p.ID >= m.nextProdID {
		m.nextProdID = p.ID + 1
	}
}

// ProductRepository implementation
func (m *MemoryStore) Create(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	p.ID = m.nextProdID
	m.nextProdID++
	m.productsByID[p.ID] = *p
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	p, ok := m.productsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := p
	return &cp, nil
}

func (m *MemoryStore) Update(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.productsByID[p.ID]; !ok {
		return ErrNotFound
	}
	m.productsByID[p.ID] = *p
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id int64) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.productsByID[id]; !ok {
		return ErrNotFound
	}
	delete(m.productsByID, id)
	return nil
}

// Lookup-only repositories on wrapper types
type MemoryCustomers struct{ store *MemoryStore }

func NewMemoryCustomers(store *MemoryStore) *MemoryCustomers { return &MemoryCustomers{store: store} }

var _ CustomerRepository = (*MemoryCustomers)(nil)

func (mc *MemoryCustomers) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	c, ok := mc.store.customers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

type MemoryHubs struct{ store *MemoryStore }

func NewMemoryHubs(store *MemoryStore) *MemoryHubs { return &MemoryHubs{store: store} }

var _ DistributionHubRepository = (*MemoryHubs)(nil)

func (mh *MemoryHubs) GetByID(ctx context.Context, id int64) (*domain.DistributionHub, error) {
	mh.store.rlock(ctx)
	defer mh.store.runlock(ctx)
	h, ok := mh.store.hubs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &h, nil
}

type MemoryStatuses struct{ store *MemoryStore }

func NewMemoryStatuses(store *MemoryStore) *MemoryStatuses { return &MemoryStatuses{store: store} }

var _ OrderStatusRepository = (*MemoryStatuses)(nil)

func (ms *MemoryStatuses) GetByID(ctx context.Context, id int64) (*domain.OrderStatus, error) {
	ms.store.rlock(ctx)
	defer ms.store.runlock(ctx)
	s, ok := ms.store.statuses[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

// OrderRepository implementation on wrapper type
type MemoryOrders struct{ store *MemoryStore }

func NewMemoryOrders(store *MemoryStore) *MemoryOrders { return &MemoryOrders{store: store} }

var _ OrderRepository = (*MemoryOrders)(nil)

func (mo *MemoryOrders) Create(ctx context.Context, o *domain.Order) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	o.ID = mo.store.nextOrderID
	mo.store.nextOrderID++
	o.CreatedAt = time.Now().UTC()
	mo.store.ordersByID[o.ID] = cloneOrder(*o)
	return nil
}

func (mo *MemoryOrders) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	o, ok := mo.store.ordersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := cloneOrder(o)
	return &cp, nil
}

func (mo *MemoryOrders) ListByHub(ctx context.Context, hubID int64) ([]domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	out := make([]domain.Order, 0)
	for _, o := range mo.store.ordersByID {
		if o.DistributionHub.ID != hubID {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Tx manager using write lock to emulate transaction boundary
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// Для in-memory используем блокировку записи и помечаем контекст, чтобы репозитории пропускали внутренние локи
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, true)
	return fn(ctx)
}
