package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"orderhub/internal/domain"
	"orderhub/internal/repository"
)

type fixture struct {
	store *repository.MemoryStore
	repos Repositories
}

func setup(t *testing.T) fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	repository.Seed(store, repository.SeedData{
		Customers: []domain.Customer{{ID: 1, Name: "Alice"}},
		Hubs: []domain.DistributionHub{
			{ID: 1, Name: "North"},
			{ID: 2, Name: "South"},
		},
		Products: []domain.Product{
			{ID: 1, Name: "Beans", ImagePath: "/img/beans.png", Price: decimal.RequireFromString("24.90")},
			{ID: 2, Name: "Mug", ImagePath: "/img/mug.png", Price: decimal.RequireFromString("9.50")},
		},
	})
	return fixture{
		store: store,
		repos: Repositories{
			Customers: repository.NewMemoryCustomers(store),
			Products:  store,
			Hubs:      repository.NewMemoryHubs(store),
			Statuses:  repository.NewMemoryStatuses(store),
			Orders:    repository.NewMemoryOrders(store),
			Tx:        repository.NewMemoryTx(store),
		},
	}
}

func i64(v int64) *int64 { return &v }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func item(productID, qty int64) OrderItemRequest {
	return OrderItemRequest{ProductID: i64(productID), Quantity: i64(qty)}
}

// failingOrders fails every write; reads behave like an empty store.
type failingOrders struct{ err error }

func (f failingOrders) Create(context.Context, *domain.Order) error { return f.err }
func (f failingOrders) GetByID(context.Context, int64) (*domain.Order, error) {
	return nil, repository.ErrNotFound
}
func (f failingOrders) ListByHub(context.Context, int64) ([]domain.Order, error) {
	return nil, f.err
}
