package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"orderhub/internal/domain"
)

func TestMemoryStore_ProductCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	p := domain.Product{Name: "A", ImagePath: "/img/a.png", Price: decimal.NewFromInt(10)}
	if err := store.Create(ctx, &p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == 0 {
		t.Fatalf("no id")
	}

	got, err := store.GetByID(ctx, p.ID)
	if err != nil || got.ID != p.ID {
		t.Fatalf("get: %v", err)
	}

	p.Price = decimal.NewFromInt(12)
	if err := store.Update(ctx, &p); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := store.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetByID(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryStore_PutProductAdvancesIDs(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.PutProduct(domain.Product{ID: 7, Name: "Seeded"})

	p := domain.Product{Name: "Next"}
	if err := store.Create(ctx, &p); err != nil {
		t.Fatal(err)
	}
	if p.ID != 8 {
		t.Fatalf("expected id 8, got %v", p.ID)
	}
}

func TestSeed_ReferenceLookups(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	Seed(store, SeedData{
		Customers: []domain.Customer{{ID: 1, Name: "Ann"}},
		Hubs:      []domain.DistributionHub{{ID: 1, Name: "North"}, {ID: 2, Name: "South"}},
	})

	if c, err := NewMemoryCustomers(store).GetByID(ctx, 1); err != nil || c.Name != "Ann" {
		t.Fatalf("customer lookup: %v", err)
	}
	if _, err := NewMemoryCustomers(store).GetByID(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if h, err := NewMemoryHubs(store).GetByID(ctx, 2); err != nil || h.Name != "South" {
		t.Fatalf("hub lookup: %v", err)
	}
	// default statuses are seeded when none are given
	s, err := NewMemoryStatuses(store).GetByID(ctx, domain.OrderStatusActive)
	if err != nil || s.Name != "Active" {
		t.Fatalf("status lookup: %v", err)
	}
}

func TestMemoryOrders_ListByHub(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	orders := NewMemoryOrders(store)

	for _, hub := range []int64{1, 2, 1} {
		o := domain.Order{CustomerID: 1, DistributionHub: domain.DistributionHub{ID: hub}, Total: decimal.NewFromInt(5)}
		if err := orders.Create(ctx, &o); err != nil {
			t.Fatal(err)
		}
		if o.CreatedAt.IsZero() {
			t.Fatalf("created_at not set")
		}
	}

	list, err := orders.ListByHub(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != 1 || list[1].ID != 3 {
		t.Fatalf("unexpected hub 1 orders: %+v", list)
	}

	empty, err := orders.ListByHub(ctx, 42)
	if err != nil {
		t.Fatal(err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}
}

func TestMemoryOrders_StoredItemsAreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	orders := NewMemoryOrders(store)

	o := domain.Order{Items: []domain.OrderItem{{ProductID: 1, Quantity: 1, Price: decimal.NewFromInt(3)}}}
	if err := orders.Create(ctx, &o); err != nil {
		t.Fatal(err)
	}
	o.Items[0].Price = decimal.NewFromInt(100)

	got, err := orders.GetByID(ctx, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Items[0].Price.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("stored item mutated through caller slice: %v", got.Items[0].Price)
	}
}

func TestMemoryTx_TransactionalCreate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	tx := NewMemoryTx(store)
	orders := NewMemoryOrders(store)
	Seed(store, SeedData{Hubs: []domain.DistributionHub{{ID: 1, Name: "North"}}})

	// lookups and insert inside one lock; nested locking must not deadlock
	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		hub, err := NewMemoryHubs(store).GetByID(ctx, 1)
		if err != nil {
			return err
		}
		o := domain.Order{CustomerID: 1, DistributionHub: *hub}
		return orders.Create(ctx, &o)
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	list, _ := orders.ListByHub(context.Background(), 1)
	if len(list) != 1 {
		t.Fatalf("expected 1 order, got %v", len(list))
	}
}
