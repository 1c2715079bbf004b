package repository

import "orderhub/internal/domain"

// SeedData справочные данные для in-memory хранилища
type SeedData struct {
	Customers []domain.Customer
	Products  []domain.Product
	Hubs      []domain.DistributionHub
	Statuses  []domain.OrderStatus
}

// DefaultStatuses статусы, которые должны существовать всегда
func DefaultStatuses() []domain.OrderStatus {
	return []domain.OrderStatus{
		{ID: domain.OrderStatusActive, Name: "Active"},
		{ID: domain.OrderStatusDelivered, Name: "Delivered"},
		{ID: domain.OrderStatusCancelled, Name: "Cancelled"},
	}
}

// Seed заполняет хранилище. Если статусы не заданы, берутся DefaultStatuses.
func Seed(store *MemoryStore, data SeedData) {
	statuses := data.Statuses
	if len(statuses) == 0 {
		statuses = DefaultStatuses()
	}
	for _, s := range statuses {
		store.PutStatus(s)
	}
	for _, h := range data.Hubs {
		store.PutHub(h)
	}
	for _, c := range data.Customers {
		store.PutCustomer(c)
	}
	for _, p := range data.Products {
		store.PutProduct(p)
	}
}
