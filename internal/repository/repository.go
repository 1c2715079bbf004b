package repository

import (
	"context"
	"errors"

	"orderhub/internal/domain"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// CustomerRepository поиск покупателей
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

// DistributionHubRepository поиск складов
type DistributionHubRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.DistributionHub, error)
}

// OrderStatusRepository справочник статусов заказа
type OrderStatusRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.OrderStatus, error)
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByHub(ctx context.Context, hubID int64) ([]domain.Order, error)
}

// TxManager абстракция транзакции. Для in-memory — глобальная блокировка записи.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

func cloneOrder(o domain.Order) domain.Order {
	cp := o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	return cp
}
