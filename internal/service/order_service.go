package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"orderhub/internal/domain"
	"orderhub/internal/logging"
	"orderhub/internal/metrics"
	"orderhub/internal/repository"
)

// ErrReferenceDataMissing склад или начальный статус не найдены в справочнике
var ErrReferenceDataMissing = errors.New("reference data missing")

// Repositories коллабораторы, нужные OrderService
type Repositories struct {
	Customers repository.CustomerRepository
	Products  repository.ProductRepository
	Hubs      repository.DistributionHubRepository
	Statuses  repository.OrderStatusRepository
	Orders    repository.OrderRepository
	Tx        repository.TxManager
}

// OrderService реализует логику заказов: создание и выборку по складу
type OrderService struct {
	validator *Validator
	enricher  *Enricher
	hubs      repository.DistributionHubRepository
	statuses  repository.OrderStatusRepository
	orders    repository.OrderRepository
	tx        repository.TxManager
	selector  HubSelector

	reconcileTotal bool
}

type Option func(*OrderService)

// WithTotalReconciliation включает отказ (InvalidOrderTotal), если Total не равен сумме позиций.
// По умолчанию расхождение только логируется.
func WithTotalReconciliation(enabled bool) Option {
	return func(s *OrderService) { s.reconcileTotal = enabled }
}

func NewOrderService(repos Repositories, selector HubSelector, opts ...Option) *OrderService {
	s := &OrderService{
		validator: NewValidator(repos.Customers, repos.Products, repos.Orders),
		enricher:  NewEnricher(repos.Products),
		hubs:      repos.Hubs,
		statuses:  repos.Statuses,
		orders:    repos.Orders,
		tx:        repos.Tx,
		selector:  selector,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateOrder валидирует запрос, назначает склад, обогащает позиции и сохраняет заказ
func (s *OrderService) CreateOrder(ctx context.Context, req OrderCreationRequest) (*domain.Order, error) {
	log := logging.FromCtx(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		s.observeRejection(err)
		return nil, err
	}

	var (
		created    *domain.Order
		itemsTotal decimal.Decimal
		mismatch   bool
	)
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		hubID := s.selector.Choose()
		hub, err := s.hubs.GetByID(ctx, hubID)
		if err != nil {
			return referenceErr("distribution hub", hubID, err)
		}

		items, err := s.enricher.Enrich(ctx, req.OrderItems)
		if err != nil {
			return err
		}

		status, err := s.statuses.GetByID(ctx, domain.OrderStatusActive)
		if err != nil {
			return referenceErr("order status", domain.OrderStatusActive, err)
		}

		o := domain.Order{
			CustomerID:      *req.CustomerID,
			DistributionHub: *hub,
			Status:          *status,
			Total:           *req.Total,
			Items:           items,
		}
		itemsTotal = o.ItemsTotal()
		mismatch = !itemsTotal.Equal(o.Total)
		if mismatch && s.reconcileTotal {
			return invalid(domain.InvalidOrderTotal)
		}

		if err := s.orders.Create(ctx, &o); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		created = &o
		return nil
	})
	// логируем вне транзакции: MemoryTx держит блокировку хранилища
	if mismatch {
		metrics.TotalMismatch()
		log.Warn("order total differs from items total",
			"customer_id", *req.CustomerID, "total", req.Total.String(), "items_total", itemsTotal.String())
	}
	if err != nil {
		s.observeRejection(err)
		return nil, err
	}

	metrics.OrderCreated(created.DistributionHub.ID)
	log.Info("order created",
		"order_id", created.ID,
		"customer_id", created.CustomerID,
		"hub_id", created.DistributionHub.ID,
		"items", len(created.Items))
	return created, nil
}

// ListOrders возвращает заказы склада. Существование склада не проверяется.
func (s *OrderService) ListOrders(ctx context.Context, hubID *int64) ([]domain.Order, error) {
	if hubID == nil {
		return nil, invalid(domain.NonExistingDistributionHub)
	}
	list, err := s.orders.ListByHub(ctx, *hubID)
	if err != nil {
		return nil, fmt.Errorf("list orders for hub %d: %w", *hubID, err)
	}
	if list == nil {
		list = []domain.Order{}
	}
	return list, nil
}

// GetOrder возвращает заказ по id
func (s *OrderService) GetOrder(ctx context.Context, id *int64) (*domain.Order, error) {
	if err := s.validator.ValidateOrderID(ctx, id); err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, *id)
}

func (s *OrderService) observeRejection(err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		metrics.ValidationFailed(ve.Code)
	}
}

func referenceErr(what string, id int64, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, ErrReferenceDataMissing)
	}
	return fmt.Errorf("lookup %s %d: %w", what, id, err)
}
