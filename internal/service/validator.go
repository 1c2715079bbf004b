package service

import (
	"context"
	"errors"
	"fmt"

	"orderhub/internal/domain"
	"orderhub/internal/repository"
)

// Validator проверяет запрос на создание заказа. Правила применяются в
// фиксированном порядке, возвращается только первая ошибка.
type Validator struct {
	customers repository.CustomerRepository
	products  repository.ProductRepository
	orders    repository.OrderRepository
}

func NewValidator(customers repository.CustomerRepository, products repository.ProductRepository, orders repository.OrderRepository) *Validator {
	return &Validator{customers: customers, products: products, orders: orders}
}

func invalid(code domain.ErrorCode) error {
	return domain.NewValidationError(code)
}

// Validate returns nil, a *domain.ValidationError, or a lookup failure other than not-found.
func (v *Validator) Validate(ctx context.Context, req OrderCreationRequest) error {
	if req.OrderItems == nil || req.Total == nil || req.CustomerID == nil {
		return invalid(domain.MissingRequiredInputs)
	}
	if !domain.ValidTotal(*req.Total) {
		return invalid(domain.InvalidOrderTotal)
	}
	if len(req.OrderItems) == 0 {
		return invalid(domain.MissingOrderItems)
	}

	if _, err := v.customers.GetByID(ctx, *req.CustomerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return invalid(domain.NonExistingCustomer)
		}
		return fmt.Errorf("lookup customer %d: %w", *req.CustomerID, err)
	}

	for _, it := range req.OrderItems {
		if it.ProductID == nil || it.Quantity == nil {
			return invalid(domain.MissingRequiredInputs)
		}
		if *it.Quantity <= 0 {
			return invalid(domain.InvalidOrderQuantity)
		}
		if *it.ProductID <= 0 {
			return invalid(domain.NonExistingProduct)
		}
		if _, err := v.products.GetByID(ctx, *it.ProductID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return invalid(domain.NonExistingProduct)
			}
			return fmt.Errorf("lookup product %d: %w", *it.ProductID, err)
		}
	}
	return nil
}

// ValidateOrderID проверяет, что заказ с таким id существует
func (v *Validator) ValidateOrderID(ctx context.Context, id *int64) error {
	if id == nil || *id <= 0 {
		return invalid(domain.NonExistingOrder)
	}
	if _, err := v.orders.GetByID(ctx, *id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return invalid(domain.NonExistingOrder)
		}
		return fmt.Errorf("lookup order %d: %w", *id, err)
	}
	return nil
}

// ValidateOrderStatusID допускает только конечные статусы: delivered и cancelled.
// Пригодится для операции смены статуса.
func ValidateOrderStatusID(id *int64) error {
	if id == nil || (*id != domain.OrderStatusDelivered && *id != domain.OrderStatusCancelled) {
		return invalid(domain.NonExistingOrderStatus)
	}
	return nil
}
