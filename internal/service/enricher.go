package service

import (
	"context"
	"errors"
	"fmt"

	"orderhub/internal/domain"
	"orderhub/internal/repository"
)

// ErrCatalogChanged товар прошёл валидацию, но к моменту обогащения исчез из каталога
var ErrCatalogChanged = errors.New("product disappeared from catalog after validation")

// Enricher копирует в позиции заказа название, картинку и цену из каталога
type Enricher struct {
	products repository.ProductRepository
}

func NewEnricher(products repository.ProductRepository) *Enricher {
	return &Enricher{products: products}
}

// Enrich expects items that already passed Validate.
func (e *Enricher) Enrich(ctx context.Context, items []OrderItemRequest) ([]domain.OrderItem, error) {
	out := make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		p, err := e.products.GetByID(ctx, *it.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("enrich product %d: %w", *it.ProductID, ErrCatalogChanged)
			}
			return nil, fmt.Errorf("enrich product %d: %w", *it.ProductID, err)
		}
		out = append(out, domain.OrderItem{
			ProductID: p.ID,
			Quantity:  *it.Quantity,
			Name:      p.Name,
			ImagePath: p.ImagePath,
			Price:     p.Price,
		})
	}
	return out, nil
}
