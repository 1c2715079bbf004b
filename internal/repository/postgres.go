package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"orderhub/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgTxKey struct{}

// PgStore хранилище на PostgreSQL. Внутри PgTx.WithTransaction репозитории работают через pgx.Tx из контекста.
type PgStore struct{ pool *pgxpool.Pool }

func NewPgStore(pool *pgxpool.Pool) *PgStore { return &PgStore{pool: pool} }

func (s *PgStore) q(ctx context.Context) querier {
	if tx, ok := ctx.Value(pgTxKey{}).(pgx.Tx); ok {
		return tx
	}
	return s.pool
}

// Migrate создаёт таблицы и базовые статусы, если их нет
func (s *PgStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// PgTx TxManager поверх pgx.Tx
type PgTx struct{ store *PgStore }

func NewPgTx(store *PgStore) *PgTx { return &PgTx{store: store} }

var _ TxManager = (*PgTx)(nil)

func (t *PgTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(pgTxKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}
	return pgx.BeginFunc(ctx, t.store.pool, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, pgTxKey{}, tx))
	})
}

type PgCustomers struct{ store *PgStore }

func NewPgCustomers(store *PgStore) *PgCustomers { return &PgCustomers{store: store} }

var _ CustomerRepository = (*PgCustomers)(nil)

func (r *PgCustomers) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var c domain.Customer
	err := r.store.q(ctx).QueryRow(ctx,
		`SELECT customer_id, name, email FROM customers WHERE customer_id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Email)
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

type PgProducts struct{ store *PgStore }

func NewPgProducts(store *PgStore) *PgProducts { return &PgProducts{store: store} }

var _ ProductRepository = (*PgProducts)(nil)

func (r *PgProducts) Create(ctx context.Context, p *domain.Product) error {
	return r.store.q(ctx).QueryRow(ctx,
		`INSERT INTO products (name, image_path, price) VALUES ($1, $2, $3) RETURNING product_id`,
		p.Name, p.ImagePath, p.Price,
	).Scan(&p.ID)
}

func (r *PgProducts) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.store.q(ctx).QueryRow(ctx,
		`SELECT product_id, name, image_path, price FROM products WHERE product_id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.ImagePath, &p.Price)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *PgProducts) Update(ctx context.Context, p *domain.Product) error {
	tag, err := r.store.q(ctx).Exec(ctx,
		`UPDATE products SET name = $2, image_path = $3, price = $4 WHERE product_id = $1`,
		p.ID, p.Name, p.ImagePath, p.Price,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgProducts) Delete(ctx context.Context, id int64) error {
	tag, err := r.store.q(ctx).Exec(ctx, `DELETE FROM products WHERE product_id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type PgHubs struct{ store *PgStore }

func NewPgHubs(store *PgStore) *PgHubs { return &PgHubs{store: store} }

var _ DistributionHubRepository = (*PgHubs)(nil)

func (r *PgHubs) GetByID(ctx context.Context, id int64) (*domain.DistributionHub, error) {
	var h domain.DistributionHub
	err := r.store.q(ctx).QueryRow(ctx,
		`SELECT distribution_hub_id, name, address FROM distribution_hubs WHERE distribution_hub_id = $1`, id,
	).Scan(&h.ID, &h.Name, &h.Address)
	if err != nil {
		return nil, notFound(err)
	}
	return &h, nil
}

type PgStatuses struct{ store *PgStore }

func NewPgStatuses(store *PgStore) *PgStatuses { return &PgStatuses{store: store} }

var _ OrderStatusRepository = (*PgStatuses)(nil)

func (r *PgStatuses) GetByID(ctx context.Context, id int64) (*domain.OrderStatus, error) {
	var s domain.OrderStatus
	err := r.store.q(ctx).QueryRow(ctx,
		`SELECT order_status_id, name FROM order_statuses WHERE order_status_id = $1`, id,
	).Scan(&s.ID, &s.Name)
	if err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

type PgOrders struct{ store *PgStore }

func NewPgOrders(store *PgStore) *PgOrders { return &PgOrders{store: store} }

var _ OrderRepository = (*PgOrders)(nil)

const selectOrders = `
SELECT o.order_id, o.customer_id, o.total, o.created_at,
       h.distribution_hub_id, h.name, h.address,
       s.order_status_id, s.name
FROM orders o
JOIN distribution_hubs h ON h.distribution_hub_id = o.distribution_hub_id
JOIN order_statuses s ON s.order_status_id = o.order_status_id`

// Create пишет заказ и позиции. Вне транзакции открывает собственную.
func (r *PgOrders) Create(ctx context.Context, o *domain.Order) error {
	return NewPgTx(r.store).WithTransaction(ctx, func(ctx context.Context) error {
		q := r.store.q(ctx)
		err := q.QueryRow(ctx, `
INSERT INTO orders (customer_id, distribution_hub_id, order_status_id, total)
VALUES ($1, $2, $3, $4)
RETURNING order_id, created_at`,
			o.CustomerID, o.DistributionHub.ID, o.Status.ID, o.Total,
		).Scan(&o.ID, &o.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		for i, it := range o.Items {
			_, err := q.Exec(ctx, `
INSERT INTO order_items (order_id, position, product_id, quantity, name, image_path, price)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				o.ID, i, it.ProductID, it.Quantity, it.Name, it.ImagePath, it.Price,
			)
			if err != nil {
				return fmt.Errorf("insert order item %d: %w", i, err)
			}
		}
		return nil
	})
}

func (r *PgOrders) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	orders, err := r.query(ctx, selectOrders+` WHERE o.order_id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNotFound
	}
	return &orders[0], nil
}

func (r *PgOrders) ListByHub(ctx context.Context, hubID int64) ([]domain.Order, error) {
	return r.query(ctx, selectOrders+` WHERE o.distribution_hub_id = $1 ORDER BY o.order_id`, hubID)
}

func (r *PgOrders) query(ctx context.Context, sql string, args ...any) ([]domain.Order, error) {
	q := r.store.q(ctx)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0)
	idx := make(map[int64]int)
	ids := make([]int64, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Total, &o.CreatedAt,
			&o.DistributionHub.ID, &o.DistributionHub.Name, &o.DistributionHub.Address,
			&o.Status.ID, &o.Status.Name); err != nil {
			rows.Close()
			return nil, err
		}
		o.Items = make([]domain.OrderItem, 0)
		idx[o.ID] = len(out)
		ids = append(ids, o.ID)
		out = append(out, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}

	items, err := q.Query(ctx, `
SELECT order_id, product_id, quantity, name, image_path, price
FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, position`, ids)
	if err != nil {
		return nil, err
	}
	defer items.Close()
	for items.Next() {
		var orderID int64
		var it domain.OrderItem
		if err := items.Scan(&orderID, &it.ProductID, &it.Quantity, &it.Name, &it.ImagePath, &it.Price); err != nil {
			return nil, err
		}
		i := idx[orderID]
		out[i].Items = append(out[i].Items, it)
	}
	return out, items.Err()
}
