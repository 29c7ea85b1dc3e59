package order

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mawasim-api/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres builds the Postgres-backed order repository.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	const q = `
INSERT INTO orders (customer, items, total_cents, status, payment_method, meta)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text, created_at
`
	customer, err := json.Marshal(o.Customer)
	if err != nil {
		return nil, err
	}
	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, err
	}
	meta, err := json.Marshal(o.Meta)
	if err != nil {
		return nil, err
	}

	created := o
	err = r.pool.QueryRow(ctx, q, customer, items, o.TotalCents, o.Status, o.PaymentMethod, meta).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		r.logger.Printf("order repo: create error=%v", err)
		return nil, err
	}
	r.logger.Printf("order repo: create id=%s total_cents=%d items=%d", created.ID, created.TotalCents, len(created.Items))
	return &created, nil
}

const selectColumns = `id::text, customer, items, total_cents, status, payment_method, meta, created_at, updated_at`

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT ` + selectColumns + `
FROM orders
WHERE id::text = $1
`
	row := r.pool.QueryRow(ctx, q, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("order repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) List(ctx context.Context, limit int) ([]domain.Order, error) {
	const q = `
SELECT ` + selectColumns + `
FROM orders
ORDER BY created_at DESC
LIMIT $1
`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	const q = `
SELECT ` + selectColumns + `
FROM orders
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("order repo: list all error=%v", err)
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id, status string) error {
	const q = `
UPDATE orders
SET status = $2, updated_at = now()
WHERE id::text = $1
`
	tag, err := r.pool.Exec(ctx, q, id, status)
	if err != nil {
		r.logger.Printf("order repo: update status id=%s error=%v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("order repo: update status id=%s status=%s", id, status)
	return nil
}

func (r *postgresRepo) Totals(ctx context.Context) (Totals, error) {
	const q = `
SELECT COUNT(*), COALESCE(SUM(total_cents), 0)
FROM orders
WHERE status <> 'cancelled'
`
	var t Totals
	if err := r.pool.QueryRow(ctx, q).Scan(&t.Orders, &t.RevenueCents); err != nil {
		r.logger.Printf("order repo: totals error=%v", err)
		return Totals{}, err
	}
	return t, nil
}

func (r *postgresRepo) StatusCounts(ctx context.Context) ([]StatusCount, error) {
	const q = `
SELECT status, COUNT(*)
FROM orders
GROUP BY status
ORDER BY status
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("order repo: status counts error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []StatusCount
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		result = append(result, sc)
	}
	return result, rows.Err()
}

func (r *postgresRepo) TopProducts(ctx context.Context, limit int) ([]ProductCount, error) {
	const q = `
SELECT item->>'id', item->>'name', SUM((item->>'qty')::bigint) AS qty
FROM orders, jsonb_array_elements(items) AS item
WHERE status <> 'cancelled'
GROUP BY 1, 2
ORDER BY qty DESC
LIMIT $1
`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		r.logger.Printf("order repo: top products error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []ProductCount
	for rows.Next() {
		var pc ProductCount
		if err := rows.Scan(&pc.ProductID, &pc.Name, &pc.Qty); err != nil {
			return nil, err
		}
		result = append(result, pc)
	}
	return result, rows.Err()
}

func (r *postgresRepo) RevenueByDay(ctx context.Context, days int) ([]DayRevenue, error) {
	const q = `
SELECT date_trunc('day', created_at), COALESCE(SUM(total_cents), 0)
FROM orders
WHERE status <> 'cancelled'
  AND created_at >= now() - make_interval(days => $1)
GROUP BY 1
ORDER BY 1
`
	rows, err := r.pool.Query(ctx, q, days)
	if err != nil {
		r.logger.Printf("order repo: revenue by day error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []DayRevenue
	for rows.Next() {
		var dr DayRevenue
		if err := rows.Scan(&dr.Day, &dr.RevenueCents); err != nil {
			return nil, err
		}
		result = append(result, dr)
	}
	return result, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o        domain.Order
		customer []byte
		items    []byte
		meta     []byte
	)
	if err := row.Scan(&o.ID, &customer, &items, &o.TotalCents, &o.Status, &o.PaymentMethod, &meta, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(customer, &o.Customer); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, err
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &o.Meta); err != nil {
			return nil, err
		}
	}
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	return result, rows.Err()
}
