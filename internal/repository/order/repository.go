package order

import (
	"context"
	"time"

	"mawasim-api/internal/domain"
)

// Repository persists orders. Create assigns the document id and creation
// timestamp on the store side, never from the client.
type Repository interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, limit int) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Totals(ctx context.Context) (Totals, error)
	StatusCounts(ctx context.Context) ([]StatusCount, error)
	TopProducts(ctx context.Context, limit int) ([]ProductCount, error)
	RevenueByDay(ctx context.Context, days int) ([]DayRevenue, error)
}

// Totals aggregates revenue over all orders.
type Totals struct {
	Orders       int64
	RevenueCents int64
}

// StatusCount is the number of orders in one status.
type StatusCount struct {
	Status string
	Count  int64
}

// ProductCount is the total quantity sold of one product.
type ProductCount struct {
	ProductID string
	Name      string
	Qty       int64
}

// DayRevenue is the revenue booked on one calendar day.
type DayRevenue struct {
	Day          time.Time
	RevenueCents int64
}
