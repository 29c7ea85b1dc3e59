// Package report aggregates orders for the admin dashboard: customer
// follow-up lists and sales analytics.
package report

import (
	"context"
	"sort"
	"time"

	"mawasim-api/internal/domain"
	orderrepo "mawasim-api/internal/repository/order"
)

const (
	topProductsLimit = 5
	revenueWindow    = 30 // days
)

type orderRepo interface {
	ListAll(ctx context.Context) ([]domain.Order, error)
	Totals(ctx context.Context) (orderrepo.Totals, error)
	StatusCounts(ctx context.Context) ([]orderrepo.StatusCount, error)
	TopProducts(ctx context.Context, limit int) ([]orderrepo.ProductCount, error)
	RevenueByDay(ctx context.Context, days int) ([]orderrepo.DayRevenue, error)
}

// Service computes read-only aggregates over persisted orders.
type Service struct {
	repo orderRepo
}

func New(repo orderRepo) *Service {
	return &Service{repo: repo}
}

// Customer is one buyer with their order history, grouped by phone number.
type Customer struct {
	Name            string         `json:"name"`
	Phone           string         `json:"phone"`
	Address         string         `json:"address"`
	OrderCount      int            `json:"orderCount"`
	TotalSpentCents int64          `json:"totalSpentCents"`
	LastOrderAt     *time.Time     `json:"lastOrderAt,omitempty"`
	Orders          []OrderSummary `json:"orders"`
}

// OrderSummary is the compact per-order line shown in the customer list.
type OrderSummary struct {
	ID         string    `json:"id"`
	ShortID    string    `json:"shortId"`
	TotalCents int64     `json:"totalCents"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Customers groups all orders by customer phone (name when the phone is
// empty) and sorts buyers by total spent, highest first.
func (s *Service) Customers(ctx context.Context) ([]Customer, error) {
	orders, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]*Customer)
	var keys []string
	for _, o := range orders {
		key := o.Customer.Phone
		if key == "" {
			key = o.Customer.Name
		}
		c, ok := byKey[key]
		if !ok {
			c = &Customer{
				Name:    o.Customer.Name,
				Phone:   o.Customer.Phone,
				Address: o.Customer.Address,
			}
			byKey[key] = c
			keys = append(keys, key)
		}
		c.OrderCount++
		c.TotalSpentCents += o.TotalCents
		created := o.CreatedAt
		if c.LastOrderAt == nil || created.After(*c.LastOrderAt) {
			c.LastOrderAt = &created
		}
		c.Orders = append(c.Orders, OrderSummary{
			ID:         o.ID,
			ShortID:    o.ShortID(),
			TotalCents: o.TotalCents,
			Status:     o.Status,
			CreatedAt:  o.CreatedAt,
		})
	}

	result := make([]Customer, 0, len(keys))
	for _, key := range keys {
		result = append(result, *byKey[key])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalSpentCents > result[j].TotalSpentCents
	})
	return result, nil
}

// Stats is the analytics overview for the dashboard.
type Stats struct {
	Orders        int64            `json:"orders"`
	RevenueCents  int64            `json:"revenueCents"`
	AvgOrderCents int64            `json:"avgOrderCents"`
	ByStatus      map[string]int64 `json:"byStatus"`
	TopProducts   []TopProduct     `json:"topProducts"`
	RevenueByDay  []DayRevenue     `json:"revenueByDay"`
}

type TopProduct struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Qty       int64  `json:"qty"`
}

type DayRevenue struct {
	Day          string `json:"day"`
	RevenueCents int64  `json:"revenueCents"`
}

// Stats aggregates revenue, status breakdown, best sellers and the daily
// revenue series of the trailing 30 days. Cancelled orders are excluded
// from revenue figures.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, err
	}
	statusCounts, err := s.repo.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.repo.TopProducts(ctx, topProductsLimit)
	if err != nil {
		return nil, err
	}
	revenueByDay, err := s.repo.RevenueByDay(ctx, revenueWindow)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Orders:       totals.Orders,
		RevenueCents: totals.RevenueCents,
		ByStatus:     make(map[string]int64, len(statusCounts)),
	}
	if totals.Orders > 0 {
		stats.AvgOrderCents = totals.RevenueCents / totals.Orders
	}
	for _, sc := range statusCounts {
		stats.ByStatus[sc.Status] = sc.Count
	}
	for _, tp := range topProducts {
		stats.TopProducts = append(stats.TopProducts, TopProduct(tp))
	}
	for _, dr := range revenueByDay {
		stats.RevenueByDay = append(stats.RevenueByDay, DayRevenue{
			Day:          dr.Day.Format("2006-01-02"),
			RevenueCents: dr.RevenueCents,
		})
	}
	return stats, nil
}
