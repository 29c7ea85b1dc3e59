package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"mawasim-api/internal/domain"
	orderrepo "mawasim-api/internal/repository/order"
)

type stubRepo struct {
	orders       []domain.Order
	listErr      error
	totals       orderrepo.Totals
	statusCounts []orderrepo.StatusCount
	topProducts  []orderrepo.ProductCount
	revenueByDay []orderrepo.DayRevenue
}

func (s *stubRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	return s.orders, s.listErr
}

func (s *stubRepo) Totals(_ context.Context) (orderrepo.Totals, error) {
	return s.totals, nil
}

func (s *stubRepo) StatusCounts(_ context.Context) ([]orderrepo.StatusCount, error) {
	return s.statusCounts, nil
}

func (s *stubRepo) TopProducts(_ context.Context, _ int) ([]orderrepo.ProductCount, error) {
	return s.topProducts, nil
}

func (s *stubRepo) RevenueByDay(_ context.Context, _ int) ([]orderrepo.DayRevenue, error) {
	return s.revenueByDay, nil
}

func orderAt(phone, name string, totalCents int64, created time.Time) domain.Order {
	return domain.Order{
		ID:         "11112222-3333-4444-5555-66667777" + phone[len(phone)-4:],
		Customer:   domain.Customer{Name: name, Phone: phone, Address: "somewhere"},
		TotalCents: totalCents,
		Status:     domain.StatusNew,
		CreatedAt:  created,
	}
}

func TestCustomersGroupsByPhone(t *testing.T) {
	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	repo := &stubRepo{orders: []domain.Order{
		orderAt("+491701111", "Aya", 1900, base),
		orderAt("+491701111", "Aya", 2500, base.Add(48*time.Hour)),
		orderAt("+491702222", "Omar", 600, base.Add(time.Hour)),
	}}
	svc := New(repo)

	customers, err := svc.Customers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(customers) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(customers))
	}

	// Sorted by total spent, highest first.
	first := customers[0]
	if first.Phone != "+491701111" {
		t.Fatalf("expected biggest spender first, got %s", first.Phone)
	}
	if first.OrderCount != 2 || first.TotalSpentCents != 4400 {
		t.Fatalf("unexpected aggregation: %+v", first)
	}
	if first.LastOrderAt == nil || !first.LastOrderAt.Equal(base.Add(48*time.Hour)) {
		t.Fatalf("unexpected last order time: %v", first.LastOrderAt)
	}
	if len(first.Orders) != 2 {
		t.Fatalf("expected 2 order summaries, got %d", len(first.Orders))
	}
}

func TestCustomersFallsBackToName(t *testing.T) {
	o := orderAt("+490000000", "Walk-in", 100, time.Now())
	o.Customer.Phone = ""
	repo := &stubRepo{orders: []domain.Order{o}}
	svc := New(repo)

	customers, err := svc.Customers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(customers) != 1 || customers[0].Name != "Walk-in" {
		t.Fatalf("unexpected customers: %+v", customers)
	}
}

func TestCustomersPropagatesError(t *testing.T) {
	repo := &stubRepo{listErr: errors.New("boom")}
	svc := New(repo)
	if _, err := svc.Customers(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestStats(t *testing.T) {
	day := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	repo := &stubRepo{
		totals: orderrepo.Totals{Orders: 4, RevenueCents: 10000},
		statusCounts: []orderrepo.StatusCount{
			{Status: "new", Count: 3},
			{Status: "delivered", Count: 1},
		},
		topProducts: []orderrepo.ProductCount{
			{ProductID: "olive-oil-1L", Name: "زيت زيتون", Qty: 7},
		},
		revenueByDay: []orderrepo.DayRevenue{
			{Day: day, RevenueCents: 4500},
		},
	}
	svc := New(repo)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Orders != 4 || stats.RevenueCents != 10000 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if stats.AvgOrderCents != 2500 {
		t.Fatalf("expected avg 2500, got %d", stats.AvgOrderCents)
	}
	if stats.ByStatus["new"] != 3 || stats.ByStatus["delivered"] != 1 {
		t.Fatalf("unexpected status counts: %v", stats.ByStatus)
	}
	if len(stats.TopProducts) != 1 || stats.TopProducts[0].Qty != 7 {
		t.Fatalf("unexpected top products: %v", stats.TopProducts)
	}
	if len(stats.RevenueByDay) != 1 || stats.RevenueByDay[0].Day != "2025-05-10" {
		t.Fatalf("unexpected revenue series: %v", stats.RevenueByDay)
	}
}

func TestStatsEmpty(t *testing.T) {
	svc := New(&stubRepo{})
	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Orders != 0 || stats.AvgOrderCents != 0 {
		t.Fatalf("unexpected empty stats: %+v", stats)
	}
}
