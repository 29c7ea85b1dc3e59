package seed

import (
	"context"
	"fmt"
	"log"

	"mawasim-api/internal/catalog"
	"mawasim-api/internal/domain"
	orderrepo "mawasim-api/internal/repository/order"
)

// Apply inserts a demo order so the dashboard has something to show during
// manual testing. It goes through the regular repository, so ids and
// timestamps are store-assigned like real submissions.
func Apply(ctx context.Context, repo orderrepo.Repository, cat *catalog.Catalog, logger *log.Logger) error {
	lines := []struct {
		id  string
		qty int
	}{
		{"olive-oil-1L", 2},
		{"zaatar-500g", 1},
		{"medjool-dates-1kg", 1},
	}

	var items []domain.OrderItem
	var totalCents int64
	for _, line := range lines {
		p, ok := cat.Get(line.id)
		if !ok {
			return fmt.Errorf("seed product %q not in catalog", line.id)
		}
		items = append(items, domain.OrderItem{
			ProductID:  p.ID,
			Name:       p.Name,
			PriceCents: p.PriceCents,
			Qty:        line.qty,
		})
		totalCents += p.PriceCents * int64(line.qty)
	}

	order := domain.Order{
		Customer: domain.Customer{
			Name:    "آية خالد",
			Phone:   "+49 170 1234567",
			Address: "Hauptstraße 1, Berlin",
			Notes:   "الرجاء الاتصال قبل التوصيل",
		},
		Items:         items,
		TotalCents:    totalCents,
		Status:        domain.StatusNew,
		PaymentMethod: domain.PaymentCashOnDelivery,
		Meta:          domain.OrderMeta{IP: "127.0.0.1", UserAgent: "seed"},
	}

	created, err := repo.Create(ctx, order)
	if err != nil {
		return fmt.Errorf("create demo order: %w", err)
	}
	logger.Printf("seed: demo order %s (#%s) total_cents=%d", created.ID, created.ShortID(), created.TotalCents)
	return nil
}
