package invoice

import (
	"strings"
	"testing"
	"time"

	"mawasim-api/internal/domain"
)

func TestRender(t *testing.T) {
	order := domain.Order{
		ID: "7f9c2e44-5d17-4c7b-9e02-91d4f0a1b2c3",
		Customer: domain.Customer{
			Name:    "آية خالد",
			Phone:   "+49 170 1234567",
			Address: "شارع الزيتون 12",
			Notes:   "الطابق الثالث",
		},
		Items: []domain.OrderItem{
			{ProductID: "olive-oil-1L", Name: "زيت زيتون بكر ممتاز ١ لتر", PriceCents: 950, Qty: 2},
			{ProductID: "zaatar-500g", Name: "زعتر بلدي ٥٠٠ غرام", PriceCents: 650, Qty: 1},
		},
		TotalCents:    2550,
		Status:        domain.StatusConfirmed,
		PaymentMethod: domain.PaymentCashOnDelivery,
		CreatedAt:     time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
	}

	var buf strings.Builder
	if err := Render(&buf, "مواسم الخير", order); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"مواسم الخير",
		"A1B2C3",
		"آية خالد",
		"+49 170 1234567",
		"شارع الزيتون 12",
		"مؤكد",
		"2025-06-01 12:30",
		"9.50",
		"19.00",
		"25.50",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("invoice missing %q", want)
		}
	}
}

func TestRenderEscapesMarkup(t *testing.T) {
	order := domain.Order{
		ID:       "7f9c2e44-5d17-4c7b-9e02-91d4f0a1b2c3",
		Customer: domain.Customer{Name: "<b>bold</b>", Phone: "+49 170 1234567", Address: "x"},
		Items: []domain.OrderItem{
			{ProductID: "olive-oil-1L", Name: "oil", PriceCents: 950, Qty: 1},
		},
		TotalCents: 950,
		Status:     domain.StatusNew,
		CreatedAt:  time.Now(),
	}

	var buf strings.Builder
	if err := Render(&buf, "مواسم الخير", order); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(buf.String(), "<b>bold</b>") {
		t.Fatal("customer name rendered unescaped")
	}
}

func TestRenderUnknownStatusFallsThrough(t *testing.T) {
	order := domain.Order{
		ID:        "7f9c2e44-5d17-4c7b-9e02-91d4f0a1b2c3",
		Customer:  domain.Customer{Name: "Aya", Phone: "+49 170 1234567", Address: "x"},
		Status:    "archived",
		CreatedAt: time.Now(),
	}
	var buf strings.Builder
	if err := Render(&buf, "مواسم الخير", order); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "archived") {
		t.Fatal("unknown status should render verbatim")
	}
}
