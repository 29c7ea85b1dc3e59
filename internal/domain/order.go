package domain

import (
	"strings"
	"time"
)

// Order statuses. An order is created as StatusNew and only ever moves
// between the values below.
const (
	StatusNew       = "new"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Statuses lists every valid order status, in lifecycle order.
var Statuses = []string{StatusNew, StatusConfirmed, StatusPreparing, StatusDelivered, StatusCancelled}

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// PaymentCashOnDelivery is the only payment method the shop accepts.
const PaymentCashOnDelivery = "cash_on_delivery"

// Customer holds the sanitized contact fields of a submitted order.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes,omitempty"`
}

// OrderItem is a validated cart line. Name and PriceCents are copied from
// the catalog at validation time, never from the request.
type OrderItem struct {
	ProductID  string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Qty        int    `json:"qty"`
}

// OrderMeta captures transport metadata recorded with a submission.
type OrderMeta struct {
	IP        string `json:"ip"`
	UserAgent string `json:"userAgent"`
}

// Order is a persisted customer purchase request. Items and TotalCents are
// immutable after creation; Status is the only field mutated afterwards.
type Order struct {
	ID            string      `json:"id"`
	Customer      Customer    `json:"customer"`
	Items         []OrderItem `json:"items"`
	TotalCents    int64       `json:"totalCents"`
	Status        string      `json:"status"`
	PaymentMethod string      `json:"paymentMethod"`
	Meta          OrderMeta   `json:"meta"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     *time.Time  `json:"updatedAt,omitempty"`
}

// ShortID derives the human-facing order number: the last six characters
// of the store-assigned identifier, upper-cased.
func (o Order) ShortID() string {
	id := o.ID
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return strings.ToUpper(id)
}

// Total returns the order total in whole currency units.
func (o Order) Total() float64 {
	return float64(o.TotalCents) / 100
}
