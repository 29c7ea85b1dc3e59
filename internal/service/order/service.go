// Package order implements the order intake pipeline: throttle, validate,
// resolve authoritative prices, sanitize and hand the result to storage.
// Every caller goes through this one implementation.
package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strings"

	"mawasim-api/internal/catalog"
	"mawasim-api/internal/domain"
	"mawasim-api/internal/ratelimit"
	"mawasim-api/internal/sanitize"
)

const (
	maxCartItems    = 50
	maxItemQty      = 99
	listLimit       = 100
	userAgentMaxLen = 200
)

type orderRepo interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, limit int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type productCatalog interface {
	Get(id string) (catalog.Product, bool)
}

type publisher interface {
	OrderCreated(ctx context.Context, o domain.Order) error
}

// Service validates submissions and manages the order lifecycle.
type Service struct {
	repo      orderRepo
	catalog   productCatalog
	limiter   ratelimit.Limiter
	publisher publisher
	validate  *fieldValidator
	logger    *log.Logger
}

// New builds a Service. publisher may be nil when no event pipeline is
// configured.
func New(repo orderRepo, cat productCatalog, limiter ratelimit.Limiter, pub publisher, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		repo:      repo,
		catalog:   cat,
		limiter:   limiter,
		publisher: pub,
		validate:  newFieldValidator(),
		logger:    logger,
	}
}

// CustomerInput is the untrusted customer block of a submission.
type CustomerInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Phone   string `json:"phone" validate:"required,phone"`
	Address string `json:"address" validate:"required,max=300"`
	Notes   string `json:"notes" validate:"omitempty,max=500"`
}

// ItemInput is one untrusted cart line. Any price or name a client sends
// is dropped at decode time: only id and qty exist here.
type ItemInput struct {
	ID  string  `json:"id"`
	Qty float64 `json:"qty"`
}

// SubmitInput is the full untrusted submission body.
type SubmitInput struct {
	Customer CustomerInput `json:"customer"`
	Items    []ItemInput   `json:"items"`
}

// Meta carries transport metadata for the submission.
type Meta struct {
	IP        string
	UserAgent string
}

// Submit runs the intake pipeline. Each gate is hard: the first failure
// terminates the flow, except customer field validation which collects
// every bad field before rejecting. The only side effect before the final
// write is the rate-limit increment.
func (s *Service) Submit(ctx context.Context, in SubmitInput, meta Meta) (*domain.Order, error) {
	if !s.limiter.Allow(meta.IP) {
		s.logger.Printf("order intake: rate limited ip=%s", meta.IP)
		return nil, domain.ErrRateLimited
	}

	customer := CustomerInput{
		Name:    strings.TrimSpace(in.Customer.Name),
		Phone:   strings.TrimSpace(in.Customer.Phone),
		Address: strings.TrimSpace(in.Customer.Address),
		Notes:   strings.TrimSpace(in.Customer.Notes),
	}
	if fields := s.validate.customerFields(customer); len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("items", "Cart is empty")
	}
	if len(in.Items) > maxCartItems {
		return nil, domain.NewValidationError("items", "Too many items")
	}

	items := make([]domain.OrderItem, 0, len(in.Items))
	var totalCents int64
	for _, item := range in.Items {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return nil, domain.NewValidationError("items", "Missing product id")
		}
		product, ok := s.catalog.Get(id)
		if !ok {
			return nil, domain.NewValidationError("items", fmt.Sprintf("Unknown product: %s", id))
		}
		qty := int(math.Floor(item.Qty))
		if qty < 1 || qty > maxItemQty {
			return nil, domain.NewValidationError("items", fmt.Sprintf("Invalid quantity for %s", id))
		}
		items = append(items, domain.OrderItem{
			ProductID:  product.ID,
			Name:       product.Name,
			PriceCents: product.PriceCents,
			Qty:        qty,
		})
		totalCents += product.PriceCents * int64(qty)
	}

	userAgent := meta.UserAgent
	if len(userAgent) > userAgentMaxLen {
		userAgent = userAgent[:userAgentMaxLen]
	}

	order := domain.Order{
		Customer: domain.Customer{
			Name:    sanitize.Strip(customer.Name),
			Phone:   customer.Phone,
			Address: sanitize.Strip(customer.Address),
			Notes:   sanitize.Strip(customer.Notes),
		},
		Items:         items,
		TotalCents:    totalCents,
		Status:        domain.StatusNew,
		PaymentMethod: domain.PaymentCashOnDelivery,
		Meta:          domain.OrderMeta{IP: meta.IP, UserAgent: userAgent},
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}
	s.logger.Printf("order intake: accepted id=%s short=%s total_cents=%d", created.ID, created.ShortID(), created.TotalCents)

	if s.publisher != nil {
		if err := s.publisher.OrderCreated(ctx, *created); err != nil {
			// Notification is best effort; the order is already persisted.
			s.logger.Printf("order intake: publish id=%s error=%v", created.ID, err)
		}
	}
	return created, nil
}

// UpdateStatus moves an existing order to one of the known statuses.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) error {
	if strings.TrimSpace(orderID) == "" {
		return domain.NewValidationError("orderId", "Invalid order ID")
	}
	if !domain.ValidStatus(status) {
		return domain.NewValidationError("status",
			fmt.Sprintf("Invalid status. Must be one of: %s", strings.Join(domain.Statuses, ", ")))
	}
	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}
	return nil
}

// Get fetches a single order by its store identifier.
func (s *Service) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

// List returns the most recent orders, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx, listLimit)
}
