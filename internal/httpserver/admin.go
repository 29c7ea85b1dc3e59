package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mawasim-api/internal/domain"
	"mawasim-api/internal/invoice"
	ordersvc "mawasim-api/internal/service/order"
	reportsvc "mawasim-api/internal/service/report"
)

type orderResponse struct {
	ID            string              `json:"id"`
	ShortID       string              `json:"shortId"`
	Customer      domain.Customer     `json:"customer"`
	Items         []orderItemResponse `json:"items"`
	Total         float64             `json:"total"`
	Status        string              `json:"status"`
	PaymentMethod string              `json:"paymentMethod"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     *time.Time          `json:"updatedAt,omitempty"`
}

type orderItemResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

func toOrderResponse(o domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemResponse{
			ID:    it.ProductID,
			Name:  it.Name,
			Price: float64(it.PriceCents) / 100,
			Qty:   it.Qty,
		})
	}
	return orderResponse{
		ID:            o.ID,
		ShortID:       o.ShortID(),
		Customer:      o.Customer,
		Items:         items,
		Total:         o.Total(),
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func listOrdersHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		out := make([]orderResponse, 0, len(orders))
		for _, o := range orders {
			out = append(out, toOrderResponse(o))
		}
		c.JSON(http.StatusOK, gin.H{"orders": out})
	}
}

type updateStatusRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

func updateStatusHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Malformed request body"})
			return
		}
		err := svc.UpdateStatus(c.Request.Context(), req.OrderID, req.Status)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"success": true})
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		default:
			if ve, ok := domain.AsValidation(err); ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": firstMessage(ve.Fields)})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		}
	}
}

func listCustomersHandler(svc *reportsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		customers, err := svc.Customers(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
			return
		}
		if customers == nil {
			customers = []reportsvc.Customer{}
		}
		c.JSON(http.StatusOK, gin.H{"customers": customers})
	}
}

func statsHandler(svc *reportsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

type invoiceRequest struct {
	OrderID string `json:"orderId"`
}

func invoiceHandler(svc *ordersvc.Service, storeName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req invoiceRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid order ID"})
			return
		}
		order, err := svc.Get(c.Request.Context(), req.OrderID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusOK)
		if err := invoice.Render(c.Writer, storeName, *order); err != nil {
			// Headers are already out; nothing useful left to send.
			_ = c.Error(err)
		}
	}
}

func firstMessage(fields map[string]string) string {
	for _, msg := range fields {
		return msg
	}
	return "Validation failed"
}
