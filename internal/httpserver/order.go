package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mawasim-api/internal/catalog"
	"mawasim-api/internal/domain"
	"mawasim-api/internal/metrics"
	ordersvc "mawasim-api/internal/service/order"
)

func listProductsHandler(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		products := cat.List()
		if category := c.Query("category"); category != "" {
			products = cat.ListByCategory(category)
		}
		if products == nil {
			products = []catalog.Product{}
		}
		c.JSON(http.StatusOK, gin.H{
			"products":   products,
			"categories": cat.Categories(),
		})
	}
}

func submitOrderHandler(svc *ordersvc.Service, intake *metrics.Intake) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in ordersvc.SubmitInput
		if err := c.ShouldBindJSON(&in); err != nil {
			intake.Rejected.WithLabelValues(metrics.ReasonInvalid).Inc()
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Malformed request body"})
			return
		}

		meta := ordersvc.Meta{
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		created, err := svc.Submit(c.Request.Context(), in, meta)
		if err != nil {
			writeSubmitError(c, intake, err)
			return
		}

		intake.Accepted.WithLabelValues(created.PaymentMethod).Inc()
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"orderId": created.ShortID(),
			"total":   created.Total(),
		})
	}
}

func writeSubmitError(c *gin.Context, intake *metrics.Intake, err error) {
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		intake.Rejected.WithLabelValues(metrics.ReasonRateLimited).Inc()
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many orders. Please try again later."})
	case errors.Is(err, domain.ErrStorageFailure):
		intake.Rejected.WithLabelValues(metrics.ReasonStorage).Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save order. Please try again."})
	default:
		if ve, ok := domain.AsValidation(err); ok {
			intake.Rejected.WithLabelValues(metrics.ReasonInvalid).Inc()
			// A lone cart-level problem reads better as a plain message.
			if msg, only := ve.Fields["items"]; only && len(ve.Fields) == 1 {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg})
				return
			}
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed", "fields": ve.Fields})
			return
		}
		intake.Rejected.WithLabelValues(metrics.ReasonStorage).Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
