package httpserver

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"mawasim-api/internal/catalog"
	"mawasim-api/internal/metrics"
	ordersvc "mawasim-api/internal/service/order"
	reportsvc "mawasim-api/internal/service/report"
)

// Deps bundles everything the routes need.
type Deps struct {
	Catalog   *catalog.Catalog
	OrderSvc  *ordersvc.Service
	ReportSvc *reportsvc.Service
	Intake    *metrics.Intake

	StoreName      string
	AdminSecret    string
	APISecret      string
	AllowedOrigins []string
}

// buildRouter wires routes for the storefront and admin APIs.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery(), requestIDMiddleware())

	if len(deps.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost},
			AllowHeaders:     []string{"Content-Type", "X-Api-Secret", "X-Admin-Secret"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Reject stray methods on known paths instead of treating them as 404s.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	{
		api.GET("/products", listProductsHandler(deps.Catalog))
		api.POST("/order", apiSecretMiddleware(deps.APISecret), submitOrderHandler(deps.OrderSvc, deps.Intake))
	}

	admin := api.Group("/admin", adminSecretMiddleware(deps.AdminSecret))
	{
		admin.GET("/orders", listOrdersHandler(deps.OrderSvc))
		admin.POST("/update-status", updateStatusHandler(deps.OrderSvc))
		admin.GET("/customers", listCustomersHandler(deps.ReportSvc))
		admin.GET("/stats", statsHandler(deps.ReportSvc))
		admin.POST("/invoice", invoiceHandler(deps.OrderSvc, deps.StoreName))
		admin.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	return router, nil
}
