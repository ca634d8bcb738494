package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/backoffice/backend/internal/infrastructure/auth"
	"github.com/backoffice/backend/internal/infrastructure/config"
	"github.com/backoffice/backend/internal/infrastructure/logger"
	"github.com/backoffice/backend/internal/interfaces/http/handler"
	"github.com/backoffice/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every handler the router mounts
type Handlers struct {
	System    *handler.SystemHandler
	Products  *handler.ProductHandler
	Movements *handler.MovementHandler
	Suppliers *handler.SupplierHandler
	Clients   *handler.ClientHandler
	Purchases *handler.PurchaseHandler
	Sales     *handler.SaleHandler
	Reports   *handler.ReportHandler
}

// New builds the gin engine with all middleware and routes mounted.
// Every route under /api/v1 except the system endpoints requires a
// valid token; write operations on the catalog, partners and purchases
// are restricted to admins, sales are open to both roles.
func New(cfg *config.Config, log *zap.Logger, tokens *auth.TokenManager, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))

	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")
	api.GET("/system/info", h.System.Info)

	authed := api.Group("")
	authed.Use(middleware.JWTAuth(tokens))

	adminOnly := middleware.RequireRole(auth.RoleAdmin)
	anyRole := middleware.RequireRole(auth.RoleAdmin, auth.RoleSeller)

	catalog := authed.Group("/catalog")
	{
		catalog.GET("/products", anyRole, h.Products.List)
		catalog.GET("/products/:id", anyRole, h.Products.Get)
		catalog.GET("/products/:id/movements", anyRole, h.Movements.ListByProduct)
		catalog.POST("/products", adminOnly, h.Products.Create)
		catalog.PUT("/products/:id", adminOnly, h.Products.Update)
		catalog.POST("/products/:id/toggle-active", adminOnly, h.Products.ToggleActive)
		catalog.DELETE("/products/:id", adminOnly, h.Products.Delete)
	}

	partner := authed.Group("/partner")
	{
		partner.GET("/suppliers", anyRole, h.Suppliers.List)
		partner.GET("/suppliers/:id", anyRole, h.Suppliers.Get)
		partner.POST("/suppliers", adminOnly, h.Suppliers.Create)
		partner.PUT("/suppliers/:id", adminOnly, h.Suppliers.Update)
		partner.POST("/suppliers/:id/toggle-active", adminOnly, h.Suppliers.ToggleActive)
		partner.DELETE("/suppliers/:id", adminOnly, h.Suppliers.Delete)

		partner.GET("/clients", anyRole, h.Clients.List)
		partner.GET("/clients/:id", anyRole, h.Clients.Get)
		partner.POST("/clients", anyRole, h.Clients.Create)
		partner.PUT("/clients/:id", anyRole, h.Clients.Update)
		partner.POST("/clients/:id/toggle-active", adminOnly, h.Clients.ToggleActive)
		partner.DELETE("/clients/:id", adminOnly, h.Clients.Delete)
	}

	trade := authed.Group("/trade")
	{
		trade.GET("/purchases", anyRole, h.Purchases.List)
		trade.GET("/purchases/:id", anyRole, h.Purchases.Get)
		trade.POST("/purchases", adminOnly, h.Purchases.Create)
		trade.PUT("/purchases/:id", adminOnly, h.Purchases.Update)
		trade.POST("/purchases/:id/complete", adminOnly, h.Purchases.Complete)
		trade.POST("/purchases/:id/cancel", adminOnly, h.Purchases.Cancel)
		trade.DELETE("/purchases/:id", adminOnly, h.Purchases.Delete)

		trade.GET("/sales", anyRole, h.Sales.List)
		trade.GET("/sales/:id", anyRole, h.Sales.Get)
		trade.POST("/sales", anyRole, h.Sales.Create)
		trade.POST("/sales/:id/cancel", anyRole, h.Sales.Cancel)
	}

	reports := authed.Group("/reports")
	{
		reports.GET("/purchases", anyRole, h.Reports.PurchaseStats)
		reports.GET("/purchases/range", anyRole, h.Reports.PurchasesInRange)
		reports.GET("/sales", anyRole, h.Reports.SalesStats)
		reports.GET("/sales/range", anyRole, h.Reports.SalesInRange)
		reports.GET("/inventory", anyRole, h.Reports.InventoryStats)
	}

	return engine
}
