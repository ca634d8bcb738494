package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	catalogapp "github.com/backoffice/backend/internal/application/catalog"
	partnerapp "github.com/backoffice/backend/internal/application/partner"
	reportapp "github.com/backoffice/backend/internal/application/report"
	tradeapp "github.com/backoffice/backend/internal/application/trade"
	"github.com/backoffice/backend/internal/infrastructure/auth"
	"github.com/backoffice/backend/internal/infrastructure/cache"
	"github.com/backoffice/backend/internal/infrastructure/config"
	"github.com/backoffice/backend/internal/infrastructure/logger"
	"github.com/backoffice/backend/internal/infrastructure/persistence"
	"github.com/backoffice/backend/internal/interfaces/http/handler"
	"github.com/backoffice/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting back office server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories and the transaction scope over the shared connection
	scope := persistence.NewGormTransactionScope(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)

	// Report cache is optional; the service recomputes on a miss
	var reportCache reportapp.Cache
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, report caching disabled", zap.Error(err))
		} else {
			defer func() {
				_ = redisClient.Close()
			}()
			reportCache = cache.NewRedisCache(redisClient)
			log.Info("Report cache enabled", zap.String("addr", cfg.Redis.Addr()))
		}
	}

	// Application services
	productService := catalogapp.NewProductService(scope, productRepo)
	supplierService := partnerapp.NewSupplierService(scope, supplierRepo)
	clientService := partnerapp.NewClientService(scope, clientRepo)
	purchaseService := tradeapp.NewPurchaseService(scope, purchaseRepo)
	saleService := tradeapp.NewSaleService(scope, saleRepo)
	reportService := reportapp.NewService(reportRepo, reportCache, cfg.Report.CacheTTL, log)

	tokens := auth.NewTokenManager(cfg.JWT)

	engine := router.New(cfg, log, tokens, router.Handlers{
		System:    handler.NewSystemHandler(db),
		Products:  handler.NewProductHandler(productService),
		Movements: handler.NewMovementHandler(movementRepo),
		Suppliers: handler.NewSupplierHandler(supplierService),
		Clients:   handler.NewClientHandler(clientService),
		Purchases: handler.NewPurchaseHandler(purchaseService),
		Sales:     handler.NewSaleHandler(saleService),
		Reports:   handler.NewReportHandler(reportService),
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
