package report

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/backoffice/backend/internal/domain/report"
	"github.com/backoffice/backend/internal/domain/shared"
)

const (
	defaultMonths       = 12
	defaultTopN         = 5
	defaultLowStockRows = 10

	keyPurchaseStats  = "report:purchase_stats"
	keySalesStats     = "report:sales_stats"
	keyInventoryStats = "report:inventory_stats"
)

// Cache is the stats cache abstraction. A miss is reported with a
// false second return; errors are treated as misses by the service.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Service answers reporting queries, caching aggregate results when a
// cache is configured. Stats are always recomputable from the rows, so
// a stale or unavailable cache only costs a database round trip.
type Service struct {
	repo   report.Repository
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewService creates a report Service. cache may be nil to disable
// caching.
func NewService(repo report.Repository, cache Cache, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// PurchaseStats returns purchasing aggregates with 12-month buckets and
// a top product ranking.
func (s *Service) PurchaseStats(ctx context.Context) (*report.PurchaseStats, error) {
	var cached report.PurchaseStats
	if s.fromCache(ctx, keyPurchaseStats, &cached) {
		return &cached, nil
	}

	stats, err := s.repo.PurchaseStats(ctx, defaultMonths, defaultTopN)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, keyPurchaseStats, stats)
	return stats, nil
}

// SalesStats returns sales aggregates with 12-month buckets and a top
// product ranking.
func (s *Service) SalesStats(ctx context.Context) (*report.SalesStats, error) {
	var cached report.SalesStats
	if s.fromCache(ctx, keySalesStats, &cached) {
		return &cached, nil
	}

	stats, err := s.repo.SalesStats(ctx, defaultMonths, defaultTopN)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, keySalesStats, stats)
	return stats, nil
}

// InventoryStats returns the current stock position including the low
// stock listing.
func (s *Service) InventoryStats(ctx context.Context) (*report.InventoryStats, error) {
	var cached report.InventoryStats
	if s.fromCache(ctx, keyInventoryStats, &cached) {
		return &cached, nil
	}

	stats, err := s.repo.InventoryStats(ctx, defaultLowStockRows)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, keyInventoryStats, stats)
	return stats, nil
}

// SalesInRange returns month buckets of sales between from and to.
func (s *Service) SalesInRange(ctx context.Context, from, to time.Time) ([]report.MonthlyTotal, error) {
	if !to.IsZero() && !from.IsZero() && to.Before(from) {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Range end precedes range start")
	}
	return s.repo.SalesInRange(ctx, report.DateRange{From: from, To: to})
}

// PurchasesInRange returns month buckets of purchases between from and to.
func (s *Service) PurchasesInRange(ctx context.Context, from, to time.Time) ([]report.MonthlyTotal, error) {
	if !to.IsZero() && !from.IsZero() && to.Before(from) {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Range end precedes range start")
	}
	return s.repo.PurchasesInRange(ctx, report.DateRange{From: from, To: to})
}

func (s *Service) fromCache(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("stats cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Warn("stats cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *Service) toCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.ttl); err != nil {
		s.logger.Warn("stats cache write failed", zap.String("key", key), zap.Error(err))
	}
}
