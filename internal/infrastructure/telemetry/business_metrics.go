// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the storefront backend.
// It tracks order activity, receipt generation, and catalog health.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	orderPlacedTotal      *Counter
	orderAmountTotal      *Counter
	paymentTotal          *Counter
	receiptGeneratedTotal *Counter
	receiptEmailTotal     *Counter

	// Gauge metrics (point-in-time values)
	catalogProductCount  *Gauge
	unlinkedListingCount *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data provider for periodic collection
	catalogProvider CatalogMetricsProvider
}

// CatalogMetricsProvider provides catalog data for periodic metrics collection.
// This interface allows the telemetry layer to query catalog state without
// depending on the catalog domain directly.
type CatalogMetricsProvider interface {
	// GetProductCount returns the number of canonical products
	GetProductCount(ctx context.Context) (int64, error)

	// GetUnlinkedListingCounts returns, per source category, the number of
	// listings not yet linked to a canonical product
	GetUnlinkedListingCounts(ctx context.Context) (map[string]int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	CatalogProvider CatalogMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:           cfg.Meter,
		logger:          logger,
		stopChan:        make(chan struct{}),
		catalogProvider: cfg.CatalogProvider,
	}

	// Initialize counter metrics
	var err error

	// Order metrics
	bm.orderPlacedTotal, err = NewCounter(
		cfg.Meter,
		"jontech_order_placed_total",
		"Total number of orders placed",
		"{orders}",
	)
	if err != nil {
		return nil, err
	}

	bm.orderAmountTotal, err = NewCounter(
		cfg.Meter,
		"jontech_order_amount_total",
		"Total order amount in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	// Payment metrics
	bm.paymentTotal, err = NewCounter(
		cfg.Meter,
		"jontech_payment_total",
		"Total number of payment transactions",
		"{payments}",
	)
	if err != nil {
		return nil, err
	}

	// Receipt metrics
	bm.receiptGeneratedTotal, err = NewCounter(
		cfg.Meter,
		"jontech_receipt_generated_total",
		"Total number of receipt PDFs generated",
		"{receipts}",
	)
	if err != nil {
		return nil, err
	}

	bm.receiptEmailTotal, err = NewCounter(
		cfg.Meter,
		"jontech_receipt_email_total",
		"Total number of receipt emails sent",
		"{emails}",
	)
	if err != nil {
		return nil, err
	}

	// Catalog gauge metrics
	bm.catalogProductCount, err = NewGauge(
		cfg.Meter,
		"jontech_catalog_product_count",
		"Number of canonical products in the catalog",
		"{products}",
	)
	if err != nil {
		return nil, err
	}

	bm.unlinkedListingCount, err = NewGauge(
		cfg.Meter,
		"jontech_unlinked_listing_count",
		"Number of source listings not yet linked to a canonical product",
		"{listings}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Order Metrics
// =============================================================================

// RecordOrderPlaced records an order placement event.
// This should be called from the application layer when checkout succeeds.
func (bm *BusinessMetrics) RecordOrderPlaced(ctx context.Context, paymentMethod string) {
	bm.orderPlacedTotal.Inc(ctx,
		AttrPaymentMethod.String(paymentMethod),
	)
}

// RecordOrderAmount records the order amount.
// Amount should be in the smallest currency unit (cents).
func (bm *BusinessMetrics) RecordOrderAmount(ctx context.Context, paymentMethod string, amountCents int64) {
	bm.orderAmountTotal.Add(ctx, amountCents,
		AttrPaymentMethod.String(paymentMethod),
	)
}

// RecordOrderWithAmount is a convenience method that records both order count and amount.
func (bm *BusinessMetrics) RecordOrderWithAmount(ctx context.Context, paymentMethod string, amount decimal.Decimal) {
	bm.RecordOrderPlaced(ctx, paymentMethod)

	// Convert to cents (multiply by 100)
	amountCents := amount.Mul(decimal.NewFromInt(100)).IntPart()
	bm.RecordOrderAmount(ctx, paymentMethod, amountCents)
}

// =============================================================================
// Payment Metrics
// =============================================================================

// PaymentStatus represents the outcome of a payment for metrics labeling.
type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// RecordPayment records a payment transaction.
// This should be called when an order payment is confirmed or rejected.
func (bm *BusinessMetrics) RecordPayment(ctx context.Context, paymentMethod string, status PaymentStatus) {
	bm.paymentTotal.Inc(ctx,
		AttrPaymentMethod.String(paymentMethod),
		AttrOrderStatus.String(string(status)),
	)
}

// =============================================================================
// Receipt Metrics
// =============================================================================

// RecordReceiptGenerated records a rendered receipt PDF.
func (bm *BusinessMetrics) RecordReceiptGenerated(ctx context.Context) {
	bm.receiptGeneratedTotal.Inc(ctx)
}

// RecordReceiptEmailed records a receipt email delivery attempt outcome.
func (bm *BusinessMetrics) RecordReceiptEmailed(ctx context.Context, status PaymentStatus) {
	bm.receiptEmailTotal.Inc(ctx,
		AttrOrderStatus.String(string(status)),
	)
}

// =============================================================================
// Catalog Metrics
// =============================================================================

// RecordProductCount records the current number of canonical products.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordProductCount(ctx context.Context, count int64) {
	bm.catalogProductCount.Record(ctx, count)
}

// RecordUnlinkedListingCount records the number of unlinked listings for a
// source category. This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordUnlinkedListingCount(ctx context.Context, category string, count int64) {
	bm.unlinkedListingCount.Record(ctx, count,
		AttrCategory.String(category),
	)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects catalog metrics every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectCatalogMetrics(ctx)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectCatalogMetrics(ctx)
		}
	}
}

// collectCatalogMetrics collects catalog gauge metrics.
func (bm *BusinessMetrics) collectCatalogMetrics(ctx context.Context) {
	if bm.catalogProvider == nil {
		bm.logger.Debug("No catalog provider configured, skipping catalog metrics collection")
		return
	}

	productCount, err := bm.catalogProvider.GetProductCount(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get product count", zap.Error(err))
	} else {
		bm.RecordProductCount(ctx, productCount)
	}

	unlinkedByCategory, err := bm.catalogProvider.GetUnlinkedListingCounts(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get unlinked listing counts", zap.Error(err))
	} else {
		for category, count := range unlinkedByCategory {
			bm.RecordUnlinkedListingCount(ctx, category, count)
		}
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
