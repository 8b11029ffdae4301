// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"gorm.io/gorm"
)

// GormCatalogMetricsProvider implements CatalogMetricsProvider using GORM.
// It queries the products table and the source category tables directly for
// aggregated metrics.
type GormCatalogMetricsProvider struct {
	db *gorm.DB

	// category slug -> source table name
	sourceTables map[string]string
}

// NewGormCatalogMetricsProvider creates a new GormCatalogMetricsProvider.
// sourceTables maps each source category slug to its table name.
func NewGormCatalogMetricsProvider(db *gorm.DB, sourceTables map[string]string) *GormCatalogMetricsProvider {
	return &GormCatalogMetricsProvider{db: db, sourceTables: sourceTables}
}

// GetProductCount returns the number of canonical products.
func (p *GormCatalogMetricsProvider) GetProductCount(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("products").
		Count(&count).Error

	return count, err
}

// GetUnlinkedListingCounts returns, per source category, the number of
// listings with no canonical product link yet.
func (p *GormCatalogMetricsProvider) GetUnlinkedListingCounts(ctx context.Context) (map[string]int64, error) {
	m := make(map[string]int64, len(p.sourceTables))

	for category, table := range p.sourceTables {
		var count int64
		err := p.db.WithContext(ctx).
			Table(table).
			Where("product_id IS NULL").
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			m[category] = count
		}
	}

	return m, nil
}
