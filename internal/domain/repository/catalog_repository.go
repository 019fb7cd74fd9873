package repository

import (
	"context"

	"github.com/yourusername/quotation-ai-bot/internal/domain/entity"
)

// CatalogRepository provides the pricing reference data.
type CatalogRepository interface {
	// Get returns the current catalog.
	Get(ctx context.Context) (*entity.Catalog, error)

	// ReplaceProducts swaps in a new product price list, keeping
	// grades, zones, tiers and tax rate unchanged.
	ReplaceProducts(ctx context.Context, products []entity.Product, source string) error

	// Reset restores the built-in price list.
	Reset(ctx context.Context) error
}
