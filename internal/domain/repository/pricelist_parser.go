package repository

import (
	"context"

	"github.com/yourusername/quotation-ai-bot/internal/domain/entity"
)

// PricelistParser reads a product price list from an uploaded file.
type PricelistParser interface {
	// ParseProducts reads products (with their specification tiers)
	// from raw spreadsheet bytes.
	ParseProducts(ctx context.Context, data []byte, filename string) ([]entity.Product, error)
}
