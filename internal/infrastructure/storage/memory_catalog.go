package storage

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/quotation-ai-bot/internal/domain/entity"
	"github.com/yourusername/quotation-ai-bot/internal/domain/repository"
)

// MemoryCatalogRepository serves the pricing reference data from
// memory. It starts from the built-in seed and can be overwritten by
// an admin price list upload.
type MemoryCatalogRepository struct {
	mu      sync.RWMutex
	catalog entity.Catalog
}

// NewMemoryCatalogRepository creates a repository seeded with the
// built-in catalog.
func NewMemoryCatalogRepository() repository.CatalogRepository {
	return &MemoryCatalogRepository{catalog: DefaultCatalog()}
}

// Get returns a copy of the current catalog.
func (r *MemoryCatalogRepository) Get(ctx context.Context) (*entity.Catalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := r.catalog
	return &c, nil
}

// ReplaceProducts swaps in an uploaded product list. Grades, zones,
// tiers and the tax rate stay as seeded.
func (r *MemoryCatalogRepository) ReplaceProducts(ctx context.Context, products []entity.Product, source string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.catalog.Products = products
	r.catalog.UpdatedAt = time.Now()
	r.catalog.Source = source
	return nil
}

// Reset restores the built-in seed catalog.
func (r *MemoryCatalogRepository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.catalog = DefaultCatalog()
	return nil
}

// DefaultCatalog returns the built-in Alchemy Chemicals price list.
func DefaultCatalog() entity.Catalog {
	return entity.Catalog{
		Products: []entity.Product{
			{
				Key:     "ashwagandha",
				Name:    "Ashwagandha Extract",
				Unit:    "Withanolides",
				Aliases: []string{"ashwaganda", "ashvagandha", "ashwagandah"},
				Specifications: []entity.Specification{
					{Label: "2.5%", BasePrice: 1800, MOQ: 25},
					{Label: "5%", BasePrice: 2800, MOQ: 25},
					{Label: "10%", BasePrice: 3600, MOQ: 20},
				},
			},
			{
				Key:     "boswellia",
				Name:    "Boswellia Extract",
				Unit:    "Boswellic Acid",
				Aliases: []string{"boswelia", "boswella"},
				Specifications: []entity.Specification{
					{Label: "65%", BasePrice: 2200, MOQ: 25},
					{Label: "85%", BasePrice: 3200, MOQ: 20},
				},
			},
			{
				Key:     "curcumin",
				Name:    "Curcumin Extract",
				Unit:    "Purity",
				Aliases: []string{"curcumine", "turmeric", "haldi"},
				Specifications: []entity.Specification{
					{Label: "90%", BasePrice: 2500, MOQ: 25},
					{Label: "95%", BasePrice: 3000, MOQ: 25},
					{Label: "98%", BasePrice: 3800, MOQ: 20},
				},
			},
			{
				Key:     "neem",
				Name:    "Neem Extract",
				Unit:    "Azadirachtin",
				Aliases: []string{"nim", "neam"},
				Specifications: []entity.Specification{
					{Label: "1%", BasePrice: 1500, MOQ: 30},
					{Label: "5%", BasePrice: 2600, MOQ: 25},
				},
			},
			{
				Key:     "tulsi",
				Name:    "Tulsi Extract",
				Unit:    "Ursolic Acid",
				Aliases: []string{"tulasi", "basil", "holy basil"},
				Specifications: []entity.Specification{
					{Label: "2%", BasePrice: 1700, MOQ: 30},
					{Label: "5%", BasePrice: 2400, MOQ: 25},
				},
			},
		},
		Grades: []entity.Grade{
			{Key: "pharmaceutical", Premium: 20, Aliases: []string{"pharma", "medical", "pharmceutical"}},
			{Key: "cosmetic", Premium: 10, Aliases: []string{"cosmetics", "beauty", "cometic", "cosmatic"}},
			{Key: "food", Premium: 0, Aliases: []string{"food grade", "edible", "dietary"}},
		},
		Zones: []entity.DeliveryZone{
			{Key: "mumbai", Cost: 3500, Aliases: []string{"bombay", "mumbay"}},
			{Key: "delhi", Cost: 4200, Aliases: []string{"new delhi", "dilli"}},
			{Key: "bangalore", Cost: 4800, Aliases: []string{"bengaluru", "banglore", "bangaluru"}},
			{Key: "pune", Cost: 3200, Aliases: []string{"poona"}},
			{Key: "ujjain", Cost: 1000, Aliases: []string{"ujain"}},
			{Key: "local", Cost: 1000, Aliases: []string{"locally", "pickup"}},
		},
		Tiers: []entity.DiscountTier{
			{MinQty: 1, MaxQty: 24, Percent: 0},
			{MinQty: 25, MaxQty: 99, Percent: 10},
			{MinQty: 100, MaxQty: 499, Percent: 15},
			{MinQty: 500, MaxQty: 0, Percent: 20},
		},
		TaxRate:             0.18,
		DefaultDeliveryCost: 1000,
		UpdatedAt:           time.Now(),
		Source:              "builtin",
	}
}
