package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/yourusername/quotation-ai-bot/internal/domain/entity"
	"github.com/yourusername/quotation-ai-bot/internal/domain/repository"
)

// CatalogUseCase exposes customer-facing views of the catalog.
type CatalogUseCase interface {
	// Summary renders the full product/pricing reference text, used by
	// the /catalog command and embedded in AI prompts.
	Summary(ctx context.Context) (string, error)

	// SpecificationMenu renders one product's concentration tiers,
	// shown when a customer names a product without any details.
	SpecificationMenu(ctx context.Context, productKey string) (string, error)
}

type catalogUseCase struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogUseCase creates a CatalogUseCase.
func NewCatalogUseCase(catalogRepo repository.CatalogRepository) CatalogUseCase {
	return &catalogUseCase{catalogRepo: catalogRepo}
}

// Summary renders the catalog as reference text.
func (u *catalogUseCase) Summary(ctx context.Context) (string, error) {
	catalog, err := u.catalogRepo.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get catalog: %w", err)
	}
	return BuildCatalogSummary(catalog), nil
}

// SpecificationMenu renders one product's tiers with prices and MOQs.
func (u *catalogUseCase) SpecificationMenu(ctx context.Context, productKey string) (string, error) {
	catalog, err := u.catalogRepo.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get catalog: %w", err)
	}

	product, ok := catalog.Product(productKey)
	if !ok {
		return "", &UnknownCatalogKeyError{Field: entity.FieldProduct, Key: productKey}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🌿 **%s** — available specifications:\n\n", product.Name))
	for _, s := range product.Specifications {
		sb.WriteString(fmt.Sprintf("• %s %s: %s/kg (MOQ: %dkg)\n",
			s.Label, product.Unit, rupees(s.BasePrice), s.MOQ))
	}
	sb.WriteString("\nWhich concentration would you like?")
	return sb.String(), nil
}

// BuildCatalogSummary renders the reference block shared by the
// /catalog command and the AI prompt.
func BuildCatalogSummary(catalog *entity.Catalog) string {
	var sb strings.Builder

	sb.WriteString("PRODUCT CATALOG:\n")
	for i, p := range catalog.Products {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, p.Name))

		labels := make([]string, 0, len(p.Specifications))
		prices := make([]string, 0, len(p.Specifications))
		moqs := make([]string, 0, len(p.Specifications))
		for _, s := range p.Specifications {
			labels = append(labels, s.Label)
			prices = append(prices, rupees(s.BasePrice)+"/kg")
			moqs = append(moqs, fmt.Sprintf("%dkg", s.MOQ))
		}
		sb.WriteString(fmt.Sprintf("   - Specifications: %s %s\n", strings.Join(labels, ", "), p.Unit))
		sb.WriteString(fmt.Sprintf("   - Base prices: %s\n", strings.Join(prices, ", ")))
		sb.WriteString(fmt.Sprintf("   - MOQ: %s\n", strings.Join(moqs, ", ")))
	}

	sb.WriteString("\nPRICING STRUCTURE:\n")
	tiers := make([]string, 0, len(catalog.Tiers))
	for _, t := range catalog.Tiers {
		tiers = append(tiers, fmt.Sprintf("%s: %d%%", tierLabel(t), t.Percent))
	}
	sb.WriteString(fmt.Sprintf("- Volume Discounts: %s\n", strings.Join(tiers, ", ")))

	grades := make([]string, 0, len(catalog.Grades))
	for _, g := range catalog.Grades {
		grades = append(grades, fmt.Sprintf("%s: +%d%%", titleCase(g.Key), g.Premium))
	}
	sb.WriteString(fmt.Sprintf("- Grade Premiums: %s\n", strings.Join(grades, ", ")))

	zones := make([]string, 0, len(catalog.Zones))
	for _, z := range catalog.Zones {
		zones = append(zones, fmt.Sprintf("%s: %s", titleCase(z.Key), rupees(z.Cost)))
	}
	sb.WriteString(fmt.Sprintf("- Delivery: %s\n", strings.Join(zones, ", ")))
	sb.WriteString(fmt.Sprintf("- GST: %.0f%% on total\n", catalog.TaxRate*100))

	return sb.String()
}
