package usecase

import (
	"errors"
	"math"
	"testing"

	"github.com/yourusername/quotation-ai-bot/internal/domain/entity"
	"github.com/yourusername/quotation-ai-bot/internal/infrastructure/storage"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestComputeQuote_ReferenceOrder(t *testing.T) {
	catalog := storage.DefaultCatalog()

	quote, err := ComputeQuote(&catalog, entity.OrderContext{
		Product:       "ashwagandha",
		Specification: "5%",
		Quantity:      50,
		Grade:         "pharmaceutical",
		City:          "mumbai",
	})
	if err != nil {
		t.Fatalf("ComputeQuote failed: %v", err)
	}

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"base price", quote.BasePrice, 2800},
		{"subtotal", quote.Subtotal, 140000},
		{"volume discount", quote.VolumeDiscountAmt, 14000},
		{"grade premium", quote.GradePremiumAmt, 28000},
		{"delivery", quote.DeliveryCost, 3500},
		{"before tax", quote.SubtotalBeforeTax, 157500},
		{"gst", quote.TaxAmount, 28350},
		{"total", quote.Total, 185850},
	}
	for _, c := range checks {
		if !almostEqual(c.got, c.want) {
			t.Errorf("%s = %.2f, want %.2f", c.name, c.got, c.want)
		}
	}

	if quote.VolumeDiscountPct != 10 {
		t.Errorf("discount pct = %d, want 10", quote.VolumeDiscountPct)
	}
	if quote.GradePremiumPct != 20 {
		t.Errorf("premium pct = %d, want 20", quote.GradePremiumPct)
	}
	if quote.VolumeTier != "25-99kg" {
		t.Errorf("tier = %q, want 25-99kg", quote.VolumeTier)
	}
	if quote.ProductName != "Ashwagandha Extract" {
		t.Errorf("product name = %q", quote.ProductName)
	}
	if quote.Specification != "5% Withanolides" {
		t.Errorf("specification = %q", quote.Specification)
	}
	if quote.MOQ != 25 {
		t.Errorf("moq = %d, want 25", quote.MOQ)
	}
	if len(quote.Reference) != 8 {
		t.Errorf("reference %q should be 8 characters", quote.Reference)
	}
}

func TestComputeQuote_BelowMinimumOrder(t *testing.T) {
	catalog := storage.DefaultCatalog()

	order := entity.OrderContext{
		Product:       "boswellia",
		Specification: "85%",
		Quantity:      10,
		Grade:         "food",
		City:          "pune",
	}

	_, err := ComputeQuote(&catalog, order)
	var moqErr *BelowMinimumOrderError
	if !errors.As(err, &moqErr) {
		t.Fatalf("expected BelowMinimumOrderError, got %v", err)
	}
	if moqErr.MOQ != 20 {
		t.Errorf("moq = %d, want 20", moqErr.MOQ)
	}
	if moqErr.Error() != "Minimum order quantity is 20kg for this product" {
		t.Errorf("message = %q", moqErr.Error())
	}

	// Exactly at the MOQ prices fine.
	order.Quantity = 20
	if _, err := ComputeQuote(&catalog, order); err != nil {
		t.Errorf("quantity == MOQ should price: %v", err)
	}

	// One under fails again.
	order.Quantity = 19
	if _, err := ComputeQuote(&catalog, order); !errors.As(err, &moqErr) {
		t.Errorf("quantity == MOQ-1 should fail, got %v", err)
	}
}

func TestComputeQuote_UnknownKeys(t *testing.T) {
	catalog := storage.DefaultCatalog()

	tests := []struct {
		name      string
		order     entity.OrderContext
		wantField string
	}{
		{
			"unknown product",
			entity.OrderContext{Product: "vanilla", Specification: "5%", Quantity: 50, Grade: "food", City: "pune"},
			entity.FieldProduct,
		},
		{
			"unknown specification",
			entity.OrderContext{Product: "neem", Specification: "50%", Quantity: 50, Grade: "food", City: "pune"},
			entity.FieldSpecification,
		},
		{
			"unknown grade",
			entity.OrderContext{Product: "neem", Specification: "5%", Quantity: 50, Grade: "luxury", City: "pune"},
			entity.FieldGrade,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeQuote(&catalog, tt.order)
			var keyErr *UnknownCatalogKeyError
			if !errors.As(err, &keyErr) {
				t.Fatalf("expected UnknownCatalogKeyError, got %v", err)
			}
			if keyErr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", keyErr.Field, tt.wantField)
			}
		})
	}
}

func TestComputeQuote_UnknownCityUsesDefaultDelivery(t *testing.T) {
	catalog := storage.DefaultCatalog()

	quote, err := ComputeQuote(&catalog, entity.OrderContext{
		Product:       "ashwagandha",
		Specification: "5%",
		Quantity:      50,
		Grade:         "pharmaceutical",
		City:          "shimla",
	})
	if err != nil {
		t.Fatalf("ComputeQuote failed: %v", err)
	}
	if !almostEqual(quote.DeliveryCost, 1000) {
		t.Errorf("delivery = %.2f, want default 1000", quote.DeliveryCost)
	}
	if !almostEqual(quote.Total, 182900) {
		t.Errorf("total = %.2f, want 182900", quote.Total)
	}
}

func TestTierBoundaries(t *testing.T) {
	catalog := storage.DefaultCatalog()

	tests := []struct {
		qty  int
		want int
	}{
		{1, 0},
		{24, 0},
		{25, 10},
		{99, 10},
		{100, 15},
		{499, 15},
		{500, 20},
		{10000, 20},
	}

	for _, tt := range tests {
		if got := catalog.TierFor(tt.qty).Percent; got != tt.want {
			t.Errorf("TierFor(%d).Percent = %d, want %d", tt.qty, got, tt.want)
		}
	}
}

func TestComputeQuote_Deterministic(t *testing.T) {
	catalog := storage.DefaultCatalog()
	order := entity.OrderContext{
		Product:       "curcumin",
		Specification: "95%",
		Quantity:      120,
		Grade:         "cosmetic",
		City:          "delhi",
	}

	a, err := ComputeQuote(&catalog, order)
	if err != nil {
		t.Fatalf("first quote failed: %v", err)
	}
	b, err := ComputeQuote(&catalog, order)
	if err != nil {
		t.Fatalf("second quote failed: %v", err)
	}

	if !almostEqual(a.Total, b.Total) || !almostEqual(a.TaxAmount, b.TaxAmount) {
		t.Errorf("same order priced differently: %.2f vs %.2f", a.Total, b.Total)
	}
	if a.Reference == b.Reference {
		t.Errorf("quote references should be unique")
	}
}
