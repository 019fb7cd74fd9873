package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/quotation-ai-bot/internal/domain/entity"
)

const quoteLeadTime = "2-3 days"

// quoteValidityDays is how long an issued quotation stays valid.
const quoteValidityDays = 7

// BelowMinimumOrderError rejects a quantity under the MOQ of the
// chosen product/specification. Recoverable: the user re-supplies the
// quantity and keeps every other field.
type BelowMinimumOrderError struct {
	ProductName   string
	Specification string
	MOQ           int
}

func (e *BelowMinimumOrderError) Error() string {
	return fmt.Sprintf("Minimum order quantity is %dkg for this product", e.MOQ)
}

// UnknownCatalogKeyError marks a context field that no longer resolves
// against the catalog (stale context after a price list change).
type UnknownCatalogKeyError struct {
	Field string
	Key   string
}

func (e *UnknownCatalogKeyError) Error() string {
	return fmt.Sprintf("unknown %s: %q", e.Field, e.Key)
}

// ComputeQuote is the pricing engine proper: a pure function from a
// complete order context and the catalog to a full price breakdown.
// Intermediate amounts stay unrounded so percentage lines don't
// compound rounding error; only display rounds.
func ComputeQuote(catalog *entity.Catalog, order entity.OrderContext) (*entity.Quote, error) {
	product, ok := catalog.Product(order.Product)
	if !ok {
		return nil, &UnknownCatalogKeyError{Field: entity.FieldProduct, Key: order.Product}
	}

	spec, ok := product.Spec(order.Specification)
	if !ok {
		return nil, &UnknownCatalogKeyError{Field: entity.FieldSpecification, Key: order.Specification}
	}

	grade, ok := catalog.Grade(order.Grade)
	if !ok {
		return nil, &UnknownCatalogKeyError{Field: entity.FieldGrade, Key: order.Grade}
	}

	if order.Quantity <= 0 {
		return nil, &UnknownCatalogKeyError{Field: entity.FieldQuantity, Key: fmt.Sprintf("%d", order.Quantity)}
	}

	if order.Quantity < spec.MOQ {
		return nil, &BelowMinimumOrderError{
			ProductName:   product.Name,
			Specification: spec.Label,
			MOQ:           spec.MOQ,
		}
	}

	subtotal := spec.BasePrice * float64(order.Quantity)

	tier := catalog.TierFor(order.Quantity)
	discountAmt := subtotal * float64(tier.Percent) / 100

	premiumAmt := subtotal * float64(grade.Premium) / 100

	deliveryCost := catalog.DeliveryCost(order.City)

	beforeTax := subtotal - discountAmt + premiumAmt + deliveryCost
	taxAmount := beforeTax * catalog.TaxRate

	now := time.Now()

	return &entity.Quote{
		Reference:     uuid.New().String()[:8],
		ProductName:   product.Name,
		Specification: fmt.Sprintf("%s %s", spec.Label, product.Unit),
		Grade:         titleCase(order.Grade),
		Quantity:      order.Quantity,

		BasePrice:         spec.BasePrice,
		Subtotal:          subtotal,
		VolumeTier:        tierLabel(tier),
		VolumeDiscountPct: tier.Percent,
		VolumeDiscountAmt: discountAmt,
		GradePremiumPct:   grade.Premium,
		GradePremiumAmt:   premiumAmt,
		DeliveryCity:      titleCase(order.City),
		DeliveryCost:      deliveryCost,
		SubtotalBeforeTax: beforeTax,
		TaxAmount:         taxAmount,
		Total:             beforeTax + taxAmount,

		MOQ:        spec.MOQ,
		LeadTime:   quoteLeadTime,
		IssuedAt:   now,
		ValidUntil: now.AddDate(0, 0, quoteValidityDays),
	}, nil
}

// tierLabel renders a discount tier range, e.g. "25-99kg" or "500+kg".
func tierLabel(t entity.DiscountTier) string {
	if t.MaxQty == 0 {
		return fmt.Sprintf("%d+kg", t.MinQty)
	}
	return fmt.Sprintf("%d-%dkg", t.MinQty, t.MaxQty)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
