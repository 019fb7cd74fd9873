package entity

import "time"

// Specification is a single concentration tier of a product.
// Base price and MOQ are always defined together.
type Specification struct {
	Label     string  // e.g. "5%"
	BasePrice float64 // ₹ per kg
	MOQ       int     // minimum order quantity, kg
}

// Product is one catalog product with its ordered specification tiers.
type Product struct {
	Key            string // canonical id, e.g. "ashwagandha"
	Name           string // display name, e.g. "Ashwagandha Extract"
	Unit           string // concentration basis, e.g. "Withanolides"
	Aliases        []string
	Specifications []Specification
}

// Spec looks up a specification tier by label.
func (p Product) Spec(label string) (Specification, bool) {
	for _, s := range p.Specifications {
		if s.Label == label {
			return s, true
		}
	}
	return Specification{}, false
}

// SpecLabels returns the tier labels in catalog order.
func (p Product) SpecLabels() []string {
	labels := make([]string, 0, len(p.Specifications))
	for _, s := range p.Specifications {
		labels = append(labels, s.Label)
	}
	return labels
}

// Grade is an intended-use tier carrying a percentage surcharge.
type Grade struct {
	Key     string // pharmaceutical, cosmetic, food
	Premium int    // percent, 0-20
	Aliases []string
}

// DeliveryZone is a city with a flat delivery cost.
type DeliveryZone struct {
	Key     string
	Cost    float64 // ₹ flat
	Aliases []string
}

// DiscountTier is a closed quantity range mapped to a discount percent.
// MaxQty == 0 means unbounded above.
type DiscountTier struct {
	MinQty  int
	MaxQty  int
	Percent int
}

// Contains reports whether qty falls inside the tier range.
func (t DiscountTier) Contains(qty int) bool {
	if qty < t.MinQty {
		return false
	}
	return t.MaxQty == 0 || qty <= t.MaxQty
}

// AliasEntry is the uniform lookup shape the matcher works against:
// every resolvable entity (product, grade, city) reduces to this.
type AliasEntry struct {
	Key     string
	Aliases []string
}

// Catalog is the full pricing reference data set.
type Catalog struct {
	Products            []Product
	Grades              []Grade
	Zones               []DeliveryZone
	Tiers               []DiscountTier
	TaxRate             float64 // GST, e.g. 0.18
	DefaultDeliveryCost float64 // applied when a city has no zone entry
	UpdatedAt           time.Time
	Source              string // price list file name, or "builtin"
}

// Product looks up a product by canonical key.
func (c *Catalog) Product(key string) (Product, bool) {
	for _, p := range c.Products {
		if p.Key == key {
			return p, true
		}
	}
	return Product{}, false
}

// Grade looks up a grade by canonical key.
func (c *Catalog) Grade(key string) (Grade, bool) {
	for _, g := range c.Grades {
		if g.Key == key {
			return g, true
		}
	}
	return Grade{}, false
}

// Zone looks up a delivery zone by canonical key.
func (c *Catalog) Zone(key string) (DeliveryZone, bool) {
	for _, z := range c.Zones {
		if z.Key == key {
			return z, true
		}
	}
	return DeliveryZone{}, false
}

// DeliveryCost returns the flat cost for a city, falling back to the
// default rate for unknown cities.
func (c *Catalog) DeliveryCost(city string) float64 {
	if z, ok := c.Zone(city); ok {
		return z.Cost
	}
	return c.DefaultDeliveryCost
}

// TierFor returns the volume discount tier containing qty.
// Tiers partition [1, ∞) so every positive quantity lands in one.
func (c *Catalog) TierFor(qty int) DiscountTier {
	for _, t := range c.Tiers {
		if t.Contains(qty) {
			return t
		}
	}
	return DiscountTier{}
}

// ProductEntries returns the products in the matcher's uniform shape.
func (c *Catalog) ProductEntries() []AliasEntry {
	entries := make([]AliasEntry, 0, len(c.Products))
	for _, p := range c.Products {
		entries = append(entries, AliasEntry{Key: p.Key, Aliases: p.Aliases})
	}
	return entries
}

// GradeEntries returns the grades in the matcher's uniform shape.
func (c *Catalog) GradeEntries() []AliasEntry {
	entries := make([]AliasEntry, 0, len(c.Grades))
	for _, g := range c.Grades {
		entries = append(entries, AliasEntry{Key: g.Key, Aliases: g.Aliases})
	}
	return entries
}

// ZoneEntries returns the delivery zones in the matcher's uniform shape.
func (c *Catalog) ZoneEntries() []AliasEntry {
	entries := make([]AliasEntry, 0, len(c.Zones))
	for _, z := range c.Zones {
		entries = append(entries, AliasEntry{Key: z.Key, Aliases: z.Aliases})
	}
	return entries
}
