package entity

import "time"

// Quote is the immutable result of pricing a complete order context
// against the catalog. It is recomputed on demand, never persisted.
type Quote struct {
	Reference     string // short id for the downloadable document
	ProductName   string
	Specification string // label + unit, e.g. "5% Withanolides"
	Grade         string
	Quantity      int

	BasePrice         float64
	Subtotal          float64
	VolumeTier        string // e.g. "25-99kg"
	VolumeDiscountPct int
	VolumeDiscountAmt float64
	GradePremiumPct   int
	GradePremiumAmt   float64
	DeliveryCity      string
	DeliveryCost      float64
	SubtotalBeforeTax float64
	TaxAmount         float64
	Total             float64

	MOQ        int
	LeadTime   string
	IssuedAt   time.Time
	ValidUntil time.Time
}
