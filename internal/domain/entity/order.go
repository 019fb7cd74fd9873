package entity

// Order field names in the fixed prompt order.
const (
	FieldProduct       = "product"
	FieldSpecification = "specification"
	FieldQuantity      = "quantity"
	FieldGrade         = "grade"
	FieldCity          = "city"
)

// OrderContext is the accumulated, partially filled order a customer
// builds up across conversation turns. Zero values mean "not yet known".
// It is owned by the caller for the duration of a session and never
// shared across sessions.
type OrderContext struct {
	Product       string `json:"product,omitempty"`
	Specification string `json:"specification,omitempty"`
	Quantity      int    `json:"quantity,omitempty"`
	Grade         string `json:"grade,omitempty"`
	City          string `json:"city,omitempty"`
}

// IsComplete reports whether every field needed for pricing is present.
func (o OrderContext) IsComplete() bool {
	return len(o.MissingFields()) == 0
}

// IsEmpty reports whether nothing has been collected yet.
func (o OrderContext) IsEmpty() bool {
	return o == OrderContext{}
}

// MissingFields returns the unset fields in the fixed prompt order:
// product, specification, quantity, grade, city.
func (o OrderContext) MissingFields() []string {
	var missing []string
	if o.Product == "" {
		missing = append(missing, FieldProduct)
	}
	if o.Specification == "" {
		missing = append(missing, FieldSpecification)
	}
	if o.Quantity <= 0 {
		missing = append(missing, FieldQuantity)
	}
	if o.Grade == "" {
		missing = append(missing, FieldGrade)
	}
	if o.City == "" {
		missing = append(missing, FieldCity)
	}
	return missing
}

// Reset clears every field (new-quote action).
func (o *OrderContext) Reset() {
	*o = OrderContext{}
}
