// Package pricing - Quote request and breakdown types
package pricing

import "github.com/shopspring/decimal"

// CurrencyPlaces is the number of decimal places every output amount is rounded to
const CurrencyPlaces = 2

// Request is a validated-on-use quote request
type Request struct {
	// Plan is the membership plan name
	Plan string `json:"plan"`

	// Features are add-on names. Duplicates are charged once per occurrence.
	Features []string `json:"features"`

	// Members is the number of people joining
	Members int `json:"members"`
}

// LineItem is one per-member charge that feeds the subtotal
type LineItem struct {
	// Label is the plan or feature name
	Label string `json:"label"`

	// Kind is "plan" or "feature"
	Kind string `json:"kind"`

	// UnitCost is the per-member catalog price
	UnitCost decimal.Decimal `json:"unit_cost"`

	// Quantity is the member count
	Quantity int `json:"quantity"`

	// Amount is UnitCost * Quantity
	Amount decimal.Decimal `json:"amount"`

	// Premium marks items that trigger the surcharge
	Premium bool `json:"premium,omitempty"`
}

// Breakdown is the priced result of a Request. All amounts are rounded to
// CurrencyPlaces and Total == Subtotal - GroupDiscount - SpecialDiscount + Surcharge.
type Breakdown struct {
	Plan     string     `json:"plan"`
	Features []string   `json:"features"`
	Members  int        `json:"members"`
	Lines    []LineItem `json:"lines"`

	Subtotal        decimal.Decimal `json:"subtotal"`
	GroupDiscount   decimal.Decimal `json:"group_discount"`
	SpecialDiscount decimal.Decimal `json:"special_discount"`
	Surcharge       decimal.Decimal `json:"surcharge"`
	Total           decimal.Decimal `json:"total"`
}

// HasGroupDiscount reports whether a group discount was applied
func (b *Breakdown) HasGroupDiscount() bool {
	return b.GroupDiscount.IsPositive()
}

// HasSpecialDiscount reports whether a special offer was applied
func (b *Breakdown) HasSpecialDiscount() bool {
	return b.SpecialDiscount.IsPositive()
}

// HasSurcharge reports whether the premium surcharge was applied
func (b *Breakdown) HasSurcharge() bool {
	return b.Surcharge.IsPositive()
}
