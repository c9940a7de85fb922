// Package catalog - Membership plan and add-on feature catalog
// A Catalog is immutable once built and is shared read-only by every quote.
package catalog

import (
	"sort"

	"github.com/shopspring/decimal"

	"gym-cost/internal/errors"
)

// Plan is a membership tier with a fixed base cost per member
type Plan struct {
	Name        string          `json:"name"`
	BaseCost    decimal.Decimal `json:"base_cost"`
	Description string          `json:"description"`
	// Premium marks the premium tier; quoting it triggers the surcharge
	Premium bool `json:"premium"`
}

// Feature is an optional add-on charged per member
type Feature struct {
	Name        string          `json:"name"`
	Cost        decimal.Decimal `json:"cost"`
	Description string          `json:"description"`
	Premium     bool            `json:"premium"`
}

// SpecialOffer is a flat discount granted when an amount strictly exceeds Threshold
type SpecialOffer struct {
	Threshold decimal.Decimal `json:"threshold"`
	Discount  decimal.Decimal `json:"discount"`
}

// Rules holds the discount and surcharge configuration
type Rules struct {
	GroupDiscountRate decimal.Decimal `json:"group_discount_rate"`
	GroupMinMembers   int             `json:"group_min_members"`
	// SpecialOffers is ordered highest threshold first
	SpecialOffers []SpecialOffer  `json:"special_offers"`
	SurchargeRate decimal.Decimal `json:"surcharge_rate"`
}

// Catalog is the plan/feature/rule table used by the pricing engine
type Catalog struct {
	plans        map[string]Plan
	planOrder    []string
	features     map[string]Feature
	featureOrder []string
	rules        Rules
}

// New validates its inputs and builds a catalog. Declaration order of plans
// and features is kept for display; special offers are re-sorted by
// descending threshold.
func New(plans []Plan, features []Feature, rules Rules) (*Catalog, error) {
	if len(plans) == 0 {
		return nil, errors.New(errors.TypeConfig, "catalog must define at least one plan")
	}

	c := &Catalog{
		plans:    make(map[string]Plan, len(plans)),
		features: make(map[string]Feature, len(features)),
	}

	for _, p := range plans {
		if p.Name == "" {
			return nil, errors.New(errors.TypeConfig, "plan name must not be empty")
		}
		if _, dup := c.plans[p.Name]; dup {
			return nil, errors.Newf(errors.TypeConfig, "duplicate plan %q", p.Name)
		}
		if p.BaseCost.IsNegative() {
			return nil, errors.Newf(errors.TypeConfig, "plan %q has negative base cost %s", p.Name, p.BaseCost)
		}
		c.plans[p.Name] = p
		c.planOrder = append(c.planOrder, p.Name)
	}

	for _, f := range features {
		if f.Name == "" {
			return nil, errors.New(errors.TypeConfig, "feature name must not be empty")
		}
		if _, dup := c.features[f.Name]; dup {
			return nil, errors.Newf(errors.TypeConfig, "duplicate feature %q", f.Name)
		}
		if f.Cost.IsNegative() {
			return nil, errors.Newf(errors.TypeConfig, "feature %q has negative cost %s", f.Name, f.Cost)
		}
		c.features[f.Name] = f
		c.featureOrder = append(c.featureOrder, f.Name)
	}

	if err := validateRate("group_discount_rate", rules.GroupDiscountRate); err != nil {
		return nil, err
	}
	if err := validateRate("surcharge_rate", rules.SurchargeRate); err != nil {
		return nil, err
	}
	if rules.GroupMinMembers < 1 {
		return nil, errors.Newf(errors.TypeConfig, "group_min_members must be at least 1, got %d", rules.GroupMinMembers)
	}

	offers := make([]SpecialOffer, len(rules.SpecialOffers))
	copy(offers, rules.SpecialOffers)
	for _, o := range offers {
		if o.Threshold.IsNegative() || o.Discount.IsNegative() {
			return nil, errors.Newf(errors.TypeConfig, "special offer (%s, %s) must not be negative", o.Threshold, o.Discount)
		}
	}
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].Threshold.GreaterThan(offers[j].Threshold)
	})
	rules.SpecialOffers = offers
	c.rules = rules

	return c, nil
}

// MustNew is New for catalogs known to be valid at compile time
func MustNew(plans []Plan, features []Feature, rules Rules) *Catalog {
	c, err := New(plans, features, rules)
	if err != nil {
		panic("catalog: " + err.Error())
	}
	return c
}

// validateRate requires 0 <= rate < 1
func validateRate(name string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return errors.Newf(errors.TypeConfig, "%s must be in [0, 1), got %s", name, rate)
	}
	return nil
}

// Plan returns a plan by name
func (c *Catalog) Plan(name string) (Plan, bool) {
	p, ok := c.plans[name]
	return p, ok
}

// Feature returns a feature by name
func (c *Catalog) Feature(name string) (Feature, bool) {
	f, ok := c.features[name]
	return f, ok
}

// Plans returns all plans in declaration order
func (c *Catalog) Plans() []Plan {
	out := make([]Plan, 0, len(c.planOrder))
	for _, name := range c.planOrder {
		out = append(out, c.plans[name])
	}
	return out
}

// Features returns all features in declaration order
func (c *Catalog) Features() []Feature {
	out := make([]Feature, 0, len(c.featureOrder))
	for _, name := range c.featureOrder {
		out = append(out, c.features[name])
	}
	return out
}

// Rules returns a copy of the discount and surcharge rules
func (c *Catalog) Rules() Rules {
	r := c.rules
	r.SpecialOffers = make([]SpecialOffer, len(c.rules.SpecialOffers))
	copy(r.SpecialOffers, c.rules.SpecialOffers)
	return r
}
