// Package pricing - Membership quote engine
// The engine is a pure function of a Request and an immutable Catalog.
// It holds no mutable state and may be shared across goroutines.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gym-cost/core/catalog"
	"gym-cost/internal/errors"
	"gym-cost/internal/logging"
)

// Engine prices quote requests against a catalog
type Engine struct {
	catalog *catalog.Catalog
	rules   catalog.Rules
	log     *zap.Logger
}

// NewEngine creates an engine bound to a catalog
func NewEngine(c *catalog.Catalog) *Engine {
	return &Engine{
		catalog: c,
		rules:   c.Rules(),
		log:     logging.Named("pricing"),
	}
}

// Catalog returns the catalog the engine prices against
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// ValidatePlan fails with TypeUnknownPlan if name is not in the catalog
func (e *Engine) ValidatePlan(name string) error {
	if _, ok := e.catalog.Plan(name); !ok {
		return errors.Newf(errors.TypeUnknownPlan, "Plan '%s' is not available.", name).
			WithContext("plan", name)
	}
	return nil
}

// ValidateFeatures fails with TypeUnknownFeature naming every unknown feature
func (e *Engine) ValidateFeatures(names []string) error {
	var invalid []string
	for _, name := range names {
		if _, ok := e.catalog.Feature(name); !ok {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) > 0 {
		return errors.Newf(errors.TypeUnknownFeature, "Feature(s) not available: %s", strings.Join(invalid, ", ")).
			WithContext("features", invalid)
	}
	return nil
}

// Subtotal is (plan base cost + sum of feature costs) * members, unrounded
func (e *Engine) Subtotal(plan catalog.Plan, features []catalog.Feature, members int) decimal.Decimal {
	perMember := plan.BaseCost
	for _, f := range features {
		perMember = perMember.Add(f.Cost)
	}
	return perMember.Mul(decimal.NewFromInt(int64(members)))
}

// ApplyGroupDiscount returns the discounted amount and the discount. The
// discount is only granted from GroupMinMembers members upward.
func (e *Engine) ApplyGroupDiscount(subtotal decimal.Decimal, members int) (decimal.Decimal, decimal.Decimal) {
	if members < e.rules.GroupMinMembers {
		return subtotal, decimal.Zero
	}
	discount := subtotal.Mul(e.rules.GroupDiscountRate)
	return subtotal.Sub(discount), discount
}

// ApplySpecialOffer applies the first offer, highest threshold first, whose
// threshold amount strictly exceeds. At most one offer applies.
func (e *Engine) ApplySpecialOffer(amount decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	for _, offer := range e.rules.SpecialOffers {
		if amount.GreaterThan(offer.Threshold) {
			return amount.Sub(offer.Discount), offer.Discount
		}
	}
	return amount, decimal.Zero
}

// NeedsSurcharge reports whether the plan or any feature is premium
func (e *Engine) NeedsSurcharge(plan catalog.Plan, features []catalog.Feature) bool {
	if plan.Premium {
		return true
	}
	for _, f := range features {
		if f.Premium {
			return true
		}
	}
	return false
}

// ApplySurcharge returns the surcharged amount and the surcharge
func (e *Engine) ApplySurcharge(amount decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	surcharge := amount.Mul(e.rules.SurchargeRate)
	return amount.Add(surcharge), surcharge
}

// Quote validates req and prices it. Discounts and the surcharge are applied
// in a fixed order (group, special offer, surcharge) on unrounded amounts;
// rounding happens once at the end.
func (e *Engine) Quote(req Request) (*Breakdown, error) {
	if err := e.ValidatePlan(req.Plan); err != nil {
		return nil, err
	}
	if err := e.ValidateFeatures(req.Features); err != nil {
		return nil, err
	}
	if req.Members < 1 {
		return nil, errors.Newf(errors.TypeInvalidMemberCount, "Number of members must be at least 1, got %d.", req.Members).
			WithContext("members", req.Members)
	}

	plan, _ := e.catalog.Plan(req.Plan)
	features := make([]catalog.Feature, 0, len(req.Features))
	for _, name := range req.Features {
		f, _ := e.catalog.Feature(name)
		features = append(features, f)
	}

	subtotal := e.Subtotal(plan, features, req.Members)
	afterGroup, groupDiscount := e.ApplyGroupDiscount(subtotal, req.Members)
	afterOffer, specialDiscount := e.ApplySpecialOffer(afterGroup)

	surcharge := decimal.Zero
	if e.NeedsSurcharge(plan, features) {
		_, surcharge = e.ApplySurcharge(afterOffer)
	}

	b := &Breakdown{
		Plan:            plan.Name,
		Features:        append([]string{}, req.Features...),
		Members:         req.Members,
		Lines:           lineItems(plan, features, req.Members),
		Subtotal:        round(subtotal),
		GroupDiscount:   round(groupDiscount),
		SpecialDiscount: round(specialDiscount),
		Surcharge:       round(surcharge),
	}
	b.Total = b.Subtotal.Sub(b.GroupDiscount).Sub(b.SpecialDiscount).Add(b.Surcharge)

	if b.Total.IsNegative() {
		return nil, errors.Newf(errors.TypeNegativeTotal, "Total cost cannot be negative: %s", b.Total.StringFixed(CurrencyPlaces))
	}

	e.log.Debug("quote computed",
		zap.String("plan", b.Plan),
		zap.Strings("features", b.Features),
		zap.Int("members", b.Members),
		zap.String("subtotal", b.Subtotal.StringFixed(CurrencyPlaces)),
		zap.String("group_discount", b.GroupDiscount.StringFixed(CurrencyPlaces)),
		zap.String("special_discount", b.SpecialDiscount.StringFixed(CurrencyPlaces)),
		zap.String("surcharge", b.Surcharge.StringFixed(CurrencyPlaces)),
		zap.String("total", b.Total.StringFixed(CurrencyPlaces)))

	return b, nil
}

func lineItems(plan catalog.Plan, features []catalog.Feature, members int) []LineItem {
	qty := decimal.NewFromInt(int64(members))
	lines := make([]LineItem, 0, len(features)+1)
	lines = append(lines, LineItem{
		Label:    plan.Name,
		Kind:     "plan",
		UnitCost: plan.BaseCost,
		Quantity: members,
		Amount:   plan.BaseCost.Mul(qty),
		Premium:  plan.Premium,
	})
	for _, f := range features {
		lines = append(lines, LineItem{
			Label:    f.Name,
			Kind:     "feature",
			UnitCost: f.Cost,
			Quantity: members,
			Amount:   f.Cost.Mul(qty),
			Premium:  f.Premium,
		})
	}
	return lines
}

// round rounds half away from zero to CurrencyPlaces
func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPlaces)
}
