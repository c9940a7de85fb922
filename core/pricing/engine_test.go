package pricing

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym-cost/core/catalog"
	"gym-cost/internal/errors"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// assertAmount compares decimals numerically and reports both as fixed-point strings
func assertAmount(t *testing.T, want string, got decimal.Decimal, label string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s: expected %s, got %s", label, want, got.StringFixed(CurrencyPlaces))
}

func newTestEngine() *Engine {
	return NewEngine(catalog.Default())
}

func TestValidatePlan(t *testing.T) {
	e := newTestEngine()

	for _, name := range []string{"Basic", "Premium", "Family"} {
		assert.NoError(t, e.ValidatePlan(name), name)
	}

	err := e.ValidatePlan("Gold")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeUnknownPlan))
	assert.Contains(t, err.Error(), "Plan 'Gold' is not available")
}

func TestValidateFeatures(t *testing.T) {
	e := newTestEngine()

	assert.NoError(t, e.ValidateFeatures(nil))
	assert.NoError(t, e.ValidateFeatures([]string{"Personal Training", "Sauna Access"}))

	err := e.ValidateFeatures([]string{"Personal Training", "Swimming"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeUnknownFeature))
	assert.Contains(t, err.Error(), "Feature(s) not available: Swimming")

	err = e.ValidateFeatures([]string{"Swimming", "Sauna Access", "Yoga"})
	require.Error(t, err)
	assert.Equal(t, "Feature(s) not available: Swimming, Yoga", err.Error())
}

func TestSubtotal(t *testing.T) {
	e := newTestEngine()
	c := e.Catalog()

	for _, p := range c.Plans() {
		t.Run("base cost "+p.Name, func(t *testing.T) {
			assertAmount(t, p.BaseCost.String(), e.Subtotal(p, nil, 1), "subtotal")
		})
	}

	premium, _ := c.Plan("Premium")
	pt, _ := c.Feature("Personal Training")
	gc, _ := c.Feature("Group Classes")
	assertAmount(t, "460", e.Subtotal(premium, []catalog.Feature{pt, gc}, 2), "premium with features")

	// duplicates are charged per occurrence
	basic, _ := c.Plan("Basic")
	assertAmount(t, "160", e.Subtotal(basic, []catalog.Feature{gc, gc}, 1), "duplicate feature")
}

func TestApplyGroupDiscount(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name         string
		subtotal     string
		members      int
		wantTotal    string
		wantDiscount string
	}{
		{"single member", "150", 1, "150", "0"},
		{"two members", "200", 2, "180", "20"},
		{"three members", "300", 3, "270", "30"},
		{"fractional", "675", 3, "607.5", "67.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, discount := e.ApplyGroupDiscount(dec(tt.subtotal), tt.members)
			assertAmount(t, tt.wantTotal, total, "total")
			assertAmount(t, tt.wantDiscount, discount, "discount")
		})
	}
}

func TestApplySpecialOffer(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name         string
		amount       string
		wantTotal    string
		wantDiscount string
	}{
		{"below lowest threshold", "199.99", "199.99", "0"},
		{"exactly 200 is not over", "200.00", "200.00", "0"},
		{"just over 200", "200.01", "180.01", "20"},
		{"between thresholds", "250.00", "230.00", "20"},
		{"exactly 400 takes lower offer", "400.00", "380.00", "20"},
		{"just over 400", "400.01", "350.01", "50"},
		{"well over 400", "450.00", "400.00", "50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, discount := e.ApplySpecialOffer(dec(tt.amount))
			assertAmount(t, tt.wantTotal, total, "total")
			assertAmount(t, tt.wantDiscount, discount, "discount")
		})
	}
}

func TestApplySpecialOfferFollowsThresholdOrder(t *testing.T) {
	// the highest threshold wins even when a lower one carries a bigger discount
	c := catalog.MustNew(
		[]catalog.Plan{{Name: "Basic", BaseCost: dec("100")}},
		nil,
		catalog.Rules{
			GroupMinMembers: 2,
			SpecialOffers: []catalog.SpecialOffer{
				{Threshold: dec("100"), Discount: dec("40")},
				{Threshold: dec("300"), Discount: dec("10")},
			},
		},
	)
	e := NewEngine(c)

	total, discount := e.ApplySpecialOffer(dec("350"))
	assertAmount(t, "10", discount, "discount")
	assertAmount(t, "340", total, "total")
}

func TestNeedsSurcharge(t *testing.T) {
	e := newTestEngine()
	c := e.Catalog()

	premium, _ := c.Plan("Premium")
	basic, _ := c.Plan("Basic")
	sauna, _ := c.Feature("Sauna Access")
	pt, _ := c.Feature("Personal Training")

	assert.True(t, e.NeedsSurcharge(premium, nil), "premium plan")
	assert.True(t, e.NeedsSurcharge(basic, []catalog.Feature{sauna}), "premium feature")
	assert.True(t, e.NeedsSurcharge(basic, []catalog.Feature{pt, sauna}), "premium feature among others")
	assert.False(t, e.NeedsSurcharge(basic, []catalog.Feature{pt}), "no premium")
	assert.False(t, e.NeedsSurcharge(basic, nil), "bare basic")
}

func TestApplySurcharge(t *testing.T) {
	e := newTestEngine()

	total, surcharge := e.ApplySurcharge(dec("200"))
	assertAmount(t, "30", surcharge, "surcharge")
	assertAmount(t, "230", total, "total")

	total, surcharge = e.ApplySurcharge(dec("557.5"))
	assertAmount(t, "83.625", surcharge, "unrounded surcharge")
	assertAmount(t, "641.125", total, "unrounded total")
}

func TestQuoteEndToEnd(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name      string
		req       Request
		subtotal  string
		group     string
		special   string
		surcharge string
		total     string
	}{
		{
			name:     "basic single",
			req:      Request{Plan: "Basic", Members: 1},
			subtotal: "100", group: "0", special: "0", surcharge: "0", total: "100",
		},
		{
			name:     "basic pair",
			req:      Request{Plan: "Basic", Members: 2},
			subtotal: "200", group: "20", special: "0", surcharge: "0", total: "180",
		},
		{
			name:     "premium with classes",
			req:      Request{Plan: "Premium", Features: []string{"Group Classes"}, Members: 1},
			subtotal: "180", group: "0", special: "0", surcharge: "27", total: "207",
		},
		{
			name:     "family with sauna",
			req:      Request{Plan: "Family", Features: []string{"Sauna Access"}, Members: 3},
			subtotal: "675", group: "67.50", special: "50", surcharge: "83.63", total: "641.13",
		},
		{
			// 410 exceeds 400 but the post-group 369 does not
			name:     "special offer after group discount",
			req:      Request{Plan: "Basic", Features: []string{"Personal Training", "Group Classes", "Sauna Access"}, Members: 2},
			subtotal: "410", group: "41", special: "20", surcharge: "52.35", total: "401.35",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := e.Quote(tt.req)
			require.NoError(t, err)

			assertAmount(t, tt.subtotal, b.Subtotal, "subtotal")
			assertAmount(t, tt.group, b.GroupDiscount, "group discount")
			assertAmount(t, tt.special, b.SpecialDiscount, "special discount")
			assertAmount(t, tt.surcharge, b.Surcharge, "surcharge")
			assertAmount(t, tt.total, b.Total, "total")

			recombined := b.Subtotal.Sub(b.GroupDiscount).Sub(b.SpecialDiscount).Add(b.Surcharge)
			assert.True(t, recombined.Equal(b.Total), "total must equal recombined rounded terms")
		})
	}
}

func TestQuoteLineItems(t *testing.T) {
	b, err := newTestEngine().Quote(Request{Plan: "Family", Features: []string{"Sauna Access"}, Members: 3})
	require.NoError(t, err)

	require.Len(t, b.Lines, 2)
	assert.Equal(t, "plan", b.Lines[0].Kind)
	assertAmount(t, "600", b.Lines[0].Amount, "plan line")
	assert.Equal(t, "Sauna Access", b.Lines[1].Label)
	assert.True(t, b.Lines[1].Premium)
	assertAmount(t, "75", b.Lines[1].Amount, "feature line")
}

func TestQuoteValidationErrors(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name     string
		req      Request
		wantType errors.Type
		wantMsg  string
	}{
		{"unknown plan", Request{Plan: "Gold", Members: 1}, errors.TypeUnknownPlan, "Gold"},
		{"unknown features", Request{Plan: "Basic", Features: []string{"Swimming", "Yoga"}, Members: 1}, errors.TypeUnknownFeature, "Swimming, Yoga"},
		{"zero members", Request{Plan: "Basic", Members: 0}, errors.TypeInvalidMemberCount, "at least 1"},
		{"negative members", Request{Plan: "Basic", Members: -2}, errors.TypeInvalidMemberCount, "-2"},
		{"plan checked before members", Request{Plan: "Gold", Members: 0}, errors.TypeUnknownPlan, "Gold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := e.Quote(tt.req)
			require.Error(t, err)
			assert.Nil(t, b)
			assert.True(t, errors.IsType(err, tt.wantType), "expected %s, got %v", tt.wantType, err)
			assert.True(t, errors.IsValidation(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestQuoteNegativeTotal(t *testing.T) {
	// a flat discount larger than the amount is the only way to go negative
	c := catalog.MustNew(
		[]catalog.Plan{{Name: "Trial", BaseCost: dec("10")}},
		nil,
		catalog.Rules{
			GroupMinMembers: 2,
			SpecialOffers:   []catalog.SpecialOffer{{Threshold: dec("5"), Discount: dec("25")}},
		},
	)

	_, err := NewEngine(c).Quote(Request{Plan: "Trial", Members: 1})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeNegativeTotal))
}

func TestQuoteDoesNotAliasRequest(t *testing.T) {
	features := []string{"Sauna Access"}
	b, err := newTestEngine().Quote(Request{Plan: "Basic", Features: features, Members: 1})
	require.NoError(t, err)

	features[0] = "mutated"
	assert.Equal(t, []string{"Sauna Access"}, b.Features)
}

func TestQuoteConcurrent(t *testing.T) {
	e := newTestEngine()
	req := Request{Plan: "Family", Features: []string{"Sauna Access"}, Members: 3}

	var wg sync.WaitGroup
	totals := make([]decimal.Decimal, 32)
	for i := range totals {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b, err := e.Quote(req)
			if err == nil {
				totals[i] = b.Total
			}
		}(i)
	}
	wg.Wait()

	for _, total := range totals {
		assertAmount(t, "641.13", total, "concurrent total")
	}
}
