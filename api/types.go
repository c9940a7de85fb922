// Package api - API types for membership quotes
// These types define the contract for the /quote and /catalog endpoints.
package api

import (
	"gym-cost/core/catalog"
	"gym-cost/core/output"
	"gym-cost/core/pricing"
)

// QuoteRequest is the input to POST /quote
type QuoteRequest struct {
	// Plan is the membership plan name
	Plan string `json:"plan"`

	// Features are additional feature names, charged once per occurrence
	Features []string `json:"features,omitempty"`

	// Members is the number of people on the membership
	Members int `json:"members"`
}

func (r QuoteRequest) toPricing() pricing.Request {
	return pricing.Request{
		Plan:     r.Plan,
		Features: r.Features,
		Members:  r.Members,
	}
}

// QuoteResponse is the output of POST /quote
type QuoteResponse = output.QuoteView

// CatalogResponse is the output of GET /catalog
type CatalogResponse struct {
	Currency string        `json:"currency"`
	Plans    []PlanView    `json:"plans"`
	Features []FeatureView `json:"features"`
	Rules    RulesView     `json:"rules"`
}

// PlanView describes a plan
type PlanView struct {
	Name        string `json:"name"`
	BaseCost    string `json:"base_cost"`
	Description string `json:"description,omitempty"`
	Premium     bool   `json:"premium"`
}

// FeatureView describes a feature
type FeatureView struct {
	Name        string `json:"name"`
	Cost        string `json:"cost"`
	Description string `json:"description,omitempty"`
	Premium     bool   `json:"premium"`
}

// RulesView describes the discount and surcharge rules
type RulesView struct {
	GroupDiscountRate string      `json:"group_discount_rate"`
	GroupMinMembers   int         `json:"group_min_members"`
	SpecialOffers     []OfferView `json:"special_offers"`
	SurchargeRate     string      `json:"surcharge_rate"`
}

// OfferView is a single special offer tier
type OfferView struct {
	Threshold string `json:"threshold"`
	Discount  string `json:"discount"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and the user-facing message
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newCatalogResponse(c *catalog.Catalog) CatalogResponse {
	resp := CatalogResponse{Currency: output.Currency}

	for _, p := range c.Plans() {
		resp.Plans = append(resp.Plans, PlanView{
			Name:        p.Name,
			BaseCost:    p.BaseCost.StringFixed(pricing.CurrencyPlaces),
			Description: p.Description,
			Premium:     p.Premium,
		})
	}
	resp.Features = make([]FeatureView, 0, len(c.Features()))
	for _, f := range c.Features() {
		resp.Features = append(resp.Features, FeatureView{
			Name:        f.Name,
			Cost:        f.Cost.StringFixed(pricing.CurrencyPlaces),
			Description: f.Description,
			Premium:     f.Premium,
		})
	}

	rules := c.Rules()
	resp.Rules = RulesView{
		GroupDiscountRate: rules.GroupDiscountRate.String(),
		GroupMinMembers:   rules.GroupMinMembers,
		SpecialOffers:     make([]OfferView, 0, len(rules.SpecialOffers)),
		SurchargeRate:     rules.SurchargeRate.String(),
	}
	for _, o := range rules.SpecialOffers {
		resp.Rules.SpecialOffers = append(resp.Rules.SpecialOffers, OfferView{
			Threshold: o.Threshold.StringFixed(pricing.CurrencyPlaces),
			Discount:  o.Discount.StringFixed(pricing.CurrencyPlaces),
		})
	}
	return resp
}
