package catalog

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"

	"gym-cost/internal/errors"
)

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "plan", LabelNames: []string{"name"}},
		{Type: "feature", LabelNames: []string{"name"}},
		{Type: "rules"},
	},
}

var planSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "base_cost", Required: true},
		{Name: "description"},
		{Name: "premium"},
	},
}

var featureSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "cost", Required: true},
		{Name: "description"},
		{Name: "premium"},
	},
}

var rulesSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "group_discount_rate"},
		{Name: "group_min_members"},
		{Name: "surcharge_rate"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "special_offer"},
	},
}

var offerSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "threshold", Required: true},
		{Name: "discount", Required: true},
	},
}

// ParseHCL builds a catalog from HCL source:
//
//	plan "Basic" {
//	  base_cost   = 100
//	  description = "Access to gym equipment and locker room."
//	}
//
//	feature "Sauna Access" {
//	  cost    = 25
//	  premium = true
//	}
//
//	rules {
//	  group_discount_rate = 0.10
//	  surcharge_rate      = 0.15
//	  special_offer {
//	    threshold = 400
//	    discount  = 50
//	  }
//	}
func ParseHCL(src []byte, filename string) (*Catalog, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Config("failed to parse HCL catalog", diags)
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, errors.Config("invalid HCL catalog", diags)
	}

	d := &hclDecoder{}
	var plans []Plan
	var features []Feature
	rules := Rules{GroupMinMembers: defaultGroupMinMembers}
	seenRules := false

	for _, block := range content.Blocks {
		switch block.Type {
		case "plan":
			attrs := d.content(block.Body, planSchema)
			plans = append(plans, Plan{
				Name:        block.Labels[0],
				BaseCost:    d.decimalAttr(attrs, "base_cost"),
				Description: d.stringAttr(attrs, "description"),
				Premium:     d.boolAttr(attrs, "premium"),
			})
		case "feature":
			attrs := d.content(block.Body, featureSchema)
			features = append(features, Feature{
				Name:        block.Labels[0],
				Cost:        d.decimalAttr(attrs, "cost"),
				Description: d.stringAttr(attrs, "description"),
				Premium:     d.boolAttr(attrs, "premium"),
			})
		case "rules":
			if seenRules {
				d.fail(block.DefRange, "duplicate rules block")
				continue
			}
			seenRules = true
			body, diags := block.Body.Content(rulesSchema)
			if diags.HasErrors() {
				d.diags = d.diags.Extend(diags)
				continue
			}
			rules.GroupDiscountRate = d.decimalAttr(body.Attributes, "group_discount_rate")
			rules.SurchargeRate = d.decimalAttr(body.Attributes, "surcharge_rate")
			if _, ok := body.Attributes["group_min_members"]; ok {
				rules.GroupMinMembers = d.intAttr(body.Attributes, "group_min_members")
			}
			for _, ob := range body.Blocks {
				attrs := d.content(ob.Body, offerSchema)
				rules.SpecialOffers = append(rules.SpecialOffers, SpecialOffer{
					Threshold: d.decimalAttr(attrs, "threshold"),
					Discount:  d.decimalAttr(attrs, "discount"),
				})
			}
		}
	}

	if d.diags.HasErrors() {
		return nil, errors.Config("invalid HCL catalog", d.diags)
	}
	return New(plans, features, rules)
}

// hclDecoder accumulates diagnostics so every problem in a file is reported at once
type hclDecoder struct {
	diags hcl.Diagnostics
}

func (d *hclDecoder) fail(rng hcl.Range, detail string) {
	d.diags = append(d.diags, &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Invalid catalog",
		Detail:   detail,
		Subject:  rng.Ptr(),
	})
}

func (d *hclDecoder) content(body hcl.Body, schema *hcl.BodySchema) hcl.Attributes {
	content, diags := body.Content(schema)
	d.diags = d.diags.Extend(diags)
	if content == nil {
		return hcl.Attributes{}
	}
	return content.Attributes
}

// value evaluates a literal attribute. ok is false when the attribute is
// absent or invalid; invalid values are recorded as diagnostics.
func (d *hclDecoder) value(attrs hcl.Attributes, name string, want cty.Type) (cty.Value, bool) {
	attr, ok := attrs[name]
	if !ok {
		return cty.NilVal, false
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		d.diags = d.diags.Extend(diags)
		return cty.NilVal, false
	}
	if val.IsNull() || !val.IsKnown() || !val.Type().Equals(want) {
		d.fail(attr.Expr.Range(), fmt.Sprintf("%s must be a %s", name, want.FriendlyName()))
		return cty.NilVal, false
	}
	return val, true
}

func (d *hclDecoder) decimalAttr(attrs hcl.Attributes, name string) decimal.Decimal {
	val, ok := d.value(attrs, name, cty.Number)
	if !ok {
		return decimal.Zero
	}
	// 'f' with -1 precision yields the shortest exact literal, so 0.10 stays 0.1
	dec, err := decimal.NewFromString(val.AsBigFloat().Text('f', -1))
	if err != nil {
		d.fail(attrs[name].Expr.Range(), fmt.Sprintf("%s is not a decimal: %v", name, err))
		return decimal.Zero
	}
	return dec
}

func (d *hclDecoder) intAttr(attrs hcl.Attributes, name string) int {
	val, ok := d.value(attrs, name, cty.Number)
	if !ok {
		return 0
	}
	bf := val.AsBigFloat()
	if !bf.IsInt() {
		d.fail(attrs[name].Expr.Range(), fmt.Sprintf("%s must be a whole number", name))
		return 0
	}
	n, _ := bf.Int64()
	return int(n)
}

func (d *hclDecoder) stringAttr(attrs hcl.Attributes, name string) string {
	val, ok := d.value(attrs, name, cty.String)
	if !ok {
		return ""
	}
	return val.AsString()
}

func (d *hclDecoder) boolAttr(attrs hcl.Attributes, name string) bool {
	val, ok := d.value(attrs, name, cty.Bool)
	if !ok {
		return false
	}
	return val.True()
}
