package catalog

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"gym-cost/internal/errors"
	"gym-cost/internal/logging"
)

// defaultGroupMinMembers applies when a catalog file omits group_min_members
const defaultGroupMinMembers = 2

// Load reads a catalog file. The format is chosen by extension:
// .hcl, .yaml/.yml or .json.
func Load(path string) (*Catalog, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config("failed to read catalog", err)
	}

	var c *Catalog
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".hcl":
		c, err = ParseHCL(src, path)
	case ".yaml", ".yml":
		c, err = ParseYAML(src)
	case ".json":
		c, err = ParseJSON(src)
	default:
		return nil, errors.Newf(errors.TypeConfig, "unsupported catalog format %q", ext)
	}
	if err != nil {
		return nil, err
	}

	logging.Debug("catalog loaded",
		zap.String("path", path),
		zap.Int("plans", len(c.planOrder)),
		zap.Int("features", len(c.featureOrder)))
	return c, nil
}

// LoadOrDefault loads path, or returns the built-in catalog when path is empty
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// document is the YAML/JSON catalog layout
type document struct {
	Plans    []planDoc    `json:"plans" yaml:"plans"`
	Features []featureDoc `json:"features" yaml:"features"`
	Rules    rulesDoc     `json:"rules" yaml:"rules"`
}

type planDoc struct {
	Name        string          `json:"name" yaml:"name"`
	BaseCost    decimal.Decimal `json:"base_cost" yaml:"base_cost"`
	Description string          `json:"description" yaml:"description"`
	Premium     bool            `json:"premium" yaml:"premium"`
}

type featureDoc struct {
	Name        string          `json:"name" yaml:"name"`
	Cost        decimal.Decimal `json:"cost" yaml:"cost"`
	Description string          `json:"description" yaml:"description"`
	Premium     bool            `json:"premium" yaml:"premium"`
}

type offerDoc struct {
	Threshold decimal.Decimal `json:"threshold" yaml:"threshold"`
	Discount  decimal.Decimal `json:"discount" yaml:"discount"`
}

type rulesDoc struct {
	GroupDiscountRate decimal.Decimal `json:"group_discount_rate" yaml:"group_discount_rate"`
	GroupMinMembers   *int            `json:"group_min_members" yaml:"group_min_members"`
	SpecialOffers     []offerDoc      `json:"special_offers" yaml:"special_offers"`
	SurchargeRate     decimal.Decimal `json:"surcharge_rate" yaml:"surcharge_rate"`
}

// ParseYAML builds a catalog from a YAML document. Unknown keys are rejected.
func ParseYAML(src []byte) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Config("failed to parse YAML catalog", err)
	}
	return doc.build()
}

// ParseJSON builds a catalog from a JSON document. Unknown keys are rejected.
func ParseJSON(src []byte) (*Catalog, error) {
	var doc document
	dec := json.NewDecoder(bytes.NewReader(src))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Config("failed to parse JSON catalog", err)
	}
	return doc.build()
}

func (d *document) build() (*Catalog, error) {
	plans := make([]Plan, 0, len(d.Plans))
	for _, p := range d.Plans {
		plans = append(plans, Plan(p))
	}

	features := make([]Feature, 0, len(d.Features))
	for _, f := range d.Features {
		features = append(features, Feature(f))
	}

	rules := Rules{
		GroupDiscountRate: d.Rules.GroupDiscountRate,
		GroupMinMembers:   defaultGroupMinMembers,
		SurchargeRate:     d.Rules.SurchargeRate,
	}
	if d.Rules.GroupMinMembers != nil {
		rules.GroupMinMembers = *d.Rules.GroupMinMembers
	}
	for _, o := range d.Rules.SpecialOffers {
		rules.SpecialOffers = append(rules.SpecialOffers, SpecialOffer(o))
	}

	return New(plans, features, rules)
}
