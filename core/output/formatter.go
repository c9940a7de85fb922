// Package output provides output formatting for quotes.
// This package produces human and machine-readable outputs.
package output

import (
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gym-cost/core/pricing"
	"gym-cost/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable terminal summary
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// Currency is the single currency every quote is priced in
const Currency = "USD"

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given result
	Render(w io.Writer, result *QuoteResult) error
}

// QuoteResult is a priced quote ready for presentation
type QuoteResult struct {
	// ID uniquely identifies this quote
	ID string

	// CreatedAt is when the quote was priced
	CreatedAt time.Time

	// Breakdown is the engine result
	Breakdown *pricing.Breakdown
}

// NewQuoteResult stamps a breakdown with a fresh ID and timestamp
func NewQuoteResult(b *pricing.Breakdown) *QuoteResult {
	return &QuoteResult{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Breakdown: b,
	}
}

// Money renders an amount as $1234.50
func Money(d decimal.Decimal) string {
	return "$" + fixed(d)
}

func fixed(d decimal.Decimal) string {
	return d.StringFixed(pricing.CurrencyPlaces)
}

// Registry maps formats to formatters
type Registry struct {
	formatters map[Format]Formatter
}

// Options tunes the built-in formatters
type Options struct {
	// NoColor disables ANSI colors in the cli format
	NoColor bool

	// Details adds the per-item lines to the cli format
	Details bool
}

// NewRegistry returns a registry with the built-in formatters
func NewRegistry(opts Options) *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	r.Register(&CLIFormatter{NoColor: opts.NoColor, Details: opts.Details})
	r.Register(JSONFormatter{})
	r.Register(MarkdownFormatter{})
	return r
}

// Register adds a formatter, replacing any existing one for its format
func (r *Registry) Register(f Formatter) {
	r.formatters[f.Format()] = f
}

// Get returns the formatter for a format name
func (r *Registry) Get(name string) (Formatter, error) {
	f, ok := r.formatters[Format(name)]
	if !ok {
		return nil, errors.Newf(errors.TypeConfig, "unsupported output format %q (supported: %v)", name, r.Formats())
	}
	return f, nil
}

// Formats lists registered format names in sorted order
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.formatters))
	for f := range r.formatters {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// featureList joins feature names, or "None"
func featureList(features []string) string {
	if len(features) == 0 {
		return "None"
	}
	return strings.Join(features, ", ")
}
