package output

import (
	"encoding/json"
	"io"
	"time"
)

// QuoteView is the wire representation of a quote. Amounts are fixed-point
// strings with two decimals so clients never see binary floats.
type QuoteView struct {
	ID              string     `json:"id"`
	CreatedAt       time.Time  `json:"created_at"`
	Currency        string     `json:"currency"`
	Plan            string     `json:"plan"`
	Features        []string   `json:"features"`
	Members         int        `json:"members"`
	Lines           []LineView `json:"lines"`
	Subtotal        string     `json:"subtotal"`
	GroupDiscount   string     `json:"group_discount"`
	SpecialDiscount string     `json:"special_discount"`
	Surcharge       string     `json:"surcharge"`
	Total           string     `json:"total"`
}

// LineView is the wire representation of a line item
type LineView struct {
	Label    string `json:"label"`
	Kind     string `json:"kind"`
	UnitCost string `json:"unit_cost"`
	Quantity int    `json:"quantity"`
	Amount   string `json:"amount"`
	Premium  bool   `json:"premium,omitempty"`
}

// NewView converts a result to its wire representation
func NewView(result *QuoteResult) QuoteView {
	b := result.Breakdown

	lines := make([]LineView, 0, len(b.Lines))
	for _, l := range b.Lines {
		lines = append(lines, LineView{
			Label:    l.Label,
			Kind:     l.Kind,
			UnitCost: fixed(l.UnitCost),
			Quantity: l.Quantity,
			Amount:   fixed(l.Amount),
			Premium:  l.Premium,
		})
	}

	features := b.Features
	if features == nil {
		features = []string{}
	}

	return QuoteView{
		ID:              result.ID,
		CreatedAt:       result.CreatedAt,
		Currency:        Currency,
		Plan:            b.Plan,
		Features:        features,
		Members:         b.Members,
		Lines:           lines,
		Subtotal:        fixed(b.Subtotal),
		GroupDiscount:   fixed(b.GroupDiscount),
		SpecialDiscount: fixed(b.SpecialDiscount),
		Surcharge:       fixed(b.Surcharge),
		Total:           fixed(b.Total),
	}
}

// JSONFormatter renders QuoteView as indented JSON
type JSONFormatter struct{}

// Format implements Formatter
func (JSONFormatter) Format() Format {
	return FormatJSON
}

// Render implements Formatter
func (JSONFormatter) Render(w io.Writer, result *QuoteResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewView(result))
}
