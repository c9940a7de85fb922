package output

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// MarkdownFormatter renders a quote as markdown tables
type MarkdownFormatter struct{}

// Format implements Formatter
func (MarkdownFormatter) Format() Format {
	return FormatMarkdown
}

// Render implements Formatter
func (MarkdownFormatter) Render(w io.Writer, result *QuoteResult) error {
	b := result.Breakdown
	var sb strings.Builder

	sb.WriteString("## Membership Quote\n\n")
	fmt.Fprintf(&sb, "**Plan:** %s  \n", b.Plan)
	fmt.Fprintf(&sb, "**Features:** %s  \n", featureList(b.Features))
	fmt.Fprintf(&sb, "**Members:** %d\n\n", b.Members)

	sb.WriteString("| Item | Unit cost | Members | Amount |\n")
	sb.WriteString("|---|---:|---:|---:|\n")
	for _, l := range b.Lines {
		label := l.Label
		if l.Premium {
			label += " (premium)"
		}
		fmt.Fprintf(&sb, "| %s | %s | %d | %s |\n", label, Money(l.UnitCost), l.Quantity, Money(l.Amount))
	}
	sb.WriteString("\n")

	sb.WriteString("| | Amount |\n")
	sb.WriteString("|---|---:|\n")
	fmt.Fprintf(&sb, "| Subtotal | %s |\n", Money(b.Subtotal))
	if b.HasGroupDiscount() {
		fmt.Fprintf(&sb, "| Group discount | -%s |\n", Money(b.GroupDiscount))
	}
	if b.HasSpecialDiscount() {
		fmt.Fprintf(&sb, "| Special discount | -%s |\n", Money(b.SpecialDiscount))
	}
	if b.HasSurcharge() {
		fmt.Fprintf(&sb, "| Premium surcharge | +%s |\n", Money(b.Surcharge))
	}
	fmt.Fprintf(&sb, "| **Total** | **%s** |\n\n", Money(b.Total))
	fmt.Fprintf(&sb, "_Quote %s, %s_\n", result.ID, result.CreatedAt.Format(time.RFC3339))

	_, err := io.WriteString(w, sb.String())
	return err
}
