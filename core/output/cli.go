package output

import (
	"fmt"
	"io"
	"strings"

	"gym-cost/core/ui"
)

// CLIFormatter renders the terminal summary shown before confirmation
type CLIFormatter struct {
	NoColor bool
	Details bool
}

// Format implements Formatter
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render implements Formatter. Discount and surcharge lines are only shown
// when they apply.
func (f *CLIFormatter) Render(out io.Writer, result *QuoteResult) error {
	w := ui.NewWriter(out, f.NoColor)
	b := result.Breakdown

	w.Header("Membership Summary")
	w.Println("Plan:      %s", b.Plan)
	w.Println("Features:  %s", featureList(b.Features))
	w.Println("Members:   %d", b.Members)
	w.Println("")

	if f.Details {
		table := w.NewTable("Item", "Unit cost", "Members", "Amount").AlignRight(1).AlignRight(2).AlignRight(3)
		for _, line := range b.Lines {
			label := line.Label
			if line.Premium {
				label += " *"
			}
			table.AddRow(label, Money(line.UnitCost), fmt.Sprint(line.Quantity), Money(line.Amount))
		}
		table.Render()
		w.Println("")
	}

	amountLine(w, "Subtotal:", Money(b.Subtotal))
	if b.HasGroupDiscount() {
		amountLine(w, "Group discount:", w.Color(ui.Green, "-"+Money(b.GroupDiscount)))
	}
	if b.HasSpecialDiscount() {
		amountLine(w, "Special discount:", w.Color(ui.Green, "-"+Money(b.SpecialDiscount)))
	}
	if b.HasSurcharge() {
		amountLine(w, "Premium surcharge:", w.Color(ui.Yellow, "+"+Money(b.Surcharge)))
	}
	w.Println("%s", strings.Repeat("─", 32))
	amountLine(w, w.Color(ui.Bold, "Total:"), w.Color(ui.Bold+ui.Green, Money(b.Total)))
	w.Println("")
	w.Println("%s", w.Color(ui.Dim, "Quote "+result.ID))

	return nil
}

func amountLine(w *ui.Writer, label, amount string) {
	w.Println("%-20s %s", label, amount)
}
