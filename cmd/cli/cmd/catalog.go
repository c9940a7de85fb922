// Package cmd - catalog command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gym-cost/core/output"
	"gym-cost/core/ui"
	"gym-cost/internal/config"
)

// catalogCmd lists what can be quoted
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List plans, features and pricing rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		w := ui.NewWriter(cmd.OutOrStdout(), quoteNoColor || cfg.Output.NoColor)

		w.Header("Plans")
		plans := w.NewTable("#", "Plan", "Cost", "Description").AlignRight(0).AlignRight(2)
		for i, p := range cat.Plans() {
			name := p.Name
			if p.Premium {
				name += " *"
			}
			plans.AddRow(fmt.Sprint(i+1), name, output.Money(p.BaseCost), p.Description)
		}
		plans.Render()

		w.Header("Features")
		features := w.NewTable("#", "Feature", "Cost", "Description").AlignRight(0).AlignRight(2)
		for i, f := range cat.Features() {
			name := f.Name
			if f.Premium {
				name += " *"
			}
			features.AddRow(fmt.Sprint(i+1), name, output.Money(f.Cost), f.Description)
		}
		features.Render()

		rules := cat.Rules()
		w.Header("Rules")
		w.Println("Group discount:     %s%% for %d or more members", rules.GroupDiscountRate.Shift(2).String(), rules.GroupMinMembers)
		for _, o := range rules.SpecialOffers {
			w.Println("Special offer:      %s off totals above %s", output.Money(o.Discount), output.Money(o.Threshold))
		}
		w.Println("Premium surcharge:  %s%% on memberships with * items", rules.SurchargeRate.Shift(2).String())
		return nil
	},
}

func init() {
	catalogCmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file (.hcl, .yaml, .yml, .json)")
	catalogCmd.Flags().BoolVar(&quoteNoColor, "no-color", false, "disable colored output")
}
