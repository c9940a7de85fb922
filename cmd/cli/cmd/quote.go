// Package cmd - quote command
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gym-cost/core/catalog"
	"gym-cost/core/output"
	"gym-cost/core/pricing"
	"gym-cost/core/ui"
	"gym-cost/internal/config"
	"gym-cost/internal/errors"
	"gym-cost/internal/logging"
)

var errCancelled = errors.Input("membership cancelled")

var (
	quotePlan     string
	quoteFeatures []string
	quoteMembers  int
	quoteYes      bool
	quoteFormat   string
	quoteDetails  bool
	quoteNoColor  bool
	catalogPath   string
)

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a membership",
	Long: `Price a membership from a plan, optional features and a member count.

Anything not given as a flag is asked for interactively. Plans and features
can be entered by name or by menu number; features are comma separated.
Unless --yes is given, the summary is followed by a confirmation question and
the command exits non-zero if the membership is not confirmed.

Examples:
  gym-cost quote
  gym-cost quote --plan Premium --feature "Group Classes" --members 1
  gym-cost quote --plan Family --feature "Sauna Access" --members 3 --details
  gym-cost quote --plan Basic --members 2 --format json --yes`,
	Args: cobra.NoArgs,
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVarP(&quotePlan, "plan", "p", "", "membership plan name")
	quoteCmd.Flags().StringArrayVar(&quoteFeatures, "feature", nil, "additional feature (repeatable)")
	quoteCmd.Flags().IntVarP(&quoteMembers, "members", "m", 0, "number of members")
	quoteCmd.Flags().BoolVarP(&quoteYes, "yes", "y", false, "skip the confirmation question")
	quoteCmd.Flags().StringVarP(&quoteFormat, "format", "f", "", "output format (cli, json, markdown)")
	quoteCmd.Flags().BoolVarP(&quoteDetails, "details", "d", false, "show per-item lines")
	quoteCmd.Flags().BoolVar(&quoteNoColor, "no-color", false, "disable colored output")
	quoteCmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file (.hcl, .yaml, .yml, .json)")
}

func runQuote(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	log := logging.Named("cli")

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	engine := pricing.NewEngine(cat)

	noColor := quoteNoColor || cfg.Output.NoColor
	w := ui.NewWriter(cmd.OutOrStdout(), noColor)
	prompter := ui.NewPrompter(cmd.InOrStdin(), w, cat, cfg.Prompt.MaxAttempts)

	req, err := collectRequest(cmd, prompter)
	if err != nil {
		return err
	}
	log.Debug("quote requested",
		zap.String("plan", req.Plan),
		zap.Strings("features", req.Features),
		zap.Int("members", req.Members),
	)

	b, err := engine.Quote(req)
	if err != nil {
		return err
	}

	format := quoteFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	formatter, err := output.NewRegistry(output.Options{NoColor: noColor, Details: quoteDetails}).Get(format)
	if err != nil {
		return err
	}
	if err := formatter.Render(cmd.OutOrStdout(), output.NewQuoteResult(b)); err != nil {
		return errors.Internal("failed to render quote", err)
	}

	if quoteYes {
		return nil
	}
	if ui.ConfirmAndFinalize(prompter, b) == ui.Cancelled {
		return errCancelled
	}
	return nil
}

// collectRequest fills in whatever the flags left out. Features are only
// asked for when the plan is, since an empty feature list is valid.
func collectRequest(cmd *cobra.Command, p *ui.Prompter) (pricing.Request, error) {
	req := pricing.Request{
		Plan:     quotePlan,
		Features: quoteFeatures,
		Members:  quoteMembers,
	}

	var err error
	if !cmd.Flags().Changed("plan") {
		if req.Plan, err = p.PromptPlan(); err != nil {
			return req, err
		}
		if !cmd.Flags().Changed("feature") {
			if req.Features, err = p.PromptFeatures(); err != nil {
				return req, err
			}
		}
	}
	if !cmd.Flags().Changed("members") {
		if req.Members, err = p.PromptMembers(); err != nil {
			return req, err
		}
	}
	return req, nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	path := catalogPath
	if path == "" {
		path = cfg.Catalog.Path
	}
	return catalog.LoadOrDefault(path)
}
