package ui

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"gym-cost/core/catalog"
	"gym-cost/core/pricing"
	"gym-cost/internal/errors"
)

// Cancelled is returned by ConfirmAndFinalize when the member declines or
// input ends before an answer.
const Cancelled = -1

// ErrCancelled is returned when input ends before a question is answered
var ErrCancelled = errors.Input("operation cancelled")

// Prompter collects a quote request from a line-oriented reader. Each
// question is re-asked at most maxAttempts times.
type Prompter struct {
	w           *Writer
	in          *bufio.Scanner
	catalog     *catalog.Catalog
	maxAttempts int
}

// NewPrompter creates a prompter reading from in and writing prompts to w
func NewPrompter(in io.Reader, w *Writer, c *catalog.Catalog, maxAttempts int) *Prompter {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Prompter{
		w:           w,
		in:          bufio.NewScanner(in),
		catalog:     c,
		maxAttempts: maxAttempts,
	}
}

// CollectRequest asks for the plan, features and member count in turn
func (p *Prompter) CollectRequest() (pricing.Request, error) {
	var req pricing.Request
	var err error

	if req.Plan, err = p.PromptPlan(); err != nil {
		return req, err
	}
	if req.Features, err = p.PromptFeatures(); err != nil {
		return req, err
	}
	if req.Members, err = p.PromptMembers(); err != nil {
		return req, err
	}
	return req, nil
}

// PromptPlan lists the plans and reads a choice by number or name
func (p *Prompter) PromptPlan() (string, error) {
	plans := p.catalog.Plans()

	p.w.SubHeader("Available membership plans")
	for i, plan := range plans {
		p.w.Println("  %d. %s ($%s) - %s", i+1, plan.Name, plan.BaseCost.StringFixed(pricing.CurrencyPlaces), plan.Description)
	}

	var chosen string
	err := p.ask("Select a plan: ", func(answer string) error {
		if idx, ok := menuIndex(answer, len(plans)); ok {
			chosen = plans[idx].Name
			return nil
		}
		for _, plan := range plans {
			if strings.EqualFold(plan.Name, answer) {
				chosen = plan.Name
				return nil
			}
		}
		return errors.Newf(errors.TypeUnknownPlan, "Plan '%s' is not available.", answer)
	})
	return chosen, err
}

// PromptFeatures lists the add-ons and reads a comma separated selection.
// A blank answer or "none" selects nothing.
func (p *Prompter) PromptFeatures() ([]string, error) {
	features := p.catalog.Features()

	p.w.SubHeader("Additional features")
	for i, f := range features {
		marker := ""
		if f.Premium {
			marker = " [premium]"
		}
		p.w.Println("  %d. %s ($%s)%s - %s", i+1, f.Name, f.Cost.StringFixed(pricing.CurrencyPlaces), marker, f.Description)
	}

	var chosen []string
	err := p.ask("Select features (comma separated, blank for none): ", func(answer string) error {
		chosen = []string{}
		if answer == "" || strings.EqualFold(answer, "none") {
			return nil
		}

		var invalid []string
		for _, token := range strings.Split(answer, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			if name, ok := p.matchFeature(token, features); ok {
				chosen = append(chosen, name)
			} else {
				invalid = append(invalid, token)
			}
		}
		if len(invalid) > 0 {
			return errors.Newf(errors.TypeUnknownFeature, "Feature(s) not available: %s", strings.Join(invalid, ", "))
		}
		return nil
	})
	return chosen, err
}

func (p *Prompter) matchFeature(token string, features []catalog.Feature) (string, bool) {
	if idx, ok := menuIndex(token, len(features)); ok {
		return features[idx].Name, true
	}
	for _, f := range features {
		if strings.EqualFold(f.Name, token) {
			return f.Name, true
		}
	}
	return "", false
}

// PromptMembers reads a member count of at least one
func (p *Prompter) PromptMembers() (int, error) {
	var members int
	err := p.ask("Number of members: ", func(answer string) error {
		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 {
			return errors.Newf(errors.TypeInvalidMemberCount, "'%s' is not a valid number of members; enter a whole number of at least 1.", answer)
		}
		members = n
		return nil
	})
	return members, err
}

// Confirm asks a yes/no question
func (p *Prompter) Confirm(question string) (bool, error) {
	var yes bool
	err := p.ask(question+" (y/n): ", func(answer string) error {
		switch strings.ToLower(answer) {
		case "y", "yes":
			yes = true
		case "n", "no":
			yes = false
		default:
			return errors.Input("Please answer 'y' or 'n'.")
		}
		return nil
	})
	return yes, err
}

// ask shows prompt until parse accepts an answer or attempts run out
func (p *Prompter) ask(prompt string, parse func(string) error) error {
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		answer, err := p.readLine(prompt)
		if err != nil {
			return err
		}
		if err := parse(answer); err != nil {
			p.w.Error("%s", err.Error())
			continue
		}
		return nil
	}
	return errors.Newf(errors.TypeInput, "no valid answer after %d attempts", p.maxAttempts)
}

func (p *Prompter) readLine(prompt string) (string, error) {
	p.w.Print("%s", prompt)
	if !p.in.Scan() {
		p.w.Println("")
		if err := p.in.Err(); err != nil {
			return "", errors.Wrap(errors.TypeInput, "failed to read input", err)
		}
		return "", ErrCancelled
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// menuIndex converts a 1-based menu number to a slice index
func menuIndex(answer string, n int) (int, bool) {
	i, err := strconv.Atoi(answer)
	if err != nil || i < 1 || i > n {
		return 0, false
	}
	return i - 1, true
}

// ConfirmAndFinalize asks the member to confirm the quote. It returns the
// total truncated to whole currency units on confirmation and Cancelled
// otherwise.
func ConfirmAndFinalize(p *Prompter, b *pricing.Breakdown) int {
	ok, err := p.Confirm("Confirm membership?")
	if err != nil || !ok {
		p.w.Warning("Membership cancelled.")
		return Cancelled
	}

	p.w.Success("Membership confirmed. Total: $%s", b.Total.StringFixed(pricing.CurrencyPlaces))
	return int(b.Total.IntPart())
}
