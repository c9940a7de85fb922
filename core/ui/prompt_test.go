package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym-cost/core/catalog"
	"gym-cost/core/pricing"
	"gym-cost/internal/errors"
)

func newTestPrompter(input string, maxAttempts int) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	w := NewWriter(&out, true)
	return NewPrompter(strings.NewReader(input), w, catalog.Default(), maxAttempts), &out
}

func TestCollectRequest(t *testing.T) {
	p, out := newTestPrompter("2\n1, sauna access\n3\n", 3)

	req, err := p.CollectRequest()
	require.NoError(t, err)

	assert.Equal(t, pricing.Request{
		Plan:     "Premium",
		Features: []string{"Personal Training", "Sauna Access"},
		Members:  3,
	}, req)
	assert.Contains(t, out.String(), "1. Basic ($100.00) - Access to gym equipment and locker room.")
	assert.Contains(t, out.String(), "Sauna Access ($25.00) [premium]")
}

func TestCollectRequestRetries(t *testing.T) {
	p, out := newTestPrompter("Gold\nbasic\n\n0\nabc\n2\n", 3)

	req, err := p.CollectRequest()
	require.NoError(t, err)

	assert.Equal(t, "Basic", req.Plan)
	assert.Empty(t, req.Features)
	assert.Equal(t, 2, req.Members)
	assert.Contains(t, out.String(), "Plan 'Gold' is not available.")
	assert.Contains(t, out.String(), "'abc' is not a valid number of members")
}

func TestPromptFeaturesReportsAllInvalid(t *testing.T) {
	p, out := newTestPrompter("Swimming, 2, Yoga\nnone\n", 3)

	features, err := p.PromptFeatures()
	require.NoError(t, err)

	assert.Empty(t, features)
	assert.Contains(t, out.String(), "Feature(s) not available: Swimming, Yoga")
}

func TestPromptFeaturesKeepsDuplicates(t *testing.T) {
	p, _ := newTestPrompter("Group Classes, 2\n", 3)

	features, err := p.PromptFeatures()
	require.NoError(t, err)
	assert.Equal(t, []string{"Group Classes", "Group Classes"}, features)
}

func TestPromptGivesUpAfterMaxAttempts(t *testing.T) {
	p, _ := newTestPrompter("Gold\nSilver\nBasic\n", 2)

	_, err := p.PromptPlan()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInput))
	assert.Contains(t, err.Error(), "after 2 attempts")
}

func TestPromptEndOfInputCancels(t *testing.T) {
	p, _ := newTestPrompter("", 3)

	_, err := p.PromptMembers()
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestConfirmAndFinalize(t *testing.T) {
	b := &pricing.Breakdown{Total: decimal.RequireFromString("641.13")}

	tests := []struct {
		name    string
		input   string
		want    int
		wantOut string
	}{
		{"confirmed", "y\n", 641, "Membership confirmed. Total: $641.13"},
		{"confirmed after retry", "maybe\nYES\n", 641, "Please answer 'y' or 'n'."},
		{"declined", "n\n", Cancelled, "Membership cancelled."},
		{"input closed", "", Cancelled, "Membership cancelled."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out := newTestPrompter(tt.input, 3)
			assert.Equal(t, tt.want, ConfirmAndFinalize(p, b))
			assert.Contains(t, out.String(), tt.wantOut)
		})
	}
}

func TestConfirmAndFinalizeTruncates(t *testing.T) {
	p, _ := newTestPrompter("y\n", 3)
	b := &pricing.Breakdown{Total: decimal.RequireFromString("207.99")}

	assert.Equal(t, 207, ConfirmAndFinalize(p, b))
}
