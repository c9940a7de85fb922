package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym-cost/internal/errors"
)

// run executes the root command with fresh flag state
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	quotePlan, quoteFeatures, quoteMembers = "", nil, 0
	quoteYes, quoteFormat, quoteDetails, quoteNoColor = false, "", false, false
	catalogPath, serveAddr = "", ""
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestQuoteFromFlags(t *testing.T) {
	out, err := run(t, "",
		"quote", "--plan", "Family", "--feature", "Sauna Access", "--members", "3", "--yes", "--no-color")
	require.NoError(t, err)

	assert.Contains(t, out, "Features:  Sauna Access")
	assert.Contains(t, out, "Premium surcharge:   +$83.63")
	assert.Contains(t, out, "Total:               $641.13")
	assert.NotContains(t, out, "Confirm membership?")
}

func TestQuoteInteractive(t *testing.T) {
	out, err := run(t, "family\n3\n3\ny\n", "quote", "--no-color")
	require.NoError(t, err)

	assert.Contains(t, out, "Available membership plans")
	assert.Contains(t, out, "Total:               $641.13")
	assert.Contains(t, out, "Membership confirmed. Total: $641.13")
}

func TestQuoteInteractiveRetries(t *testing.T) {
	out, err := run(t, "Gold\nBasic\nYoga\n\nzero\n2\ny\n", "quote", "--no-color")
	require.NoError(t, err)

	assert.Contains(t, out, "Plan 'Gold' is not available.")
	assert.Contains(t, out, "Feature(s) not available: Yoga")
	assert.Contains(t, out, "'zero' is not a valid number of members")
	assert.Contains(t, out, "Membership confirmed. Total: $180.00")
}

func TestQuoteCancelled(t *testing.T) {
	out, err := run(t, "n\n", "quote", "--plan", "Basic", "--members", "1", "--no-color")
	require.Error(t, err)
	assert.Equal(t, errCancelled, err)
	assert.Contains(t, out, "Membership cancelled.")

	var stderr bytes.Buffer
	reportError(&stderr, err)
	assert.Empty(t, stderr.String())
}

func TestQuoteValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "unknown plan",
			args: []string{"--plan", "Gold", "--members", "1"},
			want: "ERROR: Plan 'Gold' is not available.\n",
		},
		{
			name: "unknown features",
			args: []string{"--plan", "Basic", "--feature", "Yoga", "--feature", "Pool", "--members", "1"},
			want: "ERROR: Feature(s) not available: Yoga, Pool\n",
		},
		{
			name: "zero members",
			args: []string{"--plan", "Basic", "--members", "0"},
			want: "ERROR: Number of members must be at least 1, got 0.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", append([]string{"quote", "--yes"}, tt.args...)...)
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))

			var stderr bytes.Buffer
			reportError(&stderr, err)
			assert.Equal(t, tt.want, stderr.String())
		})
	}
}

func TestQuoteJSONFormat(t *testing.T) {
	out, err := run(t, "", "quote", "--plan", "Basic", "--members", "2", "--format", "json", "--yes")
	require.NoError(t, err)

	var view struct {
		Total         string   `json:"total"`
		GroupDiscount string   `json:"group_discount"`
		Features      []string `json:"features"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "180.00", view.Total)
	assert.Equal(t, "20.00", view.GroupDiscount)
	assert.Empty(t, view.Features)
}

func TestQuoteUnknownFormat(t *testing.T) {
	_, err := run(t, "", "quote", "--plan", "Basic", "--members", "1", "--format", "html", "--yes")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestCatalogCommand(t *testing.T) {
	out, err := run(t, "", "catalog", "--no-color")
	require.NoError(t, err)

	assert.Contains(t, out, "Premium *")
	assert.Contains(t, out, "Sauna Access *")
	assert.Contains(t, out, "Group discount:     10% for 2 or more members")
	assert.Contains(t, out, "Special offer:      $50.00 off totals above $400.00")
	assert.Contains(t, out, "Premium surcharge:  15% on memberships with * items")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "gym-cost version "+Version+"\n", out)
}

func TestConfigShow(t *testing.T) {
	out, err := run(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "default_format: cli")
	assert.Contains(t, out, "max_attempts: 3")
}
