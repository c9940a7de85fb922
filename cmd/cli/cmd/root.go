// Package cmd provides the CLI commands for gym-cost.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"gym-cost/internal/config"
	"gym-cost/internal/logging"
)

// Version is set at build time with -ldflags "-X gym-cost/cmd/cli/cmd.Version=..."
var Version = "0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gym-cost",
	Short: "Quote gym membership prices",
	Long: `gym-cost prices gym memberships.

It combines a plan, optional add-on features and a member count, then applies
group discounts, special offers and the premium surcharge.

Examples:
  gym-cost quote
  gym-cost quote --plan Family --feature "Sauna Access" --members 3
  gym-cost quote --plan Basic --members 2 --format json --yes
  gym-cost catalog
  gym-cost serve --addr :8080`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the CLI. Errors other than a cancelled membership are printed
// as "ERROR: <message>".
func Execute() error {
	err := rootCmd.Execute()
	reportError(os.Stderr, err)
	return err
}

func reportError(w io.Writer, err error) {
	if err == nil || err == errCancelled {
		return
	}
	fmt.Fprintf(w, "ERROR: %v\n", err)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (.json, .yaml or .yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gym-cost version %s\n", Version)
	},
}
