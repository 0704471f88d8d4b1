package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool

	// Loaded configuration; populated before any RunE fires.
	cfg *Config
)

var rootCmd = &cobra.Command{
	Use:   "tableone",
	Short: "tableone: build Table 1 summary tables from CSV data",
	Long: `tableone reads a CSV file, classifies the requested variables as
continuous or categorical, and renders a grouped descriptive summary
table — counts, means, medians, hypothesis tests — as plain text, HTML
or LaTeX.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(initConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.tableone/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log cell-evaluation diagnostics to stderr")
}

func initConfig() {
	c, err := loadConfigFile(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = &Config{
			Format:          "text",
			Theme:           "default",
			NumericSummary:  "mean_sd",
			ContinuousTest:  "t",
			CategoricalTest: "chisq",
		}
		return
	}
	cfg = c
}
