package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/tableone"
	"github.com/katalvlaran/tableone/blueprint"
	"github.com/katalvlaran/tableone/dataset"
	"github.com/katalvlaran/tableone/dimension"
	"github.com/katalvlaran/tableone/render"
	"github.com/katalvlaran/tableone/stats"
	"github.com/katalvlaran/tableone/theme"
)

var (
	buildData      string
	buildVars      []string
	buildGroup     string
	buildStratify  string
	buildTitle     string
	buildMissing   bool
	buildPValue    bool
	buildTotals    bool
	buildSummary   string
	buildContTest  string
	buildCatTest   string
	buildFormat    string
	buildTheme     string
	buildThemeFile string
	buildOutput    string
	buildParallel  bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a summary table from a CSV file",
	Example: `  tableone build --data trial.csv --vars age,sex --group treatment --pvalue
  tableone build --data trial.csv --vars age,sex,bmi --group arm --stratify site \
      --missing --totals --format latex --output table1.tex
  tableone build --data survey.csv --vars income --summary median_iqr --theme journal`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if buildData == "" {
			return fmt.Errorf("--data is required")
		}
		if len(buildVars) == 0 {
			return fmt.Errorf("--vars is required")
		}

		f := cmd.Flags()
		pick := func(flag, flagVal, cfgVal string) string {
			if f.Changed(flag) {
				return flagVal
			}
			return cfgVal
		}
		pickBool := func(flag string, flagVal, cfgVal bool) bool {
			if f.Changed(flag) {
				return flagVal
			}
			return cfgVal
		}

		opts := dimension.DefaultOptions()
		opts.Title = buildTitle
		opts.StratifyBy = buildStratify
		opts.ShowMissing = pickBool("missing", buildMissing, cfg.ShowMissing)
		opts.ShowPValue = pickBool("pvalue", buildPValue, cfg.ShowPValue)
		opts.ShowTotals = pickBool("totals", buildTotals, cfg.ShowTotals)
		opts.Parallel = pickBool("parallel", buildParallel, cfg.Parallel)
		opts.NumericSummary = pick("summary", buildSummary, cfg.NumericSummary)
		opts.ContinuousTest = pick("cont-test", buildContTest, cfg.ContinuousTest)
		opts.CategoricalTest = pick("cat-test", buildCatTest, cfg.CategoricalTest)

		formatName := pick("format", buildFormat, cfg.Format)
		format, err := render.ParseFormat(formatName)
		if err != nil {
			return fmt.Errorf("%w: %q", render.ErrUnknownFormat, formatName)
		}

		themes := theme.NewRegistry()
		if tf := pick("theme-file", buildThemeFile, cfg.ThemeFile); tf != "" {
			if err := themes.LoadFile(tf); err != nil {
				return err
			}
		}
		th, err := themes.Lookup(pick("theme", buildTheme, cfg.Theme))
		if err != nil {
			return err
		}

		file, err := os.Open(buildData)
		if err != nil {
			return fmt.Errorf("open data: %w", err)
		}
		defer file.Close()
		ds, err := dataset.FromCSV(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", buildData, err)
		}

		var groups dimension.GroupSpec
		if buildGroup != "" {
			groups = dimension.Groups(buildGroup)
		}

		var bpOpts []blueprint.Option
		if verbose {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			bpOpts = append(bpOpts, blueprint.WithLogger(logger))
		}

		bp, err := tableone.Build(ds.All(), buildVars, groups, stats.NewRegistry(), opts, bpOpts...)
		if err != nil {
			return err
		}
		out, err := bp.Render(format, th)
		if err != nil {
			return err
		}

		if buildOutput != "" {
			if err := os.WriteFile(buildOutput, []byte(out), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote %s table to %s\n", formatName, buildOutput)
		} else {
			fmt.Print(out)
			if !strings.HasSuffix(out, "\n") {
				fmt.Println()
			}
		}

		if diags := bp.Diagnostics(); len(diags) > 0 {
			fmt.Fprintf(os.Stderr, "⚠ %d cell(s) failed to compute; run with --verbose for details\n", len(diags))
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildData, "data", "", "CSV file with a header row (required)")
	buildCmd.Flags().StringSliceVar(&buildVars, "vars", nil, "comma-separated analysis variables (required)")
	buildCmd.Flags().StringVar(&buildGroup, "group", "", "grouping variable (one column per level)")
	buildCmd.Flags().StringVar(&buildStratify, "stratify", "", "stratification variable (row plan repeats per level)")
	buildCmd.Flags().StringVar(&buildTitle, "title", "", "table title")
	buildCmd.Flags().BoolVar(&buildMissing, "missing", false, "add missing-count rows")
	buildCmd.Flags().BoolVar(&buildPValue, "pvalue", false, "add a p-value column (grouped tables only)")
	buildCmd.Flags().BoolVar(&buildTotals, "totals", false, "add an Overall column")
	buildCmd.Flags().StringVar(&buildSummary, "summary", "", "numeric summary: mean_sd, median_iqr, mean_ci, geo_mean_sd")
	buildCmd.Flags().StringVar(&buildContTest, "cont-test", "", "continuous test: t, welch, wilcoxon, anova")
	buildCmd.Flags().StringVar(&buildCatTest, "cat-test", "", "categorical test: chisq, fisher")
	buildCmd.Flags().StringVar(&buildFormat, "format", "", "output format: text, html, latex")
	buildCmd.Flags().StringVar(&buildTheme, "theme", "", "theme name: default, compact, journal")
	buildCmd.Flags().StringVar(&buildThemeFile, "theme-file", "", "YAML file with additional themes")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "write to file instead of stdout")
	buildCmd.Flags().BoolVar(&buildParallel, "parallel", false, "evaluate cells concurrently")
	rootCmd.AddCommand(buildCmd)
}
