package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config carries the persistent CLI defaults. Every field can be
// overridden per invocation by a flag.
type Config struct {
	Format          string `mapstructure:"format" yaml:"format"`
	Theme           string `mapstructure:"theme" yaml:"theme"`
	ThemeFile       string `mapstructure:"theme_file" yaml:"theme_file"`
	NumericSummary  string `mapstructure:"numeric_summary" yaml:"numeric_summary"`
	ContinuousTest  string `mapstructure:"continuous_test" yaml:"continuous_test"`
	CategoricalTest string `mapstructure:"categorical_test" yaml:"categorical_test"`
	ShowMissing     bool   `mapstructure:"show_missing" yaml:"show_missing"`
	ShowPValue      bool   `mapstructure:"show_pvalue" yaml:"show_pvalue"`
	ShowTotals      bool   `mapstructure:"show_totals" yaml:"show_totals"`
	Parallel        bool   `mapstructure:"parallel" yaml:"parallel"`
}

// loadConfigFile resolves configuration with the usual precedence:
// flags > environment (TABLEONE_*) > config file > defaults.
func loadConfigFile(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TABLEONE")
	v.AutomaticEnv()

	v.SetDefault("format", "text")
	v.SetDefault("theme", "default")
	v.SetDefault("numeric_summary", "mean_sd")
	v.SetDefault("continuous_test", "t")
	v.SetDefault("categorical_test", "chisq")
	v.SetDefault("show_missing", false)
	v.SetDefault("show_pvalue", false)
	v.SetDefault("show_totals", false)
	v.SetDefault("parallel", false)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".tableone"))
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			_ = v.ReadInConfig() // optional
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
