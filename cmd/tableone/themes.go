package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tableone/theme"
)

var themesFile string

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := theme.NewRegistry()
		if themesFile != "" {
			if err := reg.LoadFile(themesFile); err != nil {
				return err
			}
		}
		for _, name := range reg.Names() {
			th, err := reg.Lookup(name)
			if err != nil {
				return err
			}
			fmt.Printf("%-10s precision=%d border=%s error=%q\n",
				name, th.Precision, th.Border, th.ErrorMarker)
		}
		return nil
	},
}

func init() {
	themesCmd.Flags().StringVar(&themesFile, "theme-file", "", "YAML file with additional themes")
	rootCmd.AddCommand(themesCmd)
}
