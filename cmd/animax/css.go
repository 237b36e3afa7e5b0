package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/animax"
)

var cssCmd = &cobra.Command{
	Use:   "css <file>...",
	Short: "Compile style files to CSS on stdout",
	Args:  cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		c := animax.NewCompiler(buildOptions())
		css, warnings := c.CompileStyleFiles(args)
		if presets, _ := cmd.Flags().GetBool("presets"); presets {
			if css != "" {
				css += "\n"
			}
			css += c.PresetStyles()
		}

		quiet := getBoolWithFallback("quiet", "quiet", false)
		if !quiet {
			for _, w := range warnings {
				fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), css)
		return nil
	},
}

func init() {
	cssCmd.Flags().Bool("presets", false, "Append catalog preset classes")
}
