package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .animax.yaml config file",
	Long:  `Create a .animax.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigFile)
		}

		if err := os.WriteFile(defaultConfigFile, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigFile)
		return nil
	},
}

const defaultConfig = `# animax configuration

# Shared settings
source: .
verbose: false

# Build settings
build:
  out-dir: dist
  pages:
    - "**/*.max"
  styles:
    - "**/*.maxt"
  stylesheet: styles.css
  emit-presets: false
  concurrency: 0           # 0 = GOMAXPROCS

# Page rendering
render:
  timeout: 2s              # budget of one @backend run
  sanitize: false
  legacy-truncation: false

# Linting settings
lint:
  strict: false
  threshold: 0.0
  output-format: issues    # issues | summary | full | json | markdown
  max-issues-per-linter: 0 # 0 = unlimited
  max-same-issues: 0       # 0 = unlimited
  print-lines: true
  print-linter-name: true
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
