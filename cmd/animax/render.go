package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/yacobolo/animax"
)

var renderCmd = &cobra.Command{
	Use:   "render <page>",
	Short: "Render one page to stdout",
	Long: `Run the page logic, merge caller data over its bindings and print the
rendered template. Caller data is read from a YAML or JSON file.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.String("data", "", "YAML or JSON file with caller data")
	f.Bool("document", false, "Wrap the markup in a full HTML document")
	f.String("stylesheet", "", "Stylesheet href linked from the document")
	f.Duration("timeout", 0, "Time budget of the page logic (0=2s)")
	f.Bool("sanitize", false, "Sanitize rendered markup")
}

func runRender(cmd *cobra.Command, args []string) error {
	dataPath, _ := cmd.Flags().GetString("data")
	data, err := loadData(dataPath)
	if err != nil {
		return err
	}

	opts := buildOptions()
	opts.Stylesheet = getStringWithFallback("stylesheet", "build.stylesheet", "")
	c := animax.NewCompiler(opts)

	var out string
	if doc, _ := cmd.Flags().GetBool("document"); doc {
		out, err = c.RenderDocumentFile(cmd.Context(), args[0], data)
	} else {
		out, err = c.RenderFile(cmd.Context(), args[0], data)
	}
	if errors.Is(err, animax.ErrNotFound) {
		return fmt.Errorf("page %s does not exist", args[0])
	}
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// loadData reads caller data. YAML is a superset of JSON, so one parser
// serves both.
func loadData(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("reading data file: %w", err)
	}
	data := koanf.New(".")
	if err := data.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading data file %s: %w", path, err)
	}
	return data.Raw(), nil
}
