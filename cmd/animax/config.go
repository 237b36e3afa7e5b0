package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/animax"
)

const defaultConfigFile = ".animax.yaml"

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags, only those set explicitly. Flag defaults are applied by
	// the get*WithFallback helpers so they never shadow file or env values.
	flags := cmd.Flags()
	provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (ANIMAX_* prefix)
	if err := k.Load(env.Provider("ANIMAX_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to a config key. The first segment
// names the section, the rest are joined with dashes:
//
//	ANIMAX_BUILD_OUT_DIR         -> build.out-dir
//	ANIMAX_LINT_MAX_SAME_ISSUES  -> lint.max-same-issues
//	ANIMAX_VERBOSE               -> verbose
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "ANIMAX_"))
	section, rest, ok := strings.Cut(key, "_")
	if !ok {
		return key
	}
	switch section {
	case "build", "render", "lint":
		return section + "." + strings.ReplaceAll(rest, "_", "-")
	}
	return strings.ReplaceAll(key, "_", "-")
}

// newLogger builds the process logger from the verbose and quiet settings.
func newLogger() *slog.Logger {
	if getBoolWithFallback("quiet", "quiet", false) {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	level := slog.LevelWarn
	if getBoolWithFallback("verbose", "verbose", false) {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// buildOptions constructs the compiler options from koanf state.
func buildOptions() animax.Options {
	return animax.Options{
		Timeout:          getDurationWithFallback("timeout", "render.timeout", 0),
		Sanitize:         getBoolWithFallback("sanitize", "render.sanitize", false),
		LegacyTruncation: getBoolWithFallback("legacy-truncation", "render.legacy-truncation", false),
		Logger:           newLogger(),
	}
}

// buildBuildConfig constructs the library's BuildConfig struct from koanf state.
func buildBuildConfig() animax.BuildConfig {
	return animax.BuildConfig{
		SourceDir:   getStringWithFallback("source", "source", "."),
		OutDir:      getStringWithFallback("out-dir", "build.out-dir", "dist"),
		Pages:       getStringsWithFallback("pages", "build.pages", animax.DefaultPagePatterns),
		Styles:      getStringsWithFallback("styles", "build.styles", animax.DefaultStylePatterns),
		Stylesheet:  getStringWithFallback("stylesheet", "build.stylesheet", animax.DefaultStylesheet),
		EmitPresets: getBoolWithFallback("emit-presets", "build.emit-presets", false),
		Concurrency: getIntWithFallback("concurrency", "build.concurrency", 0),
		Options:     buildOptions(),
	}
}

// buildLintConfig constructs the library's LintConfig struct from koanf state.
func buildLintConfig() animax.LintConfig {
	return animax.LintConfig{
		SourceDir:          getStringWithFallback("source", "source", "."),
		Pages:              getStringsWithFallback("pages", "build.pages", animax.DefaultPagePatterns),
		Styles:             getStringsWithFallback("styles", "build.styles", animax.DefaultStylePatterns),
		IncludePresets:     getBoolWithFallback("presets", "build.emit-presets", false),
		LegacyTruncation:   getBoolWithFallback("legacy-truncation", "render.legacy-truncation", false),
		Strict:             getBoolWithFallback("strict", "lint.strict", false),
		MaxIssuesPerLinter: getIntWithFallback("max-issues-per-linter", "lint.max-issues-per-linter", 0),
		MaxSameIssues:      getIntWithFallback("max-same-issues", "lint.max-same-issues", 0),
		PrintIssuedLines:   getBoolWithFallback("print-lines", "lint.print-lines", true),
		PrintLinterName:    getBoolWithFallback("print-linter-name", "lint.print-linter-name", true),
		UseColors:          getBoolWithFallback("color", "color", false),
	}
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	if v := k.Strings(flagKey); len(v) > 0 {
		return v
	}
	if v := k.Strings(configKey); len(v) > 0 {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}

// getDurationWithFallback checks the flag key first, then the config file key, then returns the default.
func getDurationWithFallback(flagKey, configKey string, defaultVal time.Duration) time.Duration {
	if k.Exists(flagKey) {
		return k.Duration(flagKey)
	}
	if k.Exists(configKey) {
		return k.Duration(configKey)
	}
	return defaultVal
}

// getFloat64WithFallback checks the flag key first, then the config file key, then returns the default.
func getFloat64WithFallback(flagKey, configKey string, defaultVal float64) float64 {
	if k.Exists(flagKey) {
		return k.Float64(flagKey)
	}
	if k.Exists(configKey) {
		return k.Float64(configKey)
	}
	return defaultVal
}
