package animax

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/yacobolo/animax/internal/style"
	"golang.org/x/sync/errgroup"
)

// BuildConfig holds build configuration
type BuildConfig struct {
	SourceDir   string   // "src"
	OutDir      string   // "dist"
	Pages       []string // page patterns below SourceDir, default **/*.max
	Styles      []string // style patterns below SourceDir, default **/*.maxt
	Stylesheet  string   // stylesheet file name in OutDir, default styles.css
	EmitPresets bool     // append catalog preset classes to the stylesheet
	Concurrency int      // parallel page renders, default GOMAXPROCS
	Options     Options  // compiler options
}

// BuiltPage records one rendered page.
type BuiltPage struct {
	Source string
	Output string
}

// BuildResult contains build stats
type BuildResult struct {
	Pages      []BuiltPage // in discovery order
	StyleFiles int
	Stylesheet string // written stylesheet path
	Styles     style.Stats
	PageScan   ScanStats
	StyleScan  ScanStats
	Warnings   []string
	Duration   time.Duration
}

func (cfg *BuildConfig) applyDefaults() {
	if cfg.SourceDir == "" {
		cfg.SourceDir = "."
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "dist"
	}
	if len(cfg.Pages) == 0 {
		cfg.Pages = DefaultPagePatterns
	}
	if len(cfg.Styles) == 0 {
		cfg.Styles = DefaultStylePatterns
	}
	if cfg.Stylesheet == "" {
		cfg.Stylesheet = DefaultStylesheet
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = runtime.GOMAXPROCS(0)
	}
}

// Build compiles every style file below SourceDir into one stylesheet and
// renders every page, with empty caller data, into a full document at the
// same relative path in OutDir with a .html extension. A file that fails
// is recorded as a warning and the build goes on.
func Build(ctx context.Context, cfg BuildConfig) (*BuildResult, error) {
	start := time.Now()
	cfg.applyDefaults()
	result := &BuildResult{}

	pages, pageStats, err := discoverFiles(cfg.SourceDir, cfg.Pages)
	if err != nil {
		return nil, fmt.Errorf("scan pages: %w", err)
	}
	styleFiles, styleStats, err := discoverFiles(cfg.SourceDir, cfg.Styles)
	if err != nil {
		return nil, fmt.Errorf("scan styles: %w", err)
	}
	result.PageScan, result.StyleScan = pageStats, styleStats
	result.StyleFiles = len(styleFiles)

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	c := NewCompiler(cfg.Options)
	logger := c.logger.With("source", cfg.SourceDir, "out", cfg.OutDir)
	logger.DebugContext(ctx, "build started", "pages", len(pages), "styles", len(styleFiles))

	css, warnings := c.CompileStyleFiles(styleFiles)
	result.Warnings = append(result.Warnings, warnings...)
	if cfg.EmitPresets {
		css = joinCSS(css, c.PresetStyles())
	}
	result.Styles = style.Inspect(css)

	result.Stylesheet = filepath.Join(cfg.OutDir, cfg.Stylesheet)
	if err := os.WriteFile(result.Stylesheet, []byte(css), 0o644); err != nil {
		return nil, fmt.Errorf("write stylesheet: %w", err)
	}

	built := make([]BuiltPage, len(pages))
	failures := make([]error, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for i, src := range pages {
		i, src := i, src
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out := outputPath(cfg.SourceDir, cfg.OutDir, src)
			failures[i] = c.buildPage(gctx, src, out, result.Stylesheet)
			built[i] = BuiltPage{Source: src, Output: out}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, err := range failures {
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Failed to build %s: %v", pages[i], err))
			continue
		}
		result.Pages = append(result.Pages, built[i])
	}

	result.Duration = time.Since(start)
	logger.InfoContext(ctx, "build finished",
		"pages", len(result.Pages),
		"warnings", len(result.Warnings),
		"duration", result.Duration)
	return result, nil
}

func (c *Compiler) buildPage(ctx context.Context, src, out, stylesheet string) error {
	raw, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	href, err := filepath.Rel(filepath.Dir(out), stylesheet)
	if err != nil {
		href = filepath.Base(stylesheet)
	}

	doc, err := c.document(ctx, c.CompilePage(string(raw)), nil, filepath.ToSlash(href))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	return os.WriteFile(out, []byte(doc), 0o644)
}

// outputPath maps a page below sourceDir to its document below outDir.
func outputPath(sourceDir, outDir, src string) string {
	rel := relativeTo(sourceDir, src)
	if strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		rel = filepath.Base(src)
	}
	return filepath.Join(outDir, strings.TrimSuffix(rel, filepath.Ext(rel))+".html")
}

func joinCSS(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}
