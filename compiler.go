package animax

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yacobolo/animax/internal/page"
	"github.com/yacobolo/animax/internal/preset"
	"github.com/yacobolo/animax/internal/sandbox"
	"github.com/yacobolo/animax/internal/style"
)

// ErrNotFound is returned by RenderFile when the page does not exist. It
// matches fs.ErrNotExist.
var ErrNotFound = errors.New("page not found")

// DefaultStylesheet is the stylesheet href of rendered documents.
const DefaultStylesheet = "styles.css"

type (
	// Capabilities are the services page logic may call.
	Capabilities = sandbox.Capabilities
	// Bindings are the values page logic declared or exported.
	Bindings = sandbox.Bindings
	// Document is a parsed page.
	Document = page.Document
)

// Options configures a Compiler. The zero value is usable.
type Options struct {
	// Capabilities exposed to page logic. Missing ones are stubbed.
	Capabilities Capabilities
	// Timeout bounds one logic run; zero means sandbox.DefaultTimeout.
	Timeout time.Duration
	Logger  *slog.Logger
	// LegacyTruncation ends every page region and style rule at the first
	// closing delimiter instead of the balanced one.
	LegacyTruncation bool
	// Sanitize passes rendered markup through a user-content HTML policy
	// that keeps class attributes.
	Sanitize bool
	// Presets replaces the built-in preset catalog.
	Presets *preset.Registry
	// Stylesheet is the href linked from rendered documents.
	Stylesheet string
}

// Compiler compiles pages and styles against one preset catalog. It is
// safe for concurrent use.
type Compiler struct {
	caps       Capabilities
	timeout    time.Duration
	logger     *slog.Logger
	pageOpts   page.Options
	presets    *preset.Registry
	tags       page.TagTable
	styles     *style.Compiler
	policy     *bluemonday.Policy
	stylesheet string
}

// NewCompiler builds a compiler from opts.
func NewCompiler(opts Options) *Compiler {
	c := &Compiler{
		caps:       opts.Capabilities,
		timeout:    opts.Timeout,
		logger:     opts.Logger,
		pageOpts:   page.Options{Truncate: opts.LegacyTruncation},
		presets:    opts.Presets,
		stylesheet: opts.Stylesheet,
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.presets == nil {
		c.presets = preset.New()
	}
	if c.stylesheet == "" {
		c.stylesheet = DefaultStylesheet
	}
	if opts.Sanitize {
		c.policy = bluemonday.UGCPolicy()
		c.policy.AllowAttrs("class").Globally()
	}
	c.tags = page.NewTagTable(c.presets.Names())
	c.styles = style.NewCompiler(c.presets, style.ExtractOptions{Truncate: opts.LegacyTruncation})
	return c
}

// Page is a compiled page, ready to render any number of times.
type Page struct {
	Document Document
	Template *page.Template
}

// ParsePage splits a page source into config, logic and template.
func (c *Compiler) ParsePage(src string) Document {
	return page.Parse(src, c.pageOpts)
}

// CompilePage parses src and compiles its template.
func (c *Compiler) CompilePage(src string) *Page {
	doc := c.ParsePage(src)
	return &Page{
		Document: doc,
		Template: page.Compile(doc.Template, c.tags),
	}
}

// RenderPage compiles and renders src with the caller's data. Keys of data
// override bindings of the page logic.
func (c *Compiler) RenderPage(ctx context.Context, src string, data map[string]any) string {
	return c.Render(ctx, c.CompilePage(src), data)
}

// Render runs the page logic and evaluates the template. Each call gets its
// own sandbox and a render_id log attribute.
func (c *Compiler) Render(ctx context.Context, p *Page, data map[string]any) string {
	logger := c.logger.With("render_id", uuid.NewString())
	start := time.Now()

	sb := sandbox.New(c.caps, sandbox.WithTimeout(c.timeout), sandbox.WithLogger(logger))
	bindings := sb.Evaluate(ctx, p.Document.Logic)

	out := page.NewRenderer(logger).Render(ctx, p.Template, bindings, data)
	if c.policy != nil {
		out = c.policy.Sanitize(out)
	}

	logger.DebugContext(ctx, "page rendered",
		"bindings", len(bindings),
		"bytes", len(out),
		"duration", time.Since(start))
	return out
}

// RenderDocument renders src and wraps the markup in a full HTML document
// whose title, lang and description come from the page config.
func (c *Compiler) RenderDocument(ctx context.Context, src string, data map[string]any) (string, error) {
	return c.document(ctx, c.CompilePage(src), data, c.stylesheet)
}

func (c *Compiler) document(ctx context.Context, p *Page, data map[string]any, stylesheet string) (string, error) {
	body := c.Render(ctx, p, data)
	out, err := page.ShellFor(p.Document.Config, stylesheet).Wrap(body)
	if err != nil {
		return "", fmt.Errorf("wrap document: %w", err)
	}
	return out, nil
}

// RenderFile reads and renders the page at path. A missing file yields an
// error matching ErrNotFound.
func (c *Compiler) RenderFile(ctx context.Context, path string, data map[string]any) (string, error) {
	src, err := readPage(path)
	if err != nil {
		return "", err
	}
	return c.RenderPage(ctx, src, data), nil
}

// RenderDocumentFile is RenderFile producing a full HTML document.
func (c *Compiler) RenderDocumentFile(ctx context.Context, path string, data map[string]any) (string, error) {
	src, err := readPage(path)
	if err != nil {
		return "", err
	}
	return c.RenderDocument(ctx, src, data)
}

func readPage(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return "", fmt.Errorf("read page: %w", err)
	}
	return string(src), nil
}

// CompileStyles compiles style sources into one stylesheet.
func (c *Compiler) CompileStyles(sources ...string) string {
	return c.styles.Compile(sources...)
}

// CompileStyleFiles reads and compiles style files in order. Unreadable
// files are reported as warnings and skipped.
func (c *Compiler) CompileStyleFiles(paths []string) (string, []string) {
	var (
		sources  []string
		warnings []string
	)
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Failed to read %s: %v", path, err))
			continue
		}
		sources = append(sources, string(src))
	}
	return c.CompileStyles(sources...), warnings
}

// PresetStyles renders every catalog style preset as a class named after
// its key, so preset markers in templates resolve.
func (c *Compiler) PresetStyles() string {
	return c.styles.CompilePresets(c.presets.Names())
}
