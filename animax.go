// Package animax compiles AniMax pages and style sheets to HTML and CSS.
//
// A page (.max) has three optional regions: an @page block of key: value
// settings, an @backend block of logic and a <template> block of markup.
// A style file (.maxt) holds @style, @component, @theme and @animation
// rules written as nested property trees.
//
// # Rendering
//
// Render one page with caller data:
//
//	c := animax.NewCompiler(animax.Options{Logger: logger})
//	markup := c.RenderPage(ctx, src, map[string]any{"user": u})
//
// Rendering never fails. Faulty logic yields no bindings and a failing
// template expression yields "Render error: <message>" as the markup.
//
// # Styles
//
//	css := c.CompileStyles(src)
//
// # Building a site
//
//	result, err := animax.Build(ctx, animax.BuildConfig{
//		SourceDir: "src",
//		OutDir:    "dist",
//	})
//
// # Linting
//
// Check class references of page templates against the compiled styles:
//
//	result, err := animax.Lint(animax.LintConfig{SourceDir: "src"})
//	animax.WriteOutput(os.Stdout, result, animax.OutputIssues, cfg.ReportOptions())
//
// The animax command in cmd/animax wraps these operations.
package animax
