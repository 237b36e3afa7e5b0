package animax

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const greetingPage = `@page {
  title: "Greeting"
  lang: tr
}

@backend {
  const message = "Merhaba"
  const count = 2
  exports.tagline = "from logic"
}

<template>
  <div @container>
    <h1 @title>{message}</h1>
    <p>{count} / {tagline}</p>
  </div>
</template>
`

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestRenderPage(t *testing.T) {
	c := NewCompiler(Options{})

	got := c.RenderPage(context.Background(), greetingPage, nil)
	assert.Equal(t, `
  <div class="container">
    <h1 class="title">Merhaba</h1>
    <p>2 / from logic</p>
  </div>
`, got)
}

func TestRenderPage_CallerDataWins(t *testing.T) {
	c := NewCompiler(Options{})

	got := c.RenderPage(context.Background(), greetingPage, map[string]any{"message": "<Hi>"})
	assert.Contains(t, got, `<h1 class="title">&lt;Hi&gt;</h1>`)
}

func TestRenderPage_Faults(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    string
		wantLog string
	}{
		{
			name:    "broken logic renders with no bindings",
			src:     "@backend { const x = = 1 }\n<template><p>static</p></template>",
			want:    "<p>static</p>",
			wantLog: "page logic failed",
		},
		{
			name:    "unknown name becomes the error marker",
			src:     "<template><p>{missing}</p></template>",
			want:    "Render error: ",
			wantLog: "template render failed",
		},
		{
			name: "no template renders empty",
			src:  "@page { title: x }",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			c := NewCompiler(Options{Logger: testLogger(&logs)})

			got := c.RenderPage(context.Background(), tt.src, nil)
			if tt.want == "" {
				assert.Empty(t, got)
			} else {
				assert.True(t, strings.HasPrefix(got, tt.want), "got %q", got)
			}
			if tt.wantLog != "" {
				assert.Contains(t, logs.String(), tt.wantLog)
			}
			assert.Contains(t, logs.String(), "render_id=")
		})
	}
}

func TestRenderPage_PresetMarkers(t *testing.T) {
	c := NewCompiler(Options{})

	got := c.RenderPage(context.Background(), `<template><div @cards-modern><p @card>x</p></div></template>`, nil)
	assert.Equal(t, `<div class="cards-modern"><p class="card">x</p></div>`, got)
}

func TestRenderPage_Sanitize(t *testing.T) {
	c := NewCompiler(Options{Sanitize: true})

	got := c.RenderPage(context.Background(), `<template><div class="x" onclick="steal()">ok</div></template>`, nil)
	assert.Contains(t, got, `class="x"`)
	assert.Contains(t, got, "ok")
	assert.NotContains(t, got, "onclick")
}

func TestRenderPage_LegacyTruncation(t *testing.T) {
	src := "@page {\n  title: \"a}b\"\n}\n<template><p>{title}</p></template>"

	balanced := NewCompiler(Options{}).ParsePage(src)
	assert.Equal(t, "a}b", balanced.Config["title"])

	legacy := NewCompiler(Options{LegacyTruncation: true}).ParsePage(src)
	assert.Equal(t, map[string]string{"title": "a"}, legacy.Config)
}

func TestRenderDocument(t *testing.T) {
	c := NewCompiler(Options{Stylesheet: "/assets/site.css"})

	doc, err := c.RenderDocument(context.Background(), greetingPage, nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, `<html lang="tr">`)
	assert.Contains(t, doc, "<title>Greeting</title>")
	assert.Contains(t, doc, `<link rel="stylesheet" href="/assets/site.css">`)
	assert.Contains(t, doc, `<h1 class="title">Merhaba</h1>`)
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"index.max": greetingPage})
	c := NewCompiler(Options{})

	got, err := c.RenderFile(context.Background(), filepath.Join(dir, "index.max"), map[string]any{"count": 7})
	require.NoError(t, err)
	assert.Contains(t, got, "<p>7 / from logic</p>")

	_, err = c.RenderFile(context.Background(), filepath.Join(dir, "missing.max"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestCompileStyles(t *testing.T) {
	c := NewCompiler(Options{})

	css := c.CompileStyles(`@style hero { padding: 20px; animation: fade-in 1s ease }`)
	assert.Contains(t, css, ".hero {\n  padding: 20px;\n  animation: fade-in 1s ease;\n}\n")
	assert.Contains(t, css, "@keyframes fade-in {")
}

func TestCompileStyleFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.maxt": "@style a { color: red }",
		"b.maxt": "@style b { color: blue }",
	})
	c := NewCompiler(Options{})

	css, warnings := c.CompileStyleFiles([]string{
		filepath.Join(dir, "b.maxt"),
		filepath.Join(dir, "missing.maxt"),
		filepath.Join(dir, "a.maxt"),
	})

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "missing.maxt")
	assert.Less(t, strings.Index(css, ".b {"), strings.Index(css, ".a {"))
}

func TestPresetStyles(t *testing.T) {
	css := NewCompiler(Options{}).PresetStyles()

	assert.Contains(t, css, ".cards-modern {")
	assert.Contains(t, css, ".buttons-primary {")
}
