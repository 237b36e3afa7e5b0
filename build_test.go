package animax

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "dist")
	writeFiles(t, src, map[string]string{
		"index.max":        greetingPage,
		"blog/post.max":    "@page { title: Post }\n<template><article @card>Hello</article></template>",
		"broken.max":       "<template><p>{nope}</p></template>",
		"styles/base.maxt": "@style card { padding: 10px }",
		"styles/hero.maxt": "@component hero { base { color: red } }",
	})

	result, err := Build(context.Background(), BuildConfig{
		SourceDir:   src,
		OutDir:      out,
		Concurrency: 2,
	})
	require.NoError(t, err)

	require.Len(t, result.Pages, 3)
	assert.Equal(t, filepath.Join(out, "blog", "post.html"), result.Pages[0].Output)
	assert.Equal(t, filepath.Join(out, "broken.html"), result.Pages[1].Output)
	assert.Equal(t, filepath.Join(out, "index.html"), result.Pages[2].Output)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, 2, result.StyleFiles)
	assert.Equal(t, 2, result.Styles.Rules)
	assert.Equal(t, map[string]bool{"card": true, "hero": true}, result.Styles.Classes)

	css, err := os.ReadFile(filepath.Join(out, "styles.css"))
	require.NoError(t, err)
	assert.Contains(t, string(css), ".card {\n  padding: 10px;\n}")
	assert.Contains(t, string(css), ".hero {\n  color: red;\n}")

	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "<title>Greeting</title>")
	assert.Contains(t, string(index), `<link rel="stylesheet" href="styles.css">`)
	assert.Contains(t, string(index), `<h1 class="title">Merhaba</h1>`)

	post, err := os.ReadFile(filepath.Join(out, "blog", "post.html"))
	require.NoError(t, err)
	assert.Contains(t, string(post), `<link rel="stylesheet" href="../styles.css">`)
	assert.Contains(t, string(post), "<title>Post</title>")

	broken, err := os.ReadFile(filepath.Join(out, "broken.html"))
	require.NoError(t, err)
	assert.Contains(t, string(broken), "Render error: ")
}

func TestBuild_EmitPresets(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeFiles(t, src, map[string]string{
		"index.max": "<template><div @cards-modern></div></template>",
	})

	result, err := Build(context.Background(), BuildConfig{
		SourceDir:   src,
		OutDir:      out,
		EmitPresets: true,
		Stylesheet:  "site.css",
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(out, "site.css"), result.Stylesheet)
	assert.True(t, result.Styles.Classes["cards-modern"])
	assert.Positive(t, result.Styles.Declarations)

	css, err := os.ReadFile(result.Stylesheet)
	require.NoError(t, err)
	assert.Contains(t, string(css), ".cards-modern {")
}

func TestBuild_CanceledContext(t *testing.T) {
	src := t.TempDir()
	writeFiles(t, src, map[string]string{"index.max": greetingPage})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, BuildConfig{SourceDir: src, OutDir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{filepath.Join("src", "index.max"), filepath.Join("dist", "index.html")},
		{filepath.Join("src", "a", "b.max"), filepath.Join("dist", "a", "b.html")},
		{filepath.Join("elsewhere", "c.max"), filepath.Join("dist", "c.html")},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, outputPath("src", "dist", tt.src))
		})
	}
}
