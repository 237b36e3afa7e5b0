package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertProperty(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  []string
	}{
		{"layout", "flex column", []string{"display: flex;", "flex-direction: column;"}},
		{"layout", "flex", []string{"display: flex;", "flex-direction: row;"}},
		{"layout", "grid", []string{"display: grid;", "grid-template-columns: repeat(auto-fit, minmax(250px, 1fr));"}},
		{"layout", "grid repeat(3, 1fr)", []string{"display: grid;", "grid-template-columns: repeat(3, 1fr);"}},
		{"layout", "block", []string{"display: block;"}},
		{"spacing", "20px", []string{"gap: 20px;"}},
		{"align", "center", []string{"display: flex;", "justify-content: center;", "align-items: center;"}},
		{"align", "right", []string{"text-align: right;"}},
		{"justify", "space-between", []string{"justify-content: space-between;"}},
		{"shadow", "small", []string{"box-shadow: 0 2px 4px rgba(0,0,0,0.1);"}},
		{"shadow", "medium", []string{"box-shadow: 0 4px 8px rgba(0,0,0,0.1);"}},
		{"shadow", "large", []string{"box-shadow: 0 8px 16px rgba(0,0,0,0.1);"}},
		{"shadow", "0 1px 2px #000", []string{"box-shadow: 0 1px 2px #000;"}},
		{"animation", "spin 1s linear", []string{"animation: spin 1s linear;"}},
		{"colors", "#333", []string{"color: #333;"}},
		{"radius", "8px", []string{"border-radius: 8px;"}},
		{"scale", "1.05", []string{"transform: scale(1.05);"}},
		{"brightness", "1.1", []string{"filter: brightness(1.1);"}},
		{"margin", "0 auto", []string{"margin: 0 auto;"}},
	}

	for _, tt := range tests {
		t.Run(tt.key+" "+tt.value, func(t *testing.T) {
			var got []string
			for _, d := range ConvertProperty(tt.key, tt.value) {
				got = append(got, d.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func generate(t *testing.T, presets Presets, src string) string {
	t.Helper()
	return NewCompiler(presets, ExtractOptions{}).Compile(src)
}

func TestGenerate_StyleRule(t *testing.T) {
	css := generate(t, nil, `@style card {
  layout: flex column;
  spacing: 10px;
  shadow: medium;
}`)

	assert.Equal(t, `.card {
  display: flex;
  flex-direction: column;
  gap: 10px;
  box-shadow: 0 4px 8px rgba(0,0,0,0.1);
}
`, css)
}

func TestGenerate_ColorsAndAnimationBlocks(t *testing.T) {
	css := generate(t, nil, `@style container {
  colors: {
    background: #f5f5f5;
    text: #333;
    border: #ddd;
  }
  animation {
    type: pulse;
    iteration: infinite;
  }
}`)

	assert.Equal(t, `.container {
  background-color: #f5f5f5;
  color: #333;
  border-color: #ddd;
  animation-name: pulse;
  animation-duration: 0.3s;
  animation-timing-function: ease;
  animation-iteration-count: infinite;
}
`, css)
}

func TestGenerate_Responsive(t *testing.T) {
	css := generate(t, nil, `@style box {
  padding: 20px;
  responsive {
    mobile {
      padding: 10px;
    }
    tablet {
      padding: 15px;
    }
    watch {
      padding: 1px;
    }
  }
}`)

	assert.Equal(t, `.box {
  padding: 20px;
}

@media (max-width: 768px) {
  .box {
    padding: 10px;
  }
}

@media (min-width: 769px) and (max-width: 1024px) {
  .box {
    padding: 15px;
  }
}
`, css)
}

func TestGenerate_ComponentBaseStatesSizes(t *testing.T) {
	css := generate(t, nil, `@component avatar {
  base {
    radius: 50%;
  }
  states {
    hover { scale: 1.1 }
  }
  sizes {
    small { width: 32px }
  }
}`)

	assert.Equal(t, `.avatar {
  border-radius: 50%;
}

.avatar:hover {
  transform: scale(1.1);
}

.avatar--small {
  width: 32px;
}
`, css)
}

func TestGenerate_NestedSelectors(t *testing.T) {
	css := generate(t, nil, `@style nav {
  a {
    color: red;
  }
  &.open, &:focus-within {
    display: block;
  }
}`)

	assert.Equal(t, `.nav a {
  color: red;
}

.nav.open, .nav:focus-within {
  display: block;
}
`, css)
}

func TestGenerate_PresetOverride(t *testing.T) {
	css := generate(t, testPresets(), `@style fancy {
  preset: cards-modern;
  radius: 5px;
}`)

	assert.Equal(t, `.fancy {
  border-radius: 5px;
  display: flex;
  flex-direction: column;
  box-shadow: 0 4px 8px rgba(0,0,0,0.1);
  padding: 20px;
}

.fancy:hover {
  transform: translateY(-5px);
  box-shadow: 0 8px 16px rgba(0,0,0,0.1);
}
`, css)
	assert.NotContains(t, css, "15px")
}

func TestGenerate_Theme(t *testing.T) {
	css := generate(t, nil, `@theme dark {
  colors {
    primary: #000;
    text: #fff;
  }
  shadows {
    soft: 0 1px 2px #000;
  }
}`)

	assert.Equal(t, `:root {
  --color-primary: #000;
  --color-text: #fff;
  --shadow-soft: 0 1px 2px #000;
}
`, css)
}

func TestGenerate_Keyframes(t *testing.T) {
	css := generate(t, nil, `@animations {
  fade: {
    from { opacity: 0; }
    to { opacity: 1; }
  }
}`)

	assert.Equal(t, `@keyframes fade {
  from {
    opacity: 0;
  }
  to {
    opacity: 1;
  }
}
`, css)
}

func TestCompile_GroupsKindsPerSource(t *testing.T) {
	src := `@theme t { colors { a: #111 } }
@component c { color: blue }
@style s { color: red }`

	css := generate(t, nil, src)

	s := indexOf(t, css, ".s {")
	c := indexOf(t, css, ".c {")
	r := indexOf(t, css, ":root {")
	assert.Less(t, s, c)
	assert.Less(t, c, r)
}

func TestCompile_FileThenInFileOrder(t *testing.T) {
	c := NewCompiler(nil, ExtractOptions{})
	css := c.Compile("@theme t { colors { a: #111 } }", "@style s { color: red }")

	assert.Less(t, indexOf(t, css, ":root {"), indexOf(t, css, ".s {"))
}

func TestCompile_AppendsReferencedPresetKeyframes(t *testing.T) {
	css := generate(t, testPresets(), `@style a { animation: fade-in 1s }`)

	assert.Equal(t, `.a {
  animation: fade-in 1s;
}

@keyframes fade-in {
  from {
    opacity: 0;
  }
  to {
    opacity: 1;
  }
}
`, css)
}

func TestCompile_UserKeyframesShadowPresets(t *testing.T) {
	css := generate(t, testPresets(), `@style a { animation: fade-in 1s }
@animations {
  fade-in: { from { opacity: 0.5 } }
}`)

	assert.Equal(t, 1, countOf(css, "@keyframes fade-in"))
	assert.Contains(t, css, "opacity: 0.5;")
}

func TestCompile_Deterministic(t *testing.T) {
	c := NewCompiler(testPresets(), ExtractOptions{})
	assert.Equal(t, c.Compile(mixedSource), c.Compile(mixedSource))
}

func TestCompilePresets(t *testing.T) {
	c := NewCompiler(testPresets(), ExtractOptions{})
	css := c.CompilePresets([]string{"cards-modern", "missing"})

	assert.Contains(t, css, ".cards-modern {")
	assert.Contains(t, css, ".cards-modern:hover {")
	assert.NotContains(t, css, "missing")
}

func TestClassNames(t *testing.T) {
	classes := ClassNames(`.a { color: red; }
@media (max-width: 1px) {
  .b:hover, .c .d {
    x: y;
  }
}
@keyframes k { from { opacity: 0; } }`)

	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true, "d": true}, classes)
}

func TestInspect(t *testing.T) {
	stats := Inspect(`.a { color: red; padding: 0; }
.a:hover { color: blue }
@media (max-width: 1px) {
  .b { x: var(--main); }
}
:root { --main: #fff; }
@keyframes k { from { opacity: 0; } to { opacity: 1; } }`)

	assert.Equal(t, 4, stats.Rules)
	assert.Equal(t, 1, stats.Keyframes)
	assert.Equal(t, 7, stats.Declarations)
	assert.Equal(t, map[string]bool{"a": true, "b": true}, stats.Classes)
	assert.Equal(t, map[Category]int{
		CategoryVisual: 4,
		CategoryLayout: 2,
		CategoryTokens: 1,
	}, stats.ByCategory)
	assert.Equal(t, 1, stats.TokenUses)
}

func TestCategorizeProperty(t *testing.T) {
	tests := map[string]Category{
		"color":              CategoryVisual,
		"border-top-color":   CategoryVisual,
		"display":            CategoryLayout,
		"padding-left":       CategoryLayout,
		"font-size":          CategoryTypography,
		"text-indent":        CategoryTypography,
		"animation-name":     CategoryEffects,
		"--brand":            CategoryTokens,
		"-webkit-appearance": CategoryInternal,
		"unknown":            CategoryLayout,
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, CategorizeProperty(name))
		})
	}
}

func indexOf(t *testing.T, s, sub string) int {
	t.Helper()
	i := strings.Index(s, sub)
	require.NotEqual(t, -1, i, "%q not in output", sub)
	return i
}

func countOf(s, sub string) int {
	return strings.Count(s, sub)
}
