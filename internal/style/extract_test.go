package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mixedSource = `
@style card {
  padding: 4px;
  states {
    hover { color: red; }
  }
}

@component btn { color: blue; }

@animations {
  fade: { from { opacity: 0 } to { opacity: 1 } }
  spin: {
    0% { transform: rotate(0deg) }
    100% { transform: rotate(360deg) }
  }
}

@theme dark { colors { primary: #000 } }
`

type ruleHead struct {
	Kind Kind
	Name string
}

func heads(rules []Rule) []ruleHead {
	out := make([]ruleHead, len(rules))
	for i, r := range rules {
		out[i] = ruleHead{Kind: r.Kind, Name: r.Name}
	}
	return out
}

func TestExtractRules_SourceOrder(t *testing.T) {
	rules := ExtractRules(mixedSource, ExtractOptions{})

	assert.Equal(t, []ruleHead{
		{KindStyle, "card"},
		{KindComponent, "btn"},
		{KindAnimation, "fade"},
		{KindAnimation, "spin"},
		{KindTheme, "dark"},
	}, heads(rules))

	assert.Contains(t, rules[0].Body, "hover { color: red; }")
	assert.Contains(t, rules[3].Body, "100%")
}

func TestExtractRules_Truncate(t *testing.T) {
	rules := ExtractRules(mixedSource, ExtractOptions{Truncate: true})

	// Bodies end at the first '}', which cuts the card rule short and
	// leaves no complete keyframe block inside @animations.
	assert.Equal(t, []ruleHead{
		{KindStyle, "card"},
		{KindComponent, "btn"},
		{KindTheme, "dark"},
	}, heads(rules))
	assert.NotContains(t, rules[0].Body, "}")
}

func TestExtractRules_EdgeCases(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []ruleHead
	}{
		{
			name: "unterminated block is dropped",
			src:  "@style a { color: red",
			want: []ruleHead{},
		},
		{
			name: "selector-like names",
			src:  "@style .btn { color: red }\n@style #main{margin:0}",
			want: []ruleHead{{KindStyle, ".btn"}, {KindStyle, "#main"}},
		},
		{
			name: "nested at-keywords are not rules",
			src:  "@media screen { @style inner { color: red } }\n@style outer { color: blue }",
			want: []ruleHead{{KindStyle, "outer"}},
		},
		{
			name: "missing name",
			src:  "@style { color: red }\n@component ok { color: blue }",
			want: []ruleHead{{KindComponent, "ok"}},
		},
		{
			name: "braces in strings and comments",
			src:  "@style q { content: \"}\"; /* } */ color: red }\n@style r { margin: 0 }",
			want: []ruleHead{{KindStyle, "q"}, {KindStyle, "r"}},
		},
		{
			name: "unknown kinds are skipped",
			src:  "@widget w { a: b }\n@style s { a: b }",
			want: []ruleHead{{KindStyle, "s"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := heads(ExtractRules(tt.src, ExtractOptions{}))
			require.Equal(t, tt.want, got)
		})
	}
}

func TestExtractRules_Idempotent(t *testing.T) {
	first := ExtractRules(mixedSource, ExtractOptions{})
	second := ExtractRules(mixedSource, ExtractOptions{})
	assert.Equal(t, first, second)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "style", KindStyle.String())
	assert.Equal(t, "component", KindComponent.String())
	assert.Equal(t, "theme", KindTheme.String())
	assert.Equal(t, "animation", KindAnimation.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
