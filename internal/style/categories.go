package style

import "strings"

// Category groups CSS properties for stylesheet statistics.
type Category string

// Property categories
const (
	CategoryVisual     Category = "Visual"
	CategoryLayout     Category = "Layout"
	CategoryTypography Category = "Typography"
	CategoryEffects    Category = "Effects"
	CategoryTokens     Category = "Tokens"   // custom property definitions
	CategoryInternal   Category = "Internal" // vendor prefixed
)

// Categories lists every category in report order.
var Categories = []Category{
	CategoryLayout, CategoryVisual, CategoryTypography,
	CategoryEffects, CategoryTokens, CategoryInternal,
}

var propertyCategories = func() map[string]Category {
	groups := map[Category][]string{
		CategoryVisual: {
			"background", "background-color", "background-image", "background-size",
			"background-position", "background-repeat", "color", "border", "border-color",
			"border-radius", "border-width", "border-style", "box-shadow", "opacity",
			"outline", "outline-color", "outline-width", "outline-style", "fill", "stroke",
			"cursor", "accent-color", "caret-color",
		},
		CategoryLayout: {
			"display", "flex", "justify-content", "align-items", "align-self",
			"align-content", "gap", "row-gap", "column-gap", "grid", "position", "inset",
			"top", "right", "bottom", "left", "width", "height", "min-width", "min-height",
			"max-width", "max-height", "padding", "margin", "overflow", "overflow-x",
			"overflow-y", "z-index", "aspect-ratio", "object-fit", "object-position",
			"box-sizing",
		},
		CategoryTypography: {
			"font", "font-family", "font-size", "font-weight", "font-style", "font-variant",
			"line-height", "letter-spacing", "text-align", "text-decoration",
			"text-transform", "text-overflow", "text-shadow", "white-space", "word-break",
			"word-wrap", "hyphens",
		},
		CategoryEffects: {
			"transition", "transform", "transform-origin", "animation", "filter",
			"backdrop-filter", "mix-blend-mode", "clip-path", "mask", "will-change",
		},
	}

	out := make(map[string]Category)
	for cat, names := range groups {
		for _, name := range names {
			out[name] = cat
		}
	}
	return out
}()

// CategorizeProperty returns the category of a CSS property name. Unknown
// properties count as layout.
func CategorizeProperty(name string) Category {
	if cat, ok := propertyCategories[name]; ok {
		return cat
	}

	switch {
	case strings.HasPrefix(name, "--"):
		return CategoryTokens
	case strings.HasPrefix(name, "-webkit-"), strings.HasPrefix(name, "-moz-"),
		strings.HasPrefix(name, "-ms-"), strings.HasPrefix(name, "-o-"):
		return CategoryInternal
	case strings.HasPrefix(name, "border-"), strings.HasPrefix(name, "outline-"):
		return CategoryVisual
	case strings.HasPrefix(name, "transition-"), strings.HasPrefix(name, "animation-"):
		return CategoryEffects
	case strings.HasPrefix(name, "font-"), strings.HasPrefix(name, "text-"):
		return CategoryTypography
	}
	return CategoryLayout
}
