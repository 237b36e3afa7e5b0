package page

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// ClassRef is one class name used in markup, with its 1-based position.
type ClassRef struct {
	Class  string
	Line   int
	Column int
}

// MarkerRef is a structural marker left in markup after tag rewriting,
// such as "@panel" in `<div @panel>`.
type MarkerRef struct {
	Marker string
	Line   int
	Column int
}

// ClassRefs collects the names listed in class attributes of markup.
// Names that still contain interpolation syntax are skipped.
func ClassRefs(markup string) []ClassRef {
	var refs []ClassRef
	eachStartTag(markup, func(raw []byte, start int, tok html.Token) {
		for _, attr := range tok.Attr {
			if attr.Key != "class" {
				continue
			}
			attrAt := bytes.Index(bytes.ToLower(raw), []byte("class"))
			for _, name := range strings.Fields(attr.Val) {
				if strings.ContainsAny(name, "${}") {
					continue
				}
				at := start
				if attrAt >= 0 {
					if i := bytes.Index(raw[attrAt:], []byte(name)); i >= 0 {
						at = start + attrAt + i
					}
				}
				line, col := position(markup, at)
				refs = append(refs, ClassRef{Class: name, Line: line, Column: col})
			}
		}
	})
	return refs
}

// UnknownMarkers reports attributes that look like structural markers. A
// marker the tag table knows has already been rewritten, so any that remain
// are misspelled or undefined.
func UnknownMarkers(markup string) []MarkerRef {
	var refs []MarkerRef
	eachStartTag(markup, func(raw []byte, start int, tok html.Token) {
		for _, attr := range tok.Attr {
			if !strings.HasPrefix(attr.Key, "@") {
				continue
			}
			at := start
			if i := bytes.Index(bytes.ToLower(raw), []byte(attr.Key)); i >= 0 {
				at = start + i
			}
			line, col := position(markup, at)
			refs = append(refs, MarkerRef{Marker: attr.Key, Line: line, Column: col})
		}
	})
	return refs
}

// eachStartTag calls fn for every start or self-closing tag with the raw
// tag bytes and their offset in markup.
func eachStartTag(markup string, fn func(raw []byte, start int, tok html.Token)) {
	z := html.NewTokenizer(strings.NewReader(markup))
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return
		}
		raw := append([]byte(nil), z.Raw()...)
		start := offset
		offset += len(raw)

		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		fn(raw, start, z.Token())
	}
}

func position(text string, offset int) (line, col int) {
	before := text[:offset]
	line = strings.Count(before, "\n") + 1
	col = offset - strings.LastIndex(before, "\n")
	return line, col
}
