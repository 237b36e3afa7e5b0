package page

import (
	"bytes"
	"html/template"
)

// Document is a page split into its parsed parts.
type Document struct {
	Config   map[string]string
	Logic    string
	Template string
}

// Parse extracts and parses the regions of a page source.
func Parse(src string, opts Options) Document {
	s := ExtractSections(src, opts)
	return Document{
		Config:   ParseConfig(s.Config),
		Logic:    s.Logic,
		Template: s.Template,
	}
}

const defaultTitle = "AniMax App"

// Shell describes the HTML document a rendered page is placed in.
type Shell struct {
	Title       string
	Lang        string
	Description string
	Stylesheet  string
	Script      string
}

// ShellFor derives the document shell from a page config. Recognised keys
// are title, lang, description and script.
func ShellFor(cfg map[string]string, stylesheet string) Shell {
	sh := Shell{
		Title:       cfg["title"],
		Lang:        cfg["lang"],
		Description: cfg["description"],
		Script:      cfg["script"],
		Stylesheet:  stylesheet,
	}
	if sh.Title == "" {
		sh.Title = defaultTitle
	}
	if sh.Lang == "" {
		sh.Lang = "en"
	}
	return sh
}

var shellTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
{{- if .Description}}
  <meta name="description" content="{{.Description}}">
{{- end}}
{{- if .Stylesheet}}
  <link rel="stylesheet" href="{{.Stylesheet}}">
{{- end}}
</head>
<body>
{{.Body}}
{{- if .Script}}
  <script src="{{.Script}}"></script>
{{- end}}
</body>
</html>
`))

// Wrap places rendered markup in a full HTML document.
func (sh Shell) Wrap(markup string) (string, error) {
	var buf bytes.Buffer
	err := shellTemplate.Execute(&buf, struct {
		Shell
		Body template.HTML
	}{sh, template.HTML(markup)})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
