// Package render builds the printable project document and converts it to PDF.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/yukikurage/lift-project-api/internal/catalog"
	"github.com/yukikurage/lift-project-api/internal/models"
)

//go:embed templates/document.html.tmpl templates/styles.css
var assets embed.FS

var documentTemplate = template.Must(
	template.New("document.html.tmpl").
		Funcs(template.FuncMap{
			// Project text arrives escaped already
			"safe": func(s string) template.HTML { return template.HTML(s) },
			"date": func(t time.Time) string { return t.Format("02/01/2006") },
		}).
		ParseFS(assets, "templates/document.html.tmpl"),
)

// Document is everything the project template prints. Project text columns
// must already be HTML-escaped.
type Document struct {
	Project               models.Project
	ModificationTypes     []catalog.Entry
	ApplicableNorms       []catalog.Entry
	LegalizationProcesses []catalog.Entry
	CreatedAt             time.Time
	UpdatedAt             time.Time

	// Filename is the download name, built from the unescaped order number
	Filename string
}

// HasModification reports whether the modification type code was selected.
func (d *Document) HasModification(code string) bool {
	return hasCode(d.ModificationTypes, code)
}

// HasProcess reports whether the legalization process code was selected.
func (d *Document) HasProcess(code string) bool {
	return hasCode(d.LegalizationProcesses, code)
}

// HTML executes the document template.
func HTML(doc *Document) (string, error) {
	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("execute document template: %w", err)
	}
	return buf.String(), nil
}

// Stylesheet returns the embedded print stylesheet.
func Stylesheet() string {
	css, err := assets.ReadFile("templates/styles.css")
	if err != nil {
		// Embedded at build time
		panic(err)
	}
	return string(css)
}

func hasCode(entries []catalog.Entry, code string) bool {
	for _, e := range entries {
		if e.Code == code {
			return true
		}
	}
	return false
}
