/*
Package web holds the gateway's server-rendered page templates, embedded
into the binary so deployment is a single artifact.
*/
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.gohtml
var files embed.FS

// Templates is the parsed page template set.
type Templates struct {
	t *template.Template
}

// New parses the embedded templates. It panics on a parse error, which can
// only happen from a bad edit to the template files.
func New() *Templates {
	return &Templates{
		t: template.Must(template.ParseFS(files, "templates/*.gohtml")),
	}
}

// Render executes the named page template with the given data.
func (tpl *Templates) Render(w io.Writer, name string, data any) error {
	if err := tpl.t.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to render page %q: %w", name, err)
	}

	return nil
}
