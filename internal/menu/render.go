package menu

import (
	"bytes"
	"html/template"
)

// sidebarTemplate renders the menu group and its forest. The "menu-node"
// template invokes itself for branch children, which is what terminates the
// recursion: leaves reference no further template.
//
// Branches use details/summary so every group is collapsible without any
// script, starting collapsed.
const sidebarTemplate = `{{define "menu-node"}}{{if .IsLeaf}}<li class="menu-leaf"><a href="{{.URL}}">{{.Name}}</a></li>
{{else}}<li class="menu-branch"><details><summary>{{.Name}}</summary><ul class="menu-sub">
{{range .Children}}{{template "menu-node" .}}{{end}}</ul></details></li>
{{end}}{{end}}{{define "sidebar"}}<nav class="sidebar"><div class="sidebar-label">{{.Label}}</div>
<ul class="menu">
{{range .Forest}}{{template "menu-node" .}}{{end}}</ul></nav>
{{end}}`

// Renderer turns a menu forest into sidebar markup. It is safe for
// concurrent use; the parsed template is immutable after construction.
type Renderer struct {
	tpl *template.Template
}

// NewRenderer parses the sidebar templates. It panics on a template syntax
// error, which can only happen from a bad edit to this file.
func NewRenderer() *Renderer {
	return &Renderer{
		tpl: template.Must(template.New("sidebar-root").Parse(sidebarTemplate)),
	}
}

// Sidebar renders the forest under the given group label. An empty forest
// renders the label over an empty list. Node names and URLs pass through
// html/template's contextual escaping.
func (r *Renderer) Sidebar(label string, forest []Node) (template.HTML, error) {
	var buf bytes.Buffer

	data := struct {
		Label  string
		Forest []Node
	}{
		Label:  label,
		Forest: forest,
	}

	if err := r.tpl.ExecuteTemplate(&buf, "sidebar", data); err != nil {
		return "", err
	}

	return template.HTML(buf.String()), nil
}
