// Package render implements the template engines used by the fortunes
// benchmark. Templates are embedded in the binary and parsed once.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"
)

// FortunesResource is the template resource rendered by the fortunes route.
const FortunesResource = "fortunes.html"

//go:embed templates/*.html
var templatesFS embed.FS

// GoTemplate renders html/template templates, escaping every value.
type GoTemplate struct {
	templates *template.Template
	buffers   sync.Pool
}

func NewGoTemplate() (*GoTemplate, error) {
	templates, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &GoTemplate{
		templates: templates,
		buffers: sync.Pool{
			New: func() any { return bytes.NewBuffer(make([]byte, 0, 4096)) },
		},
	}, nil
}

func (g *GoTemplate) Render(resource string, context map[string]any) (string, error) {
	tmpl := g.templates.Lookup(resource)
	if tmpl == nil {
		return "", fmt.Errorf("template %q is not defined", resource)
	}

	buf, _ := g.buffers.Get().(*bytes.Buffer)
	buf.Reset()
	defer g.buffers.Put(buf)

	if err := tmpl.Execute(buf, context); err != nil {
		return "", fmt.Errorf("execute %s: %w", resource, err)
	}

	return buf.String(), nil
}
