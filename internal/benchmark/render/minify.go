package render

import (
	"fmt"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

const mediaTypeHTML = "text/html"

// Minified renders through a GoTemplate and minifies the resulting HTML.
type Minified struct {
	base *GoTemplate
	m    *minify.M
}

func NewMinified(base *GoTemplate) *Minified {
	m := minify.New()
	m.Add(mediaTypeHTML, &html.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})

	return &Minified{base: base, m: m}
}

func (e *Minified) Render(resource string, context map[string]any) (string, error) {
	page, err := e.base.Render(resource, context)
	if err != nil {
		return "", err
	}

	out, err := e.m.String(mediaTypeHTML, page)
	if err != nil {
		return "", fmt.Errorf("minify %s: %w", resource, err)
	}

	return out, nil
}
