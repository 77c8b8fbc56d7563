// Package markdown renders note content to HTML for REST responses.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

// Renderer converts markdown note content to HTML.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a renderer with CommonMark defaults. Raw HTML in the source
// is escaped out, not passed through.
func New() *Renderer {
	return &Renderer{md: goldmark.New()}
}

// Render converts content to HTML.
func (r *Renderer) Render(content string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
