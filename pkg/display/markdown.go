package display

import (
	"github.com/charmbracelet/glamour"

	"github.com/tekdi/tekdi-cursor-rules/pkg/style"
)

// MarkdownRenderer renders rule documents for the terminal using
// glamour.
type MarkdownRenderer struct {
	Style string // "dark", "light", "notty", or "" for auto
	Width int    // 0 = glamour default
}

// NewMarkdownRenderer picks a style matching the terminal background.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{Style: style.GlamourStyle()}
}

// Render converts markdown to terminal output. On any rendering error
// the raw content is returned unchanged.
func (r *MarkdownRenderer) Render(content string) string {
	var options []glamour.TermRendererOption

	if r.Style != "" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
