package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/rewind/pkg/books"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// An empty style detects light/dark background automatically; "notty" renders plain text.
func NewRenderer(style string) func(string) (string, error) {
	opt := glamour.WithAutoStyle()
	if style != "" {
		opt = glamour.WithStandardStyle(style)
	}

	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(80))
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// BookMarkdown formats a book as a markdown section.
func BookMarkdown(c books.Content) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## Book %d · %s\n\n", c.BookID, c.SourcePath)
	if c.Text == "" {
		sb.WriteString("_(empty)_\n")
		return sb.String()
	}
	for _, line := range strings.Split(c.Text, "\n") {
		fmt.Fprintf(&sb, "> %s\n", line)
	}
	return sb.String()
}
