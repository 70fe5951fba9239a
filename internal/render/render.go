// Package render turns generated releases into terminal and web renderings.
package render

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/charmbracelet/glamour"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/k3a/html2text"

	"github.com/mithrel/pressgen/internal/htmlfmt"
	"github.com/mithrel/pressgen/pkg/api"
)

// DefaultWidth is the word-wrap width used when the terminal size is unknown.
const DefaultWidth = 80

// Markdown converts a formatted HTML fragment to Markdown.
func Markdown(fragment string) (string, error) {
	md, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return md, nil
}

// TerminalMarkdown builds the Markdown document shown by Terminal.
func TerminalMarkdown(g api.Generated, f htmlfmt.Formatter) (string, error) {
	body, err := Markdown(f.Format(g.News, g.Title))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n")
	if check := strings.TrimSpace(g.Check); check != "" {
		b.WriteString("\n---\n\n")
		b.WriteString(check)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Terminal renders a generated release for a terminal of the given width.
func Terminal(g api.Generated, f htmlfmt.Formatter, width int) (string, error) {
	md, err := TerminalMarkdown(g, f)
	if err != nil {
		return "", err
	}
	return Glamour(md, width)
}

// Glamour renders Markdown with the terminal style used across the CLI.
func Glamour(md string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// MarkdownHTML converts Markdown (check_data) to HTML for the web panel.
// Raw HTML in the input is skipped.
func MarkdownHTML(md string) string {
	extensions := parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(md))

	flags := html.CommonFlags | html.HrefTargetBlank | html.SkipHTML
	renderer := html.NewRenderer(html.RendererOptions{Flags: flags})
	return string(markdown.Render(doc, renderer))
}

// HTMLText strips a formatted fragment back to readable text.
func HTMLText(fragment string) string {
	return html2text.HTML2Text(fragment)
}
