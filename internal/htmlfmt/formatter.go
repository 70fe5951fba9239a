// Package htmlfmt turns plain press-release text into the inline-styled HTML
// fragments pasted into mail clients and newsroom editors.
package htmlfmt

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	baseStyle = `style="font-size: 10pt; font-family: 맑은 고딕; font-style: normal; font-variant-ligatures: normal; ` +
		`font-variant-caps: normal; font-weight: 400; letter-spacing: normal; orphans: 2; text-align: left; ` +
		`text-indent: 0px; text-transform: none; widows: 2; word-spacing: 0px; -webkit-text-stroke-width: 0px; ` +
		`white-space: normal; text-decoration-thickness: initial; text-decoration-style: initial; ` +
		`text-decoration-color: initial; color: rgb(51, 51, 51)"`

	titleStyle = `style="font-size: 12px; font-family: 맑은 고딕; font-style: normal; font-variant-ligatures: normal; ` +
		`font-variant-caps: normal; font-weight: bold; letter-spacing: normal; orphans: 2; text-align: center; ` +
		`text-indent: 0px; text-transform: none; widows: 2; word-spacing: 0px; -webkit-text-stroke-width: 0px; ` +
		`white-space: normal; text-decoration-thickness: initial; text-decoration-style: initial; ` +
		`text-decoration-color: initial; color: #0033CC"`

	// Break is the standalone fragment placed after every non-empty paragraph.
	Break = "<br>\n"
	nbsp  = "&nbsp;"
)

// Formatter converts text to HTML fragments. The zero value inserts text
// verbatim, which keeps output identical to previously generated documents.
type Formatter struct {
	// Escape HTML-escapes the title and every line before wrapping.
	Escape bool
}

// Format renders text with the zero Formatter.
func Format(text, title string) string {
	return Formatter{}.Format(text, title)
}

// Format renders text (and an optional title) as a single HTML fragment.
// Paragraphs are separated by "\n\n"; whitespace-only lines are dropped and
// leading indentation becomes &nbsp; entities.
func (f Formatter) Format(text, title string) string {
	var b strings.Builder
	if title != "" {
		b.WriteString(`<span ` + titleStyle + `>` + f.escape(title) + `</span>` + Break + Break)
	}
	for _, p := range strings.Split(text, "\n\n") {
		wrote := false
		for _, line := range strings.Split(p, "\n") {
			if strings.TrimFunc(line, isSpace) == "" {
				continue
			}
			b.WriteString(`<span lang="EN-US" ` + baseStyle + `>` + f.line(line) + `</span>` + Break)
			wrote = true
		}
		if wrote {
			b.WriteString(Break)
		}
	}
	return strings.TrimSuffix(b.String(), Break)
}

// line converts leading whitespace to &nbsp; placeholders. Only lines that
// start with a space are indented; a leading tab is left in place.
func (f Formatter) line(line string) string {
	if !strings.HasPrefix(line, " ") {
		return f.escape(line)
	}
	rest := strings.TrimLeftFunc(line, isSpace)
	n := utf8.RuneCountInString(line[:len(line)-len(rest)])
	return strings.Repeat(nbsp, n) + f.escape(rest)
}

// isSpace also treats the ASCII separators U+001C..U+001F as whitespace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r >= 0x1c && r <= 0x1f
}

func (f Formatter) escape(s string) string {
	if !f.Escape {
		return s
	}
	return html.EscapeString(s)
}
