package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mithrel/pressgen/internal/htmlfmt"
	"github.com/mithrel/pressgen/internal/render"
	"github.com/mithrel/pressgen/pkg/api"
)

// PrettyMarkdown builds the Markdown document for a single record.
func PrettyMarkdown(r api.Record, f htmlfmt.Formatter) (string, error) {
	body, err := render.TerminalMarkdown(r.Generated, f)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "> **ID:** %s | **Kind:** %s | **Source:** %s | **Created:** %s\n",
		r.ID, r.Kind, r.Source, r.CreatedAt.Local().Format(time.RFC3339))
	if r.Notice != "" {
		fmt.Fprintf(&b, ">\n> %s\n", r.Notice)
	}
	b.WriteString("\n---\n\n")
	b.WriteString(body)

	for _, sec := range []struct{ name, text string }{
		{"Instagram", strings.Join(r.Generated.InstaPosts(), "\n\n---\n\n")},
		{"Facebook", r.Generated.Facebook},
		{"Blog", r.Generated.Blog},
	} {
		if strings.TrimSpace(sec.text) == "" {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", sec.name, strings.TrimSpace(sec.text))
	}
	return b.String(), nil
}

// WritePrettyRecord renders a single record with glamour.
func WritePrettyRecord(w io.Writer, r api.Record, f htmlfmt.Formatter, width int) error {
	md, err := PrettyMarkdown(r, f)
	if err != nil {
		return err
	}
	out, err := render.Glamour(md, width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
