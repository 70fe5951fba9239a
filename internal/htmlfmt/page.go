package htmlfmt

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/press_release.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/press_release.html"))

type pageData struct {
	Title       string
	BodyContent template.HTML
}

// RenderPage formats body (with title as heading) and splices the fragment
// into the press-release page frame. The title also fills the page <title>.
func (f Formatter) RenderPage(title, body string) (string, error) {
	var buf bytes.Buffer
	data := pageData{
		Title:       title,
		BodyContent: template.HTML(f.Format(body, title)),
	}
	if err := pageTmpl.ExecuteTemplate(&buf, "press_release.html", data); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return buf.String(), nil
}

// RenderPage renders with the zero Formatter.
func RenderPage(title, body string) (string, error) {
	return Formatter{}.RenderPage(title, body)
}
