package htmlfmt

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func lineFrag(s string) string {
	return `<span lang="EN-US" ` + baseStyle + `>` + s + `</span>` + Break
}

func titleFrag(s string) string {
	return `<span ` + titleStyle + `>` + s + `</span>` + Break + Break
}

func TestFormatEmpty(t *testing.T) {
	require.Equal(t, "", Format("", ""))
	require.Equal(t, "", Format("\n\n\n", ""))
	require.Equal(t, "", Format("   \n\t\n", ""))
}

func TestFormatSingleLine(t *testing.T) {
	got := Format("Hello", "")
	// Only the trailing paragraph break is stripped; the line keeps its own.
	require.Equal(t, lineFrag("Hello"), got)
	require.False(t, strings.HasSuffix(got, Break+Break))
}

func TestFormatParagraphs(t *testing.T) {
	got := Format("A\n\nB", "")
	want := lineFrag("A") + Break + lineFrag("B")
	require.Equal(t, want, got)
}

func TestFormatLinesWithinParagraph(t *testing.T) {
	got := Format("first\nsecond\n\nthird", "")
	want := lineFrag("first") + lineFrag("second") + Break + lineFrag("third")
	require.Equal(t, want, got)
}

func TestFormatIndentation(t *testing.T) {
	got := Format("  indented", "")
	require.Contains(t, got, ">&nbsp;&nbsp;indented</span>")

	// All leading whitespace counts once the line starts with a space.
	got = Format(" \tmixed", "")
	require.Contains(t, got, ">&nbsp;&nbsp;mixed</span>")

	// A leading tab is not indentation.
	got = Format("\ttabbed", "")
	require.Contains(t, got, ">\ttabbed</span>")
}

func TestFormatTitle(t *testing.T) {
	got := Format("Body", "Title")
	require.True(t, strings.HasPrefix(got, titleFrag("Title")))
	require.Contains(t, got, "text-align: center")
	require.Contains(t, got, "font-weight: bold")
	require.Equal(t, titleFrag("Title")+lineFrag("Body"), got)
}

func TestFormatTitleOnly(t *testing.T) {
	got := Format("", "Title")
	require.Equal(t, strings.TrimSuffix(titleFrag("Title"), Break), got)
}

func TestFormatBlankParagraphSkipped(t *testing.T) {
	got := Format("A\n\n   \n\nB", "")
	want := lineFrag("A") + Break + lineFrag("B")
	require.Equal(t, want, got)
	require.Equal(t, 2, strings.Count(got, "<span"))
}

func TestFormatTripleNewline(t *testing.T) {
	// "\n\n\n" leaves a leading newline on the second paragraph; the empty
	// first line is dropped.
	got := Format("A\n\n\nB", "")
	want := lineFrag("A") + Break + lineFrag("B")
	require.Equal(t, want, got)
}

func TestFormatControlSeparatorsAreWhitespace(t *testing.T) {
	// U+001C..U+001F count as whitespace for blank lines and indentation.
	require.Equal(t, "", Format("\x1c", ""))
	require.Equal(t, lineFrag("A")+Break+lineFrag("B"), Format("A\n\x1f \x1e\n\nB", ""))
	require.Contains(t, Format(" \x1cfoo", ""), ">&nbsp;&nbsp;foo</span>")
	// Not indentation unless the line starts with a space.
	require.Contains(t, Format("\x1cfoo", ""), ">\x1cfoo</span>")
}

func TestFormatNoEscapeByDefault(t *testing.T) {
	got := Format("<b>bold</b> & co", "")
	require.Contains(t, got, "><b>bold</b> & co</span>")
}

func TestFormatterEscape(t *testing.T) {
	f := Formatter{Escape: true}
	got := f.Format("  <b>x</b>", "<i>t</i>")
	require.Contains(t, got, "&lt;i&gt;t&lt;/i&gt;")
	require.Contains(t, got, ">&nbsp;&nbsp;&lt;b&gt;x&lt;/b&gt;</span>")
}

func TestFormatNotIdempotent(t *testing.T) {
	once := Format("Hello", "")
	twice := Format(once, "")
	require.NotEqual(t, once, twice)
}

func TestFormatMarkupStructure(t *testing.T) {
	out := Format("첫 문단\n  둘째 줄\n\n마지막", "제목")
	doc, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)

	var spans []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "span" {
			spans = append(spans, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	require.Len(t, spans, 4)

	attr := func(n *html.Node, key string) string {
		for _, a := range n.Attr {
			if a.Key == key {
				return a.Val
			}
		}
		return ""
	}
	require.Equal(t, "", attr(spans[0], "lang"))
	require.Contains(t, attr(spans[0], "style"), "color: #0033CC")
	for _, s := range spans[1:] {
		require.Equal(t, "EN-US", attr(s, "lang"))
		require.Contains(t, attr(s, "style"), "text-align: left")
	}
	require.Equal(t, "\u00a0\u00a0둘째 줄", spans[2].FirstChild.Data)
}

func TestFormatConcurrent(t *testing.T) {
	want := Format("A\n\nB", "T")
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Format("A\n\nB", "T"); got != want {
				t.Errorf("concurrent format mismatch")
			}
		}()
	}
	wg.Wait()
}
