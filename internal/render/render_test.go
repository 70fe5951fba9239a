package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/pressgen/internal/htmlfmt"
	"github.com/mithrel/pressgen/pkg/api"
)

func TestMarkdownHTML(t *testing.T) {
	out := MarkdownHTML("## 검토 결과\n\n- 제목 길이 적절\n- **수치** 확인 필요\n")
	require.Contains(t, out, "<h2")
	require.Contains(t, out, "<li>제목 길이 적절</li>")
	require.Contains(t, out, "<strong>수치</strong>")
}

func TestMarkdownHTMLSkipsRawHTML(t *testing.T) {
	out := MarkdownHTML("hello <script>alert(1)</script>")
	require.NotContains(t, out, "<script>")
}

func TestHTMLText(t *testing.T) {
	frag := htmlfmt.Format("첫 줄\n둘째 줄\n\n다음 문단", "제목")
	out := HTMLText(frag)
	require.Contains(t, out, "제목")
	require.Contains(t, out, "첫 줄")
	require.Contains(t, out, "다음 문단")
	require.NotContains(t, out, "<span")
}

func TestTerminalMarkdown(t *testing.T) {
	g := api.Generated{
		Title: "신제품 출시",
		News:  "본문 첫 줄\n\n두 번째 문단",
		Check: "- 확인 완료",
	}
	md, err := TerminalMarkdown(g, htmlfmt.Formatter{})
	require.NoError(t, err)
	require.Contains(t, md, "신제품 출시")
	require.Contains(t, md, "두 번째 문단")
	require.True(t, strings.HasSuffix(md, "- 확인 완료\n"))
	require.NotContains(t, md, "<span")
}

func TestTerminalMarkdownWithoutCheck(t *testing.T) {
	md, err := TerminalMarkdown(api.Generated{Title: "t", News: "n"}, htmlfmt.Formatter{})
	require.NoError(t, err)
	require.NotContains(t, md, "---")
}

func TestTerminal(t *testing.T) {
	out, err := Terminal(api.Generated{Title: "Launch", News: "Body text"}, htmlfmt.Formatter{}, 0)
	require.NoError(t, err)
	plain := ansi.Strip(out)
	require.Contains(t, plain, "Launch")
	require.Contains(t, plain, "Body text")
}
