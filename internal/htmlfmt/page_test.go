package htmlfmt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderPage(t *testing.T) {
	out, err := RenderPage("신제품 출시", "본문 첫 줄\n\n둘째 문단")
	require.NoError(t, err)
	require.Contains(t, out, "<title>신제품 출시</title>")
	require.Contains(t, out, Format("본문 첫 줄\n\n둘째 문단", "신제품 출시"))
	require.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
}

func TestRenderPageEscapesTitleTag(t *testing.T) {
	out, err := RenderPage("A & B", "x")
	require.NoError(t, err)
	require.Contains(t, out, "<title>A &amp; B</title>")
}
