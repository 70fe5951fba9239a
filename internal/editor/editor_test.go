package editor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mithrel/pressgen/internal/release"
)

const eventForm = `kind: event
title: 봄맞이 할인
intro: 소개 문단
event_name: 봄 세일
period: 3월 1일 ~ 3월 31일
details: 전 품목 20% 할인
target_products: 전 제품
`

func TestPathFor(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)
	path, err := PathFor(release.KindProduct)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "pressgen"), filepath.Dir(path))
	require.True(t, strings.HasPrefix(filepath.Base(path), "product."))
	require.True(t, strings.HasSuffix(path, ".pressgen.yaml"))
}

func TestComposeWithProblem(t *testing.T) {
	out, err := Compose(release.KindEvent, map[string]string{"title": "기존 제목"}, "다음 필수 항목을 입력해주세요: 행사명")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "# ERROR: 다음 필수 항목을 입력해주세요: 행사명\n"))
	require.Contains(t, out, "기존 제목")
	require.Contains(t, out, "kind: event")
}

func TestEditReleaseValid(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	var seen string
	run := func(path string) error {
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		seen = string(b)
		return os.WriteFile(path, []byte(eventForm), 0o600)
	}
	rel, err := EditRelease(release.KindEvent, run)
	require.NoError(t, err)
	require.Equal(t, release.KindEvent, rel.Kind())
	require.Equal(t, "봄맞이 할인", rel.Title())
	require.Contains(t, seen, "event_name:")
}

func TestEditReleaseRetriesOnValidation(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	rounds := 0
	var second string
	run := func(path string) error {
		rounds++
		if rounds == 1 {
			return os.WriteFile(path, []byte("kind: event\ntitle: 제목만\n"), 0o600)
		}
		b, _ := os.ReadFile(path)
		second = string(b)
		return os.WriteFile(path, []byte(eventForm), 0o600)
	}
	rel, err := EditRelease(release.KindEvent, run)
	require.NoError(t, err)
	require.Equal(t, 2, rounds)
	require.Contains(t, second, "# ERROR: 다음 필수 항목을 입력해주세요: 도입부")
	require.Contains(t, second, "제목만")
	require.Equal(t, "봄 세일", release.Values(rel)["event_name"])
}

func TestEditReleaseAbortsUnchanged(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	_, err := EditRelease(release.KindProduct, func(string) error { return nil })
	require.ErrorIs(t, err, ErrAborted)
}

func TestEditReleaseEditorFailure(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	_, err := EditRelease(release.KindProduct, func(string) error { return errors.New("boom") })
	require.ErrorContains(t, err, "boom")
}
