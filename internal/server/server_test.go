package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/pressgen/internal/db"
	"github.com/mithrel/pressgen/internal/htmlfmt"
	"github.com/mithrel/pressgen/internal/release"
	"github.com/mithrel/pressgen/pkg/api"
)

type fakeGen struct {
	store db.Store
	calls int
	err   error
}

func (f *fakeGen) Generate(ctx context.Context, r release.Release) (api.Record, error) {
	f.calls++
	if f.err != nil {
		return api.Record{}, f.err
	}
	rec := api.Record{
		ID:     api.NewID(),
		Kind:   string(r.Kind()),
		Source: api.SourceWebhook,
		Form:   release.Values(r),
		Generated: api.Generated{
			Title:    r.Title(),
			News:     "첫 문단\n둘째 줄\n\n 들여쓴 문단",
			Check:    "- **확인** 완료",
			Insta:    "포스트 1\n\n\n포스트 2\n\n\n포스트 3",
			Facebook: "페북 <b>글</b>",
		},
		CreatedAt: time.Now().UTC(),
	}
	return rec, f.store.Put(ctx, rec)
}

func newTestServer(t *testing.T) (*Server, *fakeGen, db.Store) {
	t.Helper()
	store, err := db.Open(context.Background(), "mem://")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	gen := &fakeGen{store: store}
	v := viper.New()
	v.Set("history.limit", 50)
	return New(v, store, gen, htmlfmt.Formatter{}, nil), gen, store
}

func do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/releases", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func productValues() url.Values {
	return url.Values{
		"kind":         {"product"},
		"title":        {"신제품 스피커 출시"},
		"intro":        {"소개 문단"},
		"product_name": {"사운드 X"},
		"sales_points": {"강력한 저음"},
		"design":       {"미니멀 디자인"},
	}
}

func TestHealthz(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := do(t, s.Router(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestFormDefaultsToProduct(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := do(t, s.Router(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `name="product_name"`)
	require.Contains(t, body, "제품명/시리즈명 *")
	require.Contains(t, body, `<option value="product" selected>`)
}

func TestFormEventKind(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := do(t, s.Router(), httptest.NewRequest(http.MethodGet, "/?kind=event", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `name="event_name"`)
	require.NotContains(t, rec.Body.String(), `name="product_name"`)

	rec = do(t, s.Router(), httptest.NewRequest(http.MethodGet, "/?kind=bogus", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateValidationKeepsValues(t *testing.T) {
	s, gen, _ := newTestServer(t)
	vals := productValues()
	vals.Set("design", "")
	vals.Set("intro", "###")
	rec := do(t, s.Router(), postForm(vals))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "다음 필수 항목을 입력해주세요: 도입부, 주요 특징(디자인)")
	require.Contains(t, body, "신제품 스피커 출시")
	require.Zero(t, gen.calls)
}

func TestCreateMissingKind(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := do(t, s.Router(), postForm(url.Values{"title": {"x"}}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateGeneratorFailure(t *testing.T) {
	s, gen, _ := newTestServer(t)
	gen.err = errors.New("disk full")
	rec := do(t, s.Router(), postForm(productValues()))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCreateShowAndDownload(t *testing.T) {
	s, gen, _ := newTestServer(t)
	h := s.Router()

	rec := do(t, h, postForm(productValues()))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, 1, gen.calls)
	loc := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(loc, "/releases/"))

	rec = do(t, h, httptest.NewRequest(http.MethodGet, loc, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "보도자료가 성공적으로 생성되었습니다!")
	require.Contains(t, body, "srcdoc=")
	require.Contains(t, body, "첫 문단<br>둘째 줄")
	require.Contains(t, body, "포스팅 2")
	require.NotContains(t, body, "포스트 3")
	require.Contains(t, body, "<strong>확인</strong>")
	require.Contains(t, body, "페북 &lt;b&gt;글&lt;/b&gt;")

	rec = do(t, h, httptest.NewRequest(http.MethodGet, loc+"/press_release.txt", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), `filename="press_release.txt"`)
	require.Equal(t, "신제품 스피커 출시\n\n첫 문단\n둘째 줄\n\n 들여쓴 문단", rec.Body.String())

	rec = do(t, h, httptest.NewRequest(http.MethodGet, loc+"/press_release.html", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Disposition"), `filename="press_release.html"`)
	require.Contains(t, rec.Body.String(), `<td width="550"`)
	require.Contains(t, rec.Body.String(), "&nbsp;들여쓴 문단")
}

func TestFormPrefillFromRecord(t *testing.T) {
	s, _, _ := newTestServer(t)
	h := s.Router()
	loc := do(t, h, postForm(productValues())).Header().Get("Location")
	id := strings.TrimPrefix(loc, "/releases/")

	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/?from="+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `value="사운드 X"`)

	rec = do(t, h, httptest.NewRequest(http.MethodGet, "/?from=missing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShowNotFound(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := do(t, s.Router(), httptest.NewRequest(http.MethodGet, "/releases/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShowFallbackNoticeAndDebug(t *testing.T) {
	s, _, store := newTestServer(t)
	require.NoError(t, store.Put(context.Background(), api.Record{
		ID:        "fb",
		Kind:      "event",
		Source:    api.SourceFallback,
		Notice:    "서버 오류: 502",
		Generated: api.Generated{Title: "t", News: "n"},
		Debug:     &api.Debug{Status: 502, Raw: "bad gateway"},
		CreatedAt: time.Now(),
	}))
	rec := do(t, s.Router(), httptest.NewRequest(http.MethodGet, "/releases/fb", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "서버 오류: 502")
	require.Contains(t, body, "Status Code: 502")
	require.Contains(t, body, "bad gateway")
	require.NotContains(t, body, "성공적으로")
}

func TestAPIListAndGet(t *testing.T) {
	s, _, _ := newTestServer(t)
	h := s.Router()

	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/api/releases", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())

	loc := do(t, h, postForm(productValues())).Header().Get("Location")
	id := strings.TrimPrefix(loc, "/releases/")

	rec = do(t, h, httptest.NewRequest(http.MethodGet, "/api/releases?kind=product&limit=5", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []api.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, id, list[0].ID)

	rec = do(t, h, httptest.NewRequest(http.MethodGet, "/api/releases?kind=event", nil))
	require.JSONEq(t, "[]", rec.Body.String())

	rec = do(t, h, httptest.NewRequest(http.MethodGet, "/api/releases?limit=x", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, httptest.NewRequest(http.MethodGet, "/api/releases/"+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got api.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "신제품 스피커 출시", got.Generated.Title)

	rec = do(t, h, httptest.NewRequest(http.MethodGet, "/api/releases/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPIAuth(t *testing.T) {
	s, _, _ := newTestServer(t)
	s.cfg.Set("auth.token", "s3cret")
	h := s.Router()

	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/api/releases", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/releases", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	require.Equal(t, http.StatusUnauthorized, do(t, h, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/api/releases", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	require.Equal(t, http.StatusOK, do(t, h, req).Code)

	// The HTML front end stays open.
	require.Equal(t, http.StatusOK, do(t, h, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}
