package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mithrel/pressgen/internal/db"
	"github.com/mithrel/pressgen/internal/release"
	"github.com/mithrel/pressgen/pkg/api"
)

const appTitle = "보도자료 기사 AI 자동 생성"

type kindOption struct {
	Kind     release.Kind
	Label    string
	Selected bool
}

type formPage struct {
	Title  string
	Kinds  []kindOption
	Kind   release.Kind
	Fields []release.Field
	Error  string
}

type resultPage struct {
	Title    string
	Record   api.Record
	Document string
	Posts    []string
	Debug    bool
}

type errorPage struct {
	Title   string
	Status  int
	Message string
}

// releaseForm is the part of the POST body common to both variants; the
// variant fields are read by name afterwards.
type releaseForm struct {
	Kind string `form:"kind" binding:"required"`
}

func (s *Server) formPage(k release.Kind, values map[string]string, problem string) (formPage, error) {
	blank, err := release.Empty(k)
	if err != nil {
		return formPage{}, err
	}
	fields := blank.Fields()
	for i := range fields {
		fields[i].Value = values[fields[i].Name]
	}
	kinds := make([]kindOption, 0, len(release.Kinds()))
	for _, kk := range release.Kinds() {
		kinds = append(kinds, kindOption{Kind: kk, Label: kk.Label(), Selected: kk == k})
	}
	return formPage{Title: appTitle, Kinds: kinds, Kind: k, Fields: fields, Error: problem}, nil
}

// handleForm renders the form. ?kind= picks the variant and ?from=<id>
// prefills it from an earlier record.
func (s *Server) handleForm(c *gin.Context) {
	k := release.KindProduct
	var values map[string]string
	if from := c.Query("from"); from != "" {
		rec, err := s.store.Get(c.Request.Context(), from)
		if err != nil {
			s.fail(c, err)
			return
		}
		k = release.Kind(rec.Kind)
		values = rec.Form
	}
	if q := c.Query("kind"); q != "" {
		parsed, err := release.ParseKind(q)
		if err != nil {
			s.renderError(c, http.StatusBadRequest, err.Error())
			return
		}
		if parsed != k {
			values = nil
		}
		k = parsed
	}
	page, err := s.formPage(k, values, "")
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "form.html", page)
}

func (s *Server) handleCreate(c *gin.Context) {
	var form releaseForm
	if err := c.ShouldBind(&form); err != nil {
		s.renderError(c, http.StatusBadRequest, "보도자료 유형을 선택하세요")
		return
	}
	k, err := release.ParseKind(form.Kind)
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err.Error())
		return
	}
	blank, _ := release.Empty(k)
	values := make(map[string]string)
	for _, f := range blank.Fields() {
		values[f.Name] = c.PostForm(f.Name)
	}

	rel, err := release.FromValues(k, values)
	if err != nil {
		var verr *release.ValidationError
		if !errors.As(err, &verr) {
			s.fail(c, err)
			return
		}
		page, perr := s.formPage(k, values, verr.Error())
		if perr != nil {
			s.fail(c, perr)
			return
		}
		c.HTML(http.StatusUnprocessableEntity, "form.html", page)
		return
	}

	rec, err := s.gen.Generate(c.Request.Context(), rel)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/releases/"+rec.ID)
}

func (s *Server) handleShow(c *gin.Context) {
	rec, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	doc, err := s.fmt.RenderPage(rec.Generated.Title, rec.Generated.News)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "result.html", resultPage{
		Title:    appTitle,
		Record:   rec,
		Document: doc,
		Posts:    rec.Generated.InstaPosts(),
		Debug:    rec.Debug != nil,
	})
}

func attachment(c *gin.Context, name string) {
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
}

func (s *Server) handleDownloadText(c *gin.Context) {
	rec, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	attachment(c, "press_release.txt")
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(rec.Generated.PlainText()))
}

func (s *Server) handleDownloadHTML(c *gin.Context) {
	rec, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	doc, err := s.fmt.RenderPage(rec.Generated.Title, rec.Generated.News)
	if err != nil {
		s.fail(c, err)
		return
	}
	attachment(c, "press_release.html")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}

func (s *Server) handleAPIList(c *gin.Context) {
	q := api.ListQuery{Kind: c.Query("kind"), Limit: s.cfg.GetInt("history.limit")}
	if l := c.Query("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad limit"})
			return
		}
		q.Limit = n
	}
	recs, err := s.store.List(c.Request.Context(), q)
	if err != nil {
		s.log.Error("http: list releases", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if recs == nil {
		recs = []api.Record{}
	}
	c.JSON(http.StatusOK, recs)
}

func (s *Server) handleAPIGet(c *gin.Context) {
	rec, err := s.store.Get(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case err != nil:
		s.log.Error("http: get release", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		c.JSON(http.StatusOK, rec)
	}
}

// fail maps err to an HTML error page.
func (s *Server) fail(c *gin.Context, err error) {
	if errors.Is(err, db.ErrNotFound) {
		s.renderError(c, http.StatusNotFound, "보도자료를 찾을 수 없습니다.")
		return
	}
	s.log.Error("http: request failed", "id", c.GetString(requestIDKey), "err", err)
	s.renderError(c, http.StatusInternalServerError, "요청을 처리하는 중 오류가 발생했습니다.")
}

func (s *Server) renderError(c *gin.Context, status int, msg string) {
	c.HTML(status, "error.html", errorPage{Title: appTitle, Status: status, Message: msg})
}

