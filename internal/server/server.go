// Package server is the web front end: the release forms, result previews,
// downloads, and a small JSON API over the history store.
package server

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/mithrel/pressgen/internal/db"
	"github.com/mithrel/pressgen/internal/htmlfmt"
	"github.com/mithrel/pressgen/internal/release"
	"github.com/mithrel/pressgen/internal/render"
	"github.com/mithrel/pressgen/pkg/api"
)

//go:embed templates/*.html
var templateFS embed.FS

// Generator produces and stores a record for a validated release.
type Generator interface {
	Generate(ctx context.Context, r release.Release) (api.Record, error)
}

type Server struct {
	cfg   *viper.Viper
	store db.Store
	gen   Generator
	fmt   htmlfmt.Formatter
	log   *slog.Logger
}

func New(cfg *viper.Viper, store db.Store, gen Generator, f htmlfmt.Formatter, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{cfg: cfg, store: store, gen: gen, fmt: f, log: logger}
}

const requestIDKey = "requestID"

var funcs = template.FuncMap{
	// nl2br escapes s and turns newlines into <br>.
	"nl2br": func(s string) template.HTML {
		return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>"))
	},
	"markdown": func(s string) template.HTML {
		return template.HTML(render.MarkdownHTML(s))
	},
	"inc": func(i int) int { return i + 1 },
}

func templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

// Router returns the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(s.requestLogger())
	r.Use(gin.Recovery())
	r.SetHTMLTemplate(templates())

	r.GET("/", s.handleForm)
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	releases := r.Group("/releases")
	{
		releases.POST("", s.handleCreate)
		releases.GET("/:id", s.handleShow)
		releases.GET("/:id/press_release.txt", s.handleDownloadText)
		releases.GET("/:id/press_release.html", s.handleDownloadHTML)
	}

	apiGroup := r.Group("/api")
	{
		apiGroup.Use(s.auth())
		apiGroup.GET("/releases", s.handleAPIList)
		apiGroup.GET("/releases/:id", s.handleAPIGet)
	}
	return r
}

// requestLogger tags each request with an ID and logs it once finished.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(requestIDKey, id)
		start := time.Now()
		c.Next()
		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		s.log.Log(c.Request.Context(), level, "http: request",
			"id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"dur", time.Since(start),
		)
	}
}
