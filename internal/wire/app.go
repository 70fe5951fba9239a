package wire

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/mithrel/pressgen/internal/config"
	"github.com/mithrel/pressgen/internal/db"
	"github.com/mithrel/pressgen/internal/generator"
	"github.com/mithrel/pressgen/internal/htmlfmt"
	"github.com/mithrel/pressgen/internal/keys"
	"github.com/mithrel/pressgen/internal/webhook"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg       *viper.Viper
	Log       *slog.Logger
	Store     db.Store
	Webhook   *webhook.Client
	Generator *generator.Service
	Formatter htmlfmt.Formatter
}

// NewLogger builds the process logger. Debug level follows webhook.debug.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// BuildApp wires dependencies with the provided config.
func BuildApp(ctx context.Context, v *viper.Viper) (*App, error) {
	logger := NewLogger(os.Stderr, v.GetBool("webhook.debug"))

	store, err := db.Open(ctx, config.ResolveDBURL(v))
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	token, err := keys.WebhookToken(v)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("resolve webhook token: %w", err)
	}
	hook := webhook.New(webhook.Options{
		URL:     v.GetString("webhook.url"),
		Timeout: v.GetDuration("webhook.timeout"),
		Token:   token,
		Debug:   v.GetBool("webhook.debug"),
		Logger:  logger.With("component", "webhook"),
	})
	return &App{
		Cfg:       v,
		Log:       logger,
		Store:     store,
		Webhook:   hook,
		Generator: generator.New(hook, store, logger.With("component", "generator")),
		Formatter: htmlfmt.Formatter{Escape: v.GetBool("format.escape_html")},
	}, nil
}

// Close releases resources held by the app.
func (a *App) Close() error {
	if a == nil || a.Store == nil {
		return nil
	}
	return a.Store.Close()
}
