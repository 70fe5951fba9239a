package wire

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/pressgen/internal/release"
	"github.com/mithrel/pressgen/pkg/api"
)

func TestBuildAppWithoutWebhookFallsBack(t *testing.T) {
	v := viper.New()
	v.Set("db_url", "mem://")
	v.Set("format.escape_html", true)

	app, err := BuildApp(context.Background(), v)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	require.True(t, app.Formatter.Escape)

	rel, err := release.FromValues(release.KindEvent, map[string]string{
		"title":           "봄맞이 할인",
		"intro":           "소개",
		"event_name":      "봄 세일",
		"period":          "3월",
		"details":         "전 품목 할인",
		"target_products": "전 제품",
	})
	require.NoError(t, err)

	rec, err := app.Generator.Generate(context.Background(), rel)
	require.NoError(t, err)
	require.Equal(t, api.SourceFallback, rec.Source)

	got, err := app.Store.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec.Hash, got.Hash)
}

func TestBuildAppSQLite(t *testing.T) {
	v := viper.New()
	v.Set("data_dir", t.TempDir())
	app, err := BuildApp(context.Background(), v)
	require.NoError(t, err)
	require.NoError(t, app.Close())
}

func TestBuildAppBadProvider(t *testing.T) {
	v := viper.New()
	v.Set("db_url", "mem://")
	v.Set("webhook.token_provider", "vault")
	_, err := BuildApp(context.Background(), v)
	require.Error(t, err)
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, false).Debug("hidden")
	require.Empty(t, buf.String())
	NewLogger(&buf, true).Debug("shown")
	require.Contains(t, buf.String(), "shown")
}
