// Package generator produces a release's texts through the webhook, falling
// back to the fixed template, and records every result.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mithrel/pressgen/internal/db"
	"github.com/mithrel/pressgen/internal/release"
	"github.com/mithrel/pressgen/internal/webhook"
	"github.com/mithrel/pressgen/pkg/api"
)

// Generator is satisfied by *webhook.Client.
type Generator interface {
	Generate(ctx context.Context, r release.Release) (webhook.Response, error)
}

type Service struct {
	gen   Generator
	store db.Store
	log   *slog.Logger
	now   func() time.Time
}

func New(gen Generator, store db.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{gen: gen, store: store, log: logger, now: time.Now}
}

// Generate always yields a record: webhook failures switch to the fallback
// template and set Notice. Only a storage failure is returned as an error.
func (s *Service) Generate(ctx context.Context, r release.Release) (api.Record, error) {
	rec := api.Record{
		ID:        api.NewID(),
		Kind:      string(r.Kind()),
		Source:    api.SourceWebhook,
		Form:      release.Values(r),
		CreatedAt: s.now().UTC(),
	}
	start := time.Now()
	resp, err := s.gen.Generate(ctx, r)
	rec.Debug = resp.Debug
	if err != nil {
		s.log.Warn("generate: webhook failed, using fallback template", "kind", rec.Kind, "err", err)
		rec.Source = api.SourceFallback
		rec.Notice = Notice(err)
		rec.Generated = release.Fallback(r)
	} else {
		rec.Generated = resp.Generated
	}
	rec.Hash = rec.Generated.Hash()
	if err := s.store.Put(ctx, rec); err != nil {
		return api.Record{}, fmt.Errorf("save release: %w", err)
	}
	s.log.Info("generate: done", "id", rec.ID, "kind", rec.Kind, "source", rec.Source, "dur", time.Since(start))
	return rec, nil
}

// Notice turns a webhook failure into the message shown next to fallback text.
func Notice(err error) string {
	var se *webhook.StatusError
	switch {
	case errors.As(err, &se):
		return fmt.Sprintf("서버 오류: %d", se.Code)
	case errors.Is(err, webhook.ErrBadResponse):
		return "서버 응답을 처리하는 중 오류가 발생했습니다."
	case errors.Is(err, webhook.ErrIncomplete):
		return "생성 결과에 제목 또는 본문이 없어 기본 템플릿을 사용했습니다."
	case errors.Is(err, webhook.ErrNoURL):
		return "Webhook 주소가 설정되지 않아 기본 템플릿을 사용했습니다."
	default:
		return fmt.Sprintf("Webhook 호출 중 오류가 발생했습니다: %v", err)
	}
}
