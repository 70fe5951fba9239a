// Package webhook calls the external AI generation endpoint that turns a
// release form into press text.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mithrel/pressgen/internal/release"
	"github.com/mithrel/pressgen/pkg/api"
)

const (
	DefaultTimeout = 30 * time.Second
	maxBody        = 8 << 20
)

var (
	ErrNoURL       = errors.New("webhook url is not configured")
	ErrBadResponse = errors.New("unreadable webhook response")
	ErrIncomplete  = errors.New("webhook response missing title or news")
)

// StatusError reports a non-200 webhook reply.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook returned status %d", e.Code)
}

// Options configures a Client. Debug records raw responses on every call.
type Options struct {
	URL        string
	Timeout    time.Duration
	Token      string
	Debug      bool
	Logger     *slog.Logger
	HTTPClient *http.Client
}

type Client struct {
	url        string
	token      string
	debug      bool
	log        *slog.Logger
	httpClient *http.Client
}

func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		url:        strings.TrimSpace(opts.URL),
		token:      strings.TrimSpace(opts.Token),
		debug:      opts.Debug,
		log:        logger,
		httpClient: hc,
	}
}

// Response is a parsed generation. Debug is set only when the client runs
// with Debug enabled, and is populated even when Generate fails.
type Response struct {
	Generated api.Generated
	Debug     *api.Debug
}

// Generate posts r's payload once and parses the reply. There is no retry.
func (c *Client) Generate(ctx context.Context, r release.Release) (Response, error) {
	if c.url == "" {
		return Response{}, ErrNoURL
	}
	body, err := json.Marshal(r.Payload())
	if err != nil {
		return Response{}, fmt.Errorf("encode payload: %w", err)
	}
	start := time.Now()
	raw, code, ct, err := c.execRequest(ctx, body)
	var resp Response
	if c.debug {
		resp.Debug = &api.Debug{Status: code, ContentType: ct, Raw: string(raw)}
	}
	if err != nil && !errors.Is(err, ErrBadResponse) {
		return c.fail(resp, fmt.Errorf("webhook request: %w", err))
	}
	c.log.Debug("webhook: response", "status", code, "content_type", ct, "bytes", len(raw), "dur", time.Since(start))
	if c.debug {
		c.log.Debug("webhook: raw response", "text", string(raw))
	}
	if code != http.StatusOK {
		return c.fail(resp, &StatusError{Code: code, Body: strings.TrimSpace(string(raw))})
	}
	if err != nil {
		return c.fail(resp, err)
	}
	g, err := parse(ct, raw)
	if err != nil {
		return c.fail(resp, err)
	}
	resp.Generated = g
	return resp, nil
}

func (c *Client) fail(resp Response, err error) (Response, error) {
	if resp.Debug != nil {
		resp.Debug.Error = err.Error()
	}
	c.log.Debug("webhook: failed", "err", err)
	return resp, err
}

func (c *Client) execRequest(ctx context.Context, body []byte) ([]byte, int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, "", err
	}
	defer resp.Body.Close()

	ct := resp.Header.Get("Content-Type")
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return nil, resp.StatusCode, ct, err
	}
	if len(respBody) > maxBody {
		return respBody[:maxBody], resp.StatusCode, ct, fmt.Errorf("%w: body exceeds %d bytes", ErrBadResponse, maxBody)
	}
	return respBody, resp.StatusCode, ct, nil
}
