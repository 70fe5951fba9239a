package server

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"time"

	"github.com/quic-go/quic-go/http3"
)

const shutdownTimeout = 10 * time.Second

// ListenAndServe runs the front end on addr until ctx is cancelled. TLS and
// HTTP/3 follow the tls.* config keys.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	tlsConf, challenge, err := TLSFromConfig(ctx, s.cfg)
	if err != nil {
		return err
	}
	return s.serve(ctx, addr, tlsConf, challenge)
}

func (s *Server) serve(ctx context.Context, addr string, tlsConf *tls.Config, challenge http.Handler) error {
	var handler http.Handler = s.Router()
	errc := make(chan error, 3)
	var closers []func(context.Context) error

	if tlsConf != nil && s.cfg.GetBool("tls.http3") {
		h3 := &http3.Server{
			Addr:      addr,
			Handler:   handler,
			TLSConfig: http3.ConfigureTLSConfig(tlsConf.Clone()),
		}
		inner := handler
		handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = h3.SetQUICHeaders(w.Header())
			inner.ServeHTTP(w, r)
		})
		go func() { errc <- h3.ListenAndServe() }()
		closers = append(closers, func(context.Context) error { return h3.Close() })
		s.log.Info("server: http3 listening", "addr", addr)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		TLSConfig:         tlsConf,
		ReadHeaderTimeout: 10 * time.Second,
	}
	closers = append(closers, srv.Shutdown)
	go func() {
		if tlsConf != nil {
			errc <- srv.ListenAndServeTLS("", "")
			return
		}
		errc <- srv.ListenAndServe()
	}()
	s.log.Info("server: listening", "addr", addr, "tls", tlsConf != nil)

	if challenge != nil {
		acme := &http.Server{Addr: ":80", Handler: challenge, ReadHeaderTimeout: 10 * time.Second}
		closers = append(closers, acme.Shutdown)
		go func() { errc <- acme.ListenAndServe() }()
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errc:
		if errors.Is(runErr, http.ErrServerClosed) {
			runErr = nil
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, c := range closers {
		if err := c(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Warn("server: shutdown", "err", err)
		}
	}
	return runErr
}
