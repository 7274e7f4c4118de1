package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/pkg/browser"
)

type Config struct {
	Debug bool
	Addr  string

	Timeout     time.Duration
	Rate        float64
	Burst       int
	CORSOrigins []string
	Open        bool
}

const shutdownTimeout = 10 * time.Second

// Serve starts the song catalog service and blocks until the context is
// done.
func Serve(ctx context.Context, cfg *Config) error {
	log.Println("web: server started")
	defer log.Println("web: server ended")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	debug := func(format string, args ...interface{}) {
		if !cfg.Debug {
			return
		}
		format += "\n"
		log.Printf(format, args...)
	}

	host, port, err := net.SplitHostPort(cfg.Addr)
	if err != nil {
		return fmt.Errorf("web: invalid address %q: %w", cfg.Addr, err)
	}
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("web: couldn't listen on %s: %w", cfg.Addr, err)
	}

	server := &http.Server{
		Handler:           Handler(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errC := make(chan error, 1)
	go func() {
		defer close(errC)
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
			cancel()
		}
	}()

	if host == "" {
		host = "localhost"
	}
	u := fmt.Sprintf("http://%s/api/songs", net.JoinHostPort(host, port))
	log.Printf("web: listening on %s\n", u)
	if cfg.Open {
		if err := browser.OpenURL(u); err != nil {
			log.Printf("web: couldn't open browser: %v\n", err)
		}
	}

	<-ctx.Done()
	debug("web: shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: couldn't shutdown server: %w", err)
	}
	if err := <-errC; err != nil {
		return fmt.Errorf("web: server failed: %w", err)
	}
	return nil
}
