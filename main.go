package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/quickly-draw/cliparse"
	"github.com/danielhkuo/quickly-draw/db"
	"github.com/danielhkuo/quickly-draw/lottery"
	"github.com/danielhkuo/quickly-draw/middleware"
	"github.com/danielhkuo/quickly-draw/router"
	"github.com/danielhkuo/quickly-draw/storage"
	"github.com/danielhkuo/quickly-draw/storage/memory"
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("storage setup failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage ready", "type", cfg.DatabaseType)

	svc := lottery.NewService(store,
		lottery.WithShareSalt(cfg.ShareCodeSalt),
		lottery.WithTokens(cfg.TokenSecret, cfg.TokenTTL),
		lottery.WithRecordLimit(cfg.RecordPageLimit),
		lottery.WithAdminEmails(cfg.AdminEmails...),
	)

	// Create server
	server := &http.Server{
		Handler:      middleware.CORS(router.NewRouter(svc, cfg)),
		Addr:         ":" + strconv.Itoa(cfg.Port),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		slog.Error("listen failed", "addr", server.Addr, "error", err)
		store.Close()
		os.Exit(1)
	}

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	if err := serve(ctx, server, ln, shutdownTimeout); err != nil {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}

const shutdownTimeout = 10 * time.Second

// serve runs server on ln until ctx is done, then drains in-flight requests
// for up to drain. It returns only after the drain has finished, so the
// caller may release what the handlers use.
func serve(ctx context.Context, server *http.Server, ln net.Listener, drain time.Duration) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), drain)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Warn("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	err := server.Serve(ln)
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}

func newLogger(cfg cliparse.Config) *slog.Logger {
	level, _ := cfg.SlogLevel() // validated by ParseFlags
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func openStore(ctx context.Context, cfg cliparse.Config) (storage.Store, error) {
	if cfg.DatabaseType == "memory" {
		slog.Warn("using in-memory storage; data is lost on exit")
		return memory.New(), nil
	}
	store, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return store, nil
}
