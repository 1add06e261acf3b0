// Command snoozed is a reference hack-or-snooze story server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/atinyakov/hack-or-snooze/internal/app/server"
	"github.com/atinyakov/hack-or-snooze/internal/app/service"
	"github.com/atinyakov/hack-or-snooze/internal/config"
	"github.com/atinyakov/hack-or-snooze/internal/logger"
	"github.com/atinyakov/hack-or-snooze/internal/repository"
	"github.com/atinyakov/hack-or-snooze/internal/storage"

	_ "net/http/pprof"
)

var buildVersion string
var buildDate string
var buildCommit string

func main() {
	options, err := config.ParseServer(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("Build version: %s\n", orNA(buildVersion))
	fmt.Printf("Build date: %s\n", orNA(buildDate))
	fmt.Printf("Build commit: %s\n", orNA(buildCommit))

	log := logger.New()
	defer log.Sync()

	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, options, log.Log); err != nil {
		log.Log.Error("server stopped", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func run(ctx context.Context, options *config.Server, zapLogger *zap.Logger) error {
	if options.EnablePprof {
		go func() {
			zapLogger.Info("Starting pprof server", zap.String("addr", "localhost:6060"))
			if err := http.ListenAndServe("localhost:6060", nil); err != nil {
				zapLogger.Error("pprof server error", zap.Error(err))
			}
		}()
	}

	handler, closeStorage, err := buildHandler(ctx, options, zapLogger)
	if err != nil {
		return err
	}
	defer closeStorage()

	srv := &http.Server{
		Addr:              options.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if options.EnableHTTPS {
			manager := &autocert.Manager{
				Cache:      autocert.DirCache("cache-dir"),
				Prompt:     autocert.AcceptTOS,
				HostPolicy: autocert.HostWhitelist(hostOf(options.Addr)),
			}
			srv.Addr = ":443"
			srv.TLSConfig = manager.TLSConfig()

			zapLogger.Info("Server is running with TLS", zap.String("addr", srv.Addr))
			errCh <- srv.ListenAndServeTLS("", "")
			return
		}

		zapLogger.Info("Server is running", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	zapLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// buildHandler picks the storage and wires the router on top of it.
func buildHandler(ctx context.Context, options *config.Server, zapLogger *zap.Logger) (http.Handler, func(), error) {
	var (
		s       service.Storage
		closeFn = func() {}
	)

	if options.DatabaseDSN != "" {
		zapLogger.Info("using db")

		db, err := repository.InitDB(ctx, options.DatabaseDSN, zapLogger)
		if err != nil {
			return nil, nil, fmt.Errorf("init db: %w", err)
		}
		closeFn = func() { _ = db.Close() }
		s = repository.CreateStoryRepository(db, zapLogger)

		zapLogger.Info("Database connected and schema ready.")
	} else {
		zapLogger.Info("using in memory storage")

		mem, err := storage.CreateMemoryStorage()
		if err != nil {
			return nil, nil, err
		}
		s = mem
	}

	auth := service.NewAuth(options.TokenSecret, options.TokenTTL)
	stories := service.NewStoryService(s, auth, zapLogger)

	return server.Init(stories, zapLogger), closeFn, nil
}

func hostOf(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
