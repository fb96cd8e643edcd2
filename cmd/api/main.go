package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"call-coaching-go/internal/api"
	"call-coaching-go/internal/config"
	"call-coaching-go/internal/dataset"
	"call-coaching-go/internal/logger"
	"call-coaching-go/internal/processor"
	"call-coaching-go/internal/signals"
	"call-coaching-go/internal/store"
	"call-coaching-go/internal/webhook"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run owns every resource so deferred closes happen before main exits.
func run() error {
	cfg := config.Load()

	log := logger.NewWith(cfg.Environment, cfg.LogLevel, os.Stdout)
	log.WithField("service", "call-coaching-go").Info("starting service")

	table := signals.DefaultKeywords()
	if cfg.KeywordsFile != "" {
		t, err := signals.LoadKeywordTable(cfg.KeywordsFile)
		if err != nil {
			log.WithError(err).Error("failed to load keyword table")
			return err
		}
		table = t
	}
	log.WithField("keyword_version", table.Version).Info("keyword table ready")
	analyzer := signals.NewAnalyzer(table, log.WithField("component", "signals"))

	var procOpts []processor.Option
	var srvOpts []api.Option

	if cfg.DatabasePath != "" {
		st, err := store.Open(cfg.DatabasePath)
		if err != nil {
			log.WithError(err).Error("failed to open score store")
			return err
		}
		defer st.Close()
		procOpts = append(procOpts, processor.WithSaver(st))
		srvOpts = append(srvOpts, api.WithStore(st))
		log.WithField("db_path", cfg.DatabasePath).Info("score store opened")
	}

	if cfg.WebhookURL != "" {
		n := webhook.New(cfg.WebhookURL, cfg.WebhookTimeout, cfg.WebhookMaxRetry, log)
		procOpts = append(procOpts, processor.WithNotifier(n))
		log.WithField("webhook_url", cfg.WebhookURL).Info("score notifications enabled")
	}

	if cfg.DatasetPath != "" {
		records, _, err := dataset.LoadAndSummarize(cfg.DatasetPath, log)
		if err != nil {
			log.WithError(err).Error("failed to load dataset")
			return err
		}
		srvOpts = append(srvOpts, api.WithRecords(records))
	}

	proc := processor.New(analyzer, log, procOpts...)
	srv := api.NewServer(proc, log, srvOpts...)

	httpSrv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, httpSrv, log); err != nil {
		log.WithError(err).Error("server terminated")
		return err
	}
	log.Info("server stopped")
	return nil
}

// serve runs srv until ctx is done or the listener fails, then shuts down.
func serve(ctx context.Context, srv *http.Server, log *logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
