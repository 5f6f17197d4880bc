package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	tomb "gopkg.in/tomb.v2"

	"ironbook/internal/api"
	"ironbook/internal/book"
	"ironbook/internal/config"
	"ironbook/internal/matching"
	"ironbook/internal/metrics"
	"ironbook/internal/stp"
	"ironbook/internal/tradeid"
	"ironbook/internal/tradelog"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the matching engine behind the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(*configPath)
		},
	}
}

func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var w zerolog.ConsoleWriter
	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		return zerolog.New(w).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

func stpPolicyFor(name string) (stp.Policy, error) {
	switch name {
	case "cancel_both":
		return stp.CancelBoth{}, nil
	case "cancel_incoming":
		return stp.CancelIncoming{}, nil
	case "cancel_resting":
		return stp.CancelResting{}, nil
	default:
		return nil, fmt.Errorf("unknown stp policy %q", name)
	}
}

func runServe(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("serve: invalid config: %w", err)
	}

	logger := newLogger(cfg.Logging)

	policy, err := stpPolicyFor(cfg.Book.STPPolicy)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	binLogger, err := tradelog.NewBinaryLogger(cfg.TradeLog.Path)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	asyncLogger := tradelog.NewAsyncWriter(binLogger, cfg.TradeLog.QueueDepth, cfg.TradeLog.FlushInterval)

	ids := tradeid.NewMonotonic(cfg.Book.TradeIDSeed)
	b := book.New()
	engine := matching.New(b, policy, asyncLogger, ids)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	server := api.New(cfg.Listen.Addr, engine, m, cfg.Metrics.Path, logger, monotonicNow())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	t, _ := tomb.WithContext(ctx)
	t.Go(func() error {
		return server.Run()
	})

	logger.Info().Str("addr", cfg.Listen.Addr).Str("trade_log", cfg.TradeLog.Path).Msg("ironbook serving")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received, draining trade log")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error shutting down api server")
	}

	t.Kill(nil)
	_ = t.Wait()
	_ = asyncLogger.Close()
	return nil
}

// monotonicNow returns a clock function suitable for stamping incoming
// orders: nanoseconds since the process started, which is monotonic and
// strictly increasing across a single serve invocation.
func monotonicNow() func() uint64 {
	start := time.Now()
	return func() uint64 {
		return uint64(time.Since(start).Nanoseconds())
	}
}
