package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nikolayk812/cartrecon/internal/catalog"
	"github.com/nikolayk812/cartrecon/internal/config"
	"github.com/nikolayk812/cartrecon/internal/console"
	"github.com/nikolayk812/cartrecon/internal/countdown"
	"github.com/nikolayk812/cartrecon/internal/inventory"
	"github.com/nikolayk812/cartrecon/internal/logging"
	"github.com/nikolayk812/cartrecon/internal/notify"
	"github.com/nikolayk812/cartrecon/internal/store"
	"github.com/nikolayk812/cartrecon/internal/telemetry"
)

const service = "cartdemo"

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logging.New(service, cfg.LogLevel)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("cartdemo stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat := catalog.Default(cfg.Currency)
	ledger, err := inventory.NewLedger(cat.Stock())
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	timer := countdown.New(cfg.CheckoutWindow)
	defer timer.Stop()

	sinks := notify.Fanout{
		notify.NewLogSink(log),
		telemetry.NewMetrics(reg),
		timer,
	}

	s := store.New(ledger, cfg.Currency,
		store.WithSink(&sinks),
		store.WithHistoryDepth(cfg.HistoryDepth),
		store.WithDoubleReserveOnMove(cfg.DoubleReserveOnMove),
		store.WithSavedCarts(cat.SampleSavedCarts(uuid.New)...),
	)

	con := console.New(s, cat, timer, os.Stdout)
	sinks = append(sinks, con)

	log.Info("session started",
		zap.String("currency", cfg.Currency.String()),
		zap.Int("history_depth", cfg.HistoryDepth),
		zap.Duration("checkout_window", cfg.CheckoutWindow),
	)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.MetricsAddr != "" {
		h := telemetry.NewHandler(telemetry.HTTPDeps{Log: log, Registry: reg})
		g.Go(func() error {
			return telemetry.RunHTTPServer(gctx, cfg.MetricsAddr, h, log)
		})
	}

	g.Go(func() error {
		// Leaving the console ends the session and stops the metrics server.
		defer stop()
		return con.Run(gctx, os.Stdin)
	})

	return g.Wait()
}
