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

	appInventory "github.com/Zhima-Mochi/minishop-pos/internal/application/inventory"
	appOrder "github.com/Zhima-Mochi/minishop-pos/internal/application/order"
	"github.com/Zhima-Mochi/minishop-pos/internal/config"
	dominv "github.com/Zhima-Mochi/minishop-pos/internal/domain/inventory"
	"github.com/Zhima-Mochi/minishop-pos/internal/infrastructure/id"
	inventoryworker "github.com/Zhima-Mochi/minishop-pos/internal/infrastructure/inventory/worker"
	"github.com/Zhima-Mochi/minishop-pos/internal/infrastructure/memory"
	infraobs "github.com/Zhima-Mochi/minishop-pos/internal/infrastructure/observability"
	"github.com/Zhima-Mochi/minishop-pos/internal/infrastructure/observability/oteltrace"
	"github.com/Zhima-Mochi/minishop-pos/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/minishop-pos/internal/infrastructure/observability/zaplogger"
	orderworker "github.com/Zhima-Mochi/minishop-pos/internal/infrastructure/order/worker"
	"github.com/Zhima-Mochi/minishop-pos/internal/infrastructure/outbox"
	"github.com/Zhima-Mochi/minishop-pos/internal/pkg/logging"
	"github.com/Zhima-Mochi/minishop-pos/internal/presentation/console"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "minishop-pos:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	baseLogger, err := logging.NewLogger(logging.Options{
		Service: cfg.ServiceName,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
	})
	if err != nil {
		return err
	}
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	systemLogger := logging.WithTrace(baseLogger, logging.SystemTraceID, logging.SystemSpanID)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	traces, err := oteltrace.Init(ctx, oteltrace.Config{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Env,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		SampleRate:  cfg.Telemetry.SampleRate,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := traces.Shutdown(shutdownCtx); err != nil {
			systemLogger.Error("trace_shutdown_error", zap.Error(err))
		}
	}()

	metrics := prometrics.New("pos")
	counters, histograms := metrics.Instruments()
	tel := infraobs.New(
		oteltrace.New(cfg.ServiceName),
		zaplogger.New(baseLogger),
		counters,
		histograms,
	)

	bus := outbox.NewBus(tel)
	bus.Start(ctx)
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := bus.Stop(stopCtx); err != nil {
			systemLogger.Error("event_bus_stop_error", zap.Error(err))
		}
		if path := cfg.Telemetry.MetricsTextfile; path != "" {
			if err := metrics.WriteTextfile(path); err != nil {
				systemLogger.Error("metrics_textfile_error", zap.String("path", path), zap.Error(err))
			}
		}
	}()

	catalog := memory.MustNewCatalog(dominv.SeedProducts())
	orderRepo := memory.NewOrderRepository()

	restock := appInventory.NewRestockUseCase(catalog, bus, tel)
	inventoryService := appInventory.NewService(catalog, tel)
	addPurchase := appOrder.NewAddPurchaseUseCase(orderRepo, catalog, bus, tel, cfg.POS.ReorderThreshold)
	orderService := appOrder.NewService(
		orderRepo,
		id.NewUUIDGenerator("INV"),
		appOrder.SystemClock,
		bus,
		addPurchase,
		appOrder.Settings{Store: cfg.POS.StoreName, Capacity: cfg.POS.MaxLineItems},
		tel,
	)

	inventoryworker.New(bus, appInventory.NewWorker(tel), tel.Logger()).Start()
	orderworker.New(bus, appOrder.NewSalesWorker(tel), tel.Logger()).Start()

	if addr := cfg.Telemetry.MetricsAddr; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		go func() {
			systemLogger.Info("metrics_server_start", zap.String("addr", addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				systemLogger.Error("metrics_server_error", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				systemLogger.Error("metrics_server_shutdown_error", zap.Error(err))
			}
		}()
	}

	terminal := console.New(os.Stdin, os.Stdout, orderService, inventoryService, restock,
		console.WithStoreName(cfg.POS.StoreName),
		console.WithLogger(tel.Logger()),
	)
	go func() {
		<-ctx.Done()
		stop()
		_ = os.Stdin.Close()
	}()
	if err := terminal.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
