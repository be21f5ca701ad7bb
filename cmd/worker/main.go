package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"

	"printshop/internal/bootstrap"
	"printshop/internal/config"
	handlers "printshop/internal/http/handler"
	"printshop/internal/logger"
	"printshop/internal/metrics"
	"printshop/internal/otel"
	"printshop/internal/resilience"
	"printshop/internal/service"
	"printshop/internal/worker"
)

const serviceName = "printshop-worker"

func main() {
	cfg := config.Load()
	if cfg.NATS.URL == "" {
		log.Fatal("NATS_URL is required for the worker")
	}

	appLog := logger.New(serviceName, cfg.LogLevel, cfg.Location())
	slog.SetDefault(appLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, serviceName, appLog)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}

	store, closeStore, err := bootstrap.OpenStore(ctx, cfg, appLog)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer closeStore()

	exec := resilience.NewExecutor(resilience.FromAppConfig(cfg.Resilience), appLog)
	bus, err := bootstrap.ConnectBus(cfg, serviceName, exec, appLog)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	defer bus.Close()

	// status changes made here are published back on the status subject
	jobSvc := service.NewPrintJobService(store.PrintJobs, store.Documents, store.Printers, bus, appLog)
	workerMetrics := metrics.NewWorkerMetrics(serviceName)
	processor := worker.NewProcessor(jobSvc, workerMetrics, appLog)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler()})
	app.Get("/healthz", handlers.LivenessProbe())
	app.Get("/health", handlers.HealthCheck(store.Pinger))
	app.Get("/metrics", adaptor.HTTPHandler(workerMetrics.Handler()))

	go func() {
		if err := app.Listen(":" + cfg.WorkerPort); err != nil {
			appLog.Error("metrics_server_failed", "error", err)
		}
	}()

	appLog.Info("worker_started",
		"events_subject", cfg.NATS.EventsSubject,
		"queue_group", cfg.NATS.QueueGroup,
		"metrics_port", cfg.WorkerPort,
	)
	if err := processor.Run(ctx, bus); err != nil {
		appLog.Error("worker_run_failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLog.Error("metrics_server_shutdown_failed", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		appLog.Error("tracing_shutdown_failed", "error", err)
	}
	appLog.Info("worker_stopped")
}
