package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "printshop/docs"
	"printshop/internal/bootstrap"
	"printshop/internal/config"
	"printshop/internal/events"
	handlers "printshop/internal/http/handler"
	"printshop/internal/http/middleware"
	"printshop/internal/logger"
	"printshop/internal/otel"
	"printshop/internal/resilience"
	"printshop/internal/service"
)

const serviceName = "printshop-api"

// @title Print Shop API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()

	appLog := logger.New(serviceName, cfg.LogLevel, loc)
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

	objects, err := bootstrap.OpenStorage(ctx, cfg, exec)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	var publisher events.Publisher = events.Noop{}
	bus, err := bootstrap.ConnectBus(cfg, serviceName, exec, appLog)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if bus != nil {
		defer bus.Close()
		publisher = bus
	}

	// Initialize services
	jobSvc := service.NewPrintJobService(store.PrintJobs, store.Documents, store.Printers, publisher, appLog)
	printerSvc := service.NewPrinterService(store.Printers)
	svc := handlers.Services{
		Users:     service.NewUserService(store.Users),
		Documents: service.NewDocumentService(objects, store.Documents, cfg.UploadMaxBytes),
		PrintJobs: jobSvc,
		Printers:  printerSvc,
		Estimates: service.NewEstimateService(store.Documents),
		Payments:  service.NewPaymentService(store.Payments, store.PrintJobs, jobSvc),
		Contacts:  service.NewContactService(store.Contacts),
		Stats:     service.NewStatsService(store),
	}

	if n, err := printerSvc.SeedDefaults(ctx); err != nil {
		appLog.Warn("printer_seed_failed", "error", err)
	} else if n > 0 {
		appLog.Info("printers_seeded", "count", n)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMw, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// multipart framing on top of the largest accepted file
		BodyLimit: int(cfg.UploadMaxBytes) + 1<<20,
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(promMw.Handler())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(loc))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	handlers.RegisterRoutes(app, store.Pinger, svc, handlers.Options{DefaultRadiusKm: cfg.DefaultRadiusKm})

	registerSwagger(app)

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		appLog.Info("server_listening", "addr", addr, "store", cfg.StoreDriver, "storage", cfg.Storage.Driver)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	case <-ctx.Done():
		appLog.Info("server_shutting_down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLog.Error("server_shutdown_failed", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		appLog.Error("tracing_shutdown_failed", "error", err)
	}
}

// registerSwagger serves the API docs. docs.SwaggerInfo keeps an empty host,
// so Swagger UI calls whichever host and scheme served the page.
func registerSwagger(app *fiber.App) {
	app.Get("/swagger/*", swagger.HandlerDefault)
}
