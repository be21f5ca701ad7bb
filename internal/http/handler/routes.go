package handler

import (
	"github.com/gofiber/fiber/v2"

	"printshop/internal/http/middleware"
	"printshop/internal/repository"
	"printshop/internal/service"
)

// Services bundles the use cases served over HTTP.
type Services struct {
	Users     service.UserService
	Documents service.DocumentService
	PrintJobs service.PrintJobService
	Printers  service.PrinterService
	Estimates service.EstimateService
	Payments  service.PaymentService
	Contacts  service.ContactService
	Stats     service.StatsService
}

// Options tunes request handling.
type Options struct {
	// DefaultRadiusKm is used by /printers/nearby when ?radius= is absent.
	DefaultRadiusKm float64
}

// RegisterRoutes attaches the health probes and the /api routes to app.
func RegisterRoutes(app *fiber.App, pinger repository.Pinger, svc Services, opts Options) {
	if opts.DefaultRadiusKm <= 0 {
		opts.DefaultRadiusKm = 10
	}

	app.Get("/health", HealthCheck(pinger))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api", middleware.NoStore())

	api.Post("/auth/register", RegisterUser(svc.Users))
	api.Get("/users/:id", GetUser(svc.Users))
	api.Patch("/users/:id", UpdateUser(svc.Users))

	api.Get("/documents", ListDocuments(svc.Documents))
	api.Post("/documents/upload", UploadDocument(svc.Documents))
	api.Get("/documents/:id", GetDocument(svc.Documents))
	api.Get("/documents/:id/download", DownloadDocument(svc.Documents))
	api.Delete("/documents/:id", DeleteDocument(svc.Documents))
	api.Get("/ai-recommendation/:documentId", GetRecommendation(svc.Documents))

	api.Get("/print-jobs", ListPrintJobs(svc.PrintJobs))
	api.Post("/print-jobs", CreatePrintJob(svc.PrintJobs))
	api.Get("/print-jobs/:id", GetPrintJob(svc.PrintJobs))
	api.Put("/print-jobs/:id/status", UpdatePrintJobStatus(svc.PrintJobs))
	api.Delete("/print-jobs/:id", CancelPrintJob(svc.PrintJobs))
	api.Post("/estimate", Estimate(svc.Estimates))

	api.Get("/printers", ListPrinters(svc.Printers))
	api.Get("/printers/nearby", NearbyPrinters(svc.Printers, opts.DefaultRadiusKm))
	api.Get("/printers/:id", GetPrinter(svc.Printers))
	api.Post("/printers", CreatePrinter(svc.Printers))
	api.Patch("/printers/:id/open", SetPrinterOpen(svc.Printers))

	api.Get("/payments", ListPayments(svc.Payments))
	api.Post("/payments", CreatePayment(svc.Payments))
	api.Put("/payments/:id", PaymentCallback(svc.Payments))

	api.Post("/contact", SubmitContact(svc.Contacts))

	api.Get("/dashboard/stats/:userId", DashboardStats(svc.Stats))
	api.Get("/admin/metrics", AdminMetrics(svc.Stats))
	api.Get("/admin/documents", ListAllDocuments(svc.Documents))
}
