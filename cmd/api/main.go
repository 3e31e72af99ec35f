package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/resume-detector/internal/config"
	"alfredoptarigan/resume-detector/internal/handlers"
	"alfredoptarigan/resume-detector/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	for _, endpoint := range []config.Endpoint{config.EndpointSubmission, config.EndpointReport} {
		if _, err := cfg.Endpoints.Resolve(endpoint); err != nil {
			log.Printf("⚠️  %v", err)
		}
	}

	if cfg.IsDevelopment() && !cfg.Report.StrictLabels {
		log.Println("💡 STRICT_LABELS=true reports unknown verification labels as errors")
	}

	// Initialize services
	client := services.NewAnalysisClient()
	classifier := services.NewClassifier(cfg.Report.StrictLabels, cfg.Report.Schema == config.SchemaLegacy)

	telemetry := services.NewNonCriticalPool(cfg.Telemetry.Workers, cfg.Telemetry.QueueSize)
	ctx := context.Background()
	telemetry.Start(ctx)
	log.Println("✅ Telemetry pool started")

	composer := services.NewComposerService(
		cfg.Endpoints,
		cfg.Documents.AcceptedType,
		services.NewDocumentEncoder(),
		client,
		telemetry,
	)
	viewer := services.NewReportViewer(cfg.Endpoints, client, classifier)
	presenter := services.NewReportPresenter(classifier)
	log.Println("✅ Services initialized successfully")

	// Initialize Handlers
	submissionHandler := handlers.NewSubmissionHandler(
		composer,
		services.NewDocumentSource(),
		services.NewPDFInspector(),
		cfg.Documents.MaxFileSize,
	)
	resultHandler := handlers.NewResultHandler(viewer, presenter)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Bullsh*t Detector",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    bodyLimit(cfg.Documents.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/files", submissionHandler.HandleListFiles)
	api.Post("/submissions", submissionHandler.HandleSubmit)
	api.Get("/results/:id", resultHandler.HandleGetResult)

	// Report page
	app.Get("/results/:id?", resultHandler.HandleResultPage)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Bullsh*t Detector",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/files",
				"POST /api/v1/submissions",
				"GET /api/v1/results/:id",
				"GET /results/:id",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
		telemetry.Shutdown(cfg.Telemetry.DrainTimeout)
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 Report pages: http://localhost%s/results/<id>\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// bodyLimit leaves room for several documents plus the form fields.
func bodyLimit(maxFileSize int64) int {
	const maxDocuments = 10
	return int(maxFileSize)*maxDocuments + 1<<20
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
