package http_handler

import (
	"context"
	"errors"

	"github.com/anthanhphan/go-sheet-charts/internal/adapter/inbound/http/middleware"
	"github.com/anthanhphan/go-sheet-charts/internal/config"
	"github.com/anthanhphan/go-sheet-charts/internal/port"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

type Server struct {
	app      *fiber.App
	cfg      *config.Config
	files    port.FileService
	charts   port.ChartService
	stats    port.StatsService
	payloads port.PayloadStore
}

func NewServer(cfg *config.Config, files port.FileService, charts port.ChartService, stats port.StatsService, payloads port.PayloadStore) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.App.MaxUploadSize),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(middleware.Metrics())

	s := &Server{
		app:      app,
		cfg:      cfg,
		files:    files,
		charts:   charts,
		stats:    stats,
		payloads: payloads,
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	metricsHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	s.app.Get("/metrics", func(c *fiber.Ctx) error {
		metricsHandler(c.Context())
		return nil
	})

	api := s.app.Group("/api", middleware.Protect(s.cfg.Auth.JWTSecret))

	api.Post("/files/upload", s.handleUpload)
	api.Get("/files", s.handleListFiles)
	api.Get("/files/all", s.handleListAllFiles)
	api.Get("/files/stats", s.handleFileStats)
	api.Get("/files/:id/data", s.handleFileData)
	api.Get("/files/:id/preview", s.handleFilePreview)
	api.Delete("/files/:id", s.handleDeleteFile)

	api.Post("/charts", s.handleSaveChart)
	api.Get("/charts/saved", s.handleListChartSummaries)
	api.Get("/charts/all", s.handleListAllCharts)
	api.Get("/charts/stats", s.handleChartStats)
	api.Get("/charts/:id", s.handleGetChart)
	api.Get("/charts/:id/expiry", s.handleChartExpiry)
	api.Delete("/charts/:id", s.handleDeleteChart)

	admin := api.Group("/admin", middleware.AdminOnly())
	admin.Get("/stats", s.handleAdminStats)
	admin.Delete("/files/:id", s.handleAdminDeleteFile)
	admin.Delete("/charts/:id", s.handleAdminDeleteChart)
}

func (s *Server) Start() error {
	return s.app.Listen(s.cfg.Server.Addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown()
}

// Test exposes the fiber app for handler tests.
func (s *Server) Test() *fiber.App {
	return s.app
}

func (s *Server) sendJSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// respondError maps the service error taxonomy to HTTP statuses. NotFound
// never reveals whether the resource exists under another owner.
func (s *Server) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, port.ErrNotFound):
		return s.sendJSONError(c, fiber.StatusNotFound, "Not found")
	case errors.Is(err, port.ErrInvalidType),
		errors.Is(err, port.ErrInvalidSize),
		errors.Is(err, port.ErrInvalidChartType),
		errors.Is(err, port.ErrMissingAxis),
		errors.Is(err, port.ErrInvalidDataShape),
		errors.Is(err, port.ErrInvalidChartData),
		errors.Is(err, port.ErrChartOutlivesFile):
		return s.sendJSONError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, port.ErrStoreUnavailable):
		return s.sendJSONError(c, fiber.StatusServiceUnavailable, "Temporarily unavailable, retry later")
	default:
		return s.sendJSONError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
