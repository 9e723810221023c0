package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alfurqan/tahfiz-api/internal/config"
	"github.com/alfurqan/tahfiz-api/internal/handler"
	"github.com/alfurqan/tahfiz-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	StudentHandler    *handler.StudentHandler
	SessionHandler    *handler.SessionHandler
	ProgressHandler   *handler.ProgressHandler
	RankingHandler    *handler.RankingHandler
	EvaluationHandler *handler.EvaluationHandler
	ReportHandler     *handler.ReportHandler
	UploadHandler     *handler.UploadHandler
	ExportHandler     *handler.ExportHandler
	ActivityHandler   *handler.ActivityHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	protected := api.Group("", jwtMiddleware)

	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterProtected(protected.Group("/auth"))
	}
	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(protected.Group("/students"))
	}
	if deps.SessionHandler != nil {
		deps.SessionHandler.Register(protected.Group("/sessions"))
	}
	if deps.ProgressHandler != nil {
		deps.ProgressHandler.Register(protected.Group("/students"))
	}
	if deps.RankingHandler != nil {
		deps.RankingHandler.Register(protected.Group("/rankings"))
	}
	if deps.EvaluationHandler != nil {
		deps.EvaluationHandler.Register(protected.Group("/evaluation"))
	}
	if deps.ReportHandler != nil {
		deps.ReportHandler.Register(protected.Group("/reports"))
	}
	if deps.UploadHandler != nil {
		deps.UploadHandler.Register(protected.Group("/uploads"))
	}
	if deps.ExportHandler != nil {
		deps.ExportHandler.Register(protected.Group("/exports"))
	}
	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(protected.Group("/activity"))
	}
}
