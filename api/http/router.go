package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/shiptrack/api/api/http/handlers"
	"github.com/shiptrack/api/api/http/middleware"
	"github.com/shiptrack/api/api/http/presenter"
	"github.com/shiptrack/api/pkg/logging"
)

// NewApp builds the Fiber app with the cross-cutting middleware stack.
// clientOrigin enables CORS for a browser client; empty disables it.
func NewApp(log logging.Logger, clientOrigin string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "shiptrack",
		ErrorHandler:          presenter.ErrorHandler(log),
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.AccessLog(log))
	if clientOrigin != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: clientOrigin,
			AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		}))
	}
	return app
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, auth *handlers.AuthHandler, health *handlers.HealthHandler, orders *handlers.OrderHandler, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)
	a.Post("/logout", auth.Logout)
	a.Get("/me", authMW, auth.Me)

	o := v1.Group("/orders", authMW)
	o.Post("/", orders.Create)
	o.Get("/", orders.List)
	o.Get("/:orderId", orders.Get)
	o.Patch("/:orderId", orders.Update)
	o.Delete("/:orderId", orders.Delete)
}
