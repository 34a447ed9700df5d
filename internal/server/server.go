// Package server assembles the HTTP application: middleware, API routes and
// the optional static front end.
package server

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"storefront/internal/handlers"
	"storefront/internal/logging"
	"storefront/internal/middleware"
	"storefront/internal/services"
)

// Services are the application services the routes delegate to.
type Services struct {
	Auth       *services.AuthService
	Products   *services.ProductService
	Categories *services.CategoryService
	Orders     *services.OrderService
	Dashboard  *services.DashboardService
	Uploads    *services.UploadService
}

// Options tune the HTTP layer.
type Options struct {
	Logger    *slog.Logger
	StaticDir string // built front end served for non-API paths when set
	AccessLog bool
}

// New builds the fiber app with every route mounted under /api.
func New(svc Services, opts Options) *fiber.App {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	app := fiber.New(fiber.Config{
		AppName:      "storefront",
		BodyLimit:    20 * 1024 * 1024,
		ErrorHandler: errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(cors.New())
	app.Use(func(c *fiber.Ctx) error {
		reqLog := log.With("request_id", c.Locals(requestid.ConfigDefault.ContextKey))
		c.SetUserContext(logging.IntoContext(c.UserContext(), reqLog))
		return c.Next()
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	auth := middleware.AuthRequired(svc.Auth)
	admin := middleware.AdminRequired()

	api := app.Group("/api")
	handlers.NewAuthHandler(svc.Auth).RegisterRoutes(api, auth, admin)
	handlers.NewProductHandler(svc.Products).RegisterRoutes(api, auth, admin)
	handlers.NewCategoryHandler(svc.Categories).RegisterRoutes(api, auth, admin)
	handlers.NewOrderHandler(svc.Orders).RegisterRoutes(api, auth, admin)
	handlers.NewUploadHandler(svc.Uploads).RegisterRoutes(api, auth, admin)
	handlers.NewAdminHandler(svc.Dashboard, svc.Orders).RegisterRoutes(api, auth, admin)

	if opts.StaticDir != "" {
		app.Static("/", opts.StaticDir)
		app.Get("/*", func(c *fiber.Ctx) error {
			return c.SendFile(opts.StaticDir + "/index.html")
		})
	}

	return app
}

func errorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Server Error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code, message = fe.Code, fe.Message
		} else {
			log.Error("unhandled error", "path", c.Path(), "error", err)
		}
		return c.Status(code).JSON(fiber.Map{"message": message})
	}
}
