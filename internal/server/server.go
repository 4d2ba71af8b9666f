// Package server assembles the fiber application: middleware, error
// handling and the versioned API routes.
package server

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"storefront/internal/config"
	"storefront/internal/docs"
	"storefront/internal/handlers"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// BasePath prefixes every API route.
const BasePath = "/api/v1"

// Dependencies are the collaborators the application is built from.
// Publisher may be nil.
type Dependencies struct {
	Config       *config.Config
	DB           *gorm.DB
	AuthProvider services.AuthProvider
	Publisher    services.EventPublisher
}

// New builds the fiber application.
func New(deps Dependencies) (*fiber.App, error) {
	if deps.Config == nil || deps.DB == nil || deps.AuthProvider == nil {
		return nil, errors.New("server: config, database and auth provider are required")
	}

	document, err := docs.JSON(deps.Config.PublicURL)
	if err != nil {
		return nil, fmt.Errorf("build openapi document: %w", err)
	}

	validator := validation.New()
	productRepo := repositories.NewGORMProductRepository(deps.DB)
	productService := services.NewProductService(productRepo, deps.Publisher)
	authService := services.NewAuthService(deps.AuthProvider)

	productHandler := handlers.NewProductHandler(productService, validator)
	authHandler := handlers.NewAuthHandler(authService, validator)
	docsHandler := handlers.NewDocsHandler(document)

	app := fiber.New(fiber.Config{
		AppName:      "storefront",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(helmet.New(helmet.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == BasePath+"/docs"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.TrimRight(deps.Config.FrontendURL, "/"),
		AllowHeaders:     "Content-Type, Authorization",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH",
		AllowCredentials: true,
		MaxAge:           600,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	apiV1 := app.Group(BasePath)
	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterRoutes(apiV1)
	docsHandler.RegisterRoutes(apiV1)

	return app, nil
}

// errorHandler keeps the status of fiber errors (unknown route, wrong method)
// and hides everything else behind a generic 500.
func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"error": fiberErr.Message,
		})
	}
	log.Printf("Unhandled error for %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": handlers.MessageInternalError,
	})
}
