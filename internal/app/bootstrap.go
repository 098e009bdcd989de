package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"biolink/internal/config"
	"biolink/internal/database/schema"
	"biolink/internal/delivery/http/handler"
	"biolink/internal/delivery/http/middleware"
	"biolink/internal/delivery/http/routes"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:      c.Config.App.AppName,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container, checks the profiles schema and wires the
// HTTP app. The returned cleanup releases the database and cache.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := schema.VerifyProfiles(ctx, c.DB); err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	// Access log wraps the error middleware so it sees the final status.
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Cache),
		handler.NewSlugHandler(c.Slugs, c.Logger),
		handler.NewProfileHandler(c.Profiles, c.Slugs.Window()),
	).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
