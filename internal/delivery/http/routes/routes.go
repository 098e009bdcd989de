package routes

import (
	"github.com/gofiber/fiber/v3"

	"biolink/internal/delivery/http/handler"
)

// LegacySlugCheckPath is the public path the signup form calls.
const LegacySlugCheckPath = "/check-slug-availability"

type Registry struct {
	health   *handler.HealthHandler
	slugs    *handler.SlugHandler
	profiles *handler.ProfileHandler
}

func NewRegistry(health *handler.HealthHandler, slugs *handler.SlugHandler, profiles *handler.ProfileHandler) *Registry {
	return &Registry{health: health, slugs: slugs, profiles: profiles}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerPublic(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerPublic(app *fiber.App) {
	if r.slugs != nil {
		app.Get(LegacySlugCheckPath, r.slugs.CheckAvailability)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.slugs, r.profiles)
}
