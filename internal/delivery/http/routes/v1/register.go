package v1

import (
	"github.com/gofiber/fiber/v3"

	"biolink/internal/delivery/http/handler"
)

func Register(r fiber.Router, slugs *handler.SlugHandler, profiles *handler.ProfileHandler) {
	if r == nil {
		return
	}

	RegisterSlugs(r.Group("/slugs"), slugs)
	RegisterProfiles(r.Group("/profiles"), profiles)
}
