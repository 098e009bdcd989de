package v1

import (
	"github.com/gofiber/fiber/v3"

	"biolink/internal/delivery/http/handler"
)

func RegisterSlugs(r fiber.Router, slugs *handler.SlugHandler) {
	if r == nil || slugs == nil {
		return
	}
	slugs.RegisterRoutes(r)
}

func RegisterProfiles(r fiber.Router, profiles *handler.ProfileHandler) {
	if r == nil || profiles == nil {
		return
	}
	profiles.RegisterRoutes(r)
}
