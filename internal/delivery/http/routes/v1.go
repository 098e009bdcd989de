package routes

import (
	"github.com/gofiber/fiber/v3"

	"biolink/internal/delivery/http/handler"
	v1 "biolink/internal/delivery/http/routes/v1"
)

func RegisterV1(r fiber.Router, slugs *handler.SlugHandler, profiles *handler.ProfileHandler) {
	if r == nil {
		return
	}

	v1.Register(r, slugs, profiles)
}
