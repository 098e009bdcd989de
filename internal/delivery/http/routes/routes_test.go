package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"

	"biolink/internal/delivery/http/handler"
	"biolink/internal/usecase/slug"
)

type stubChecker struct{}

func (stubChecker) CheckAvailability(context.Context, string) (slug.Result, error) {
	return slug.ResultFor(slug.ReasonAvailable), nil
}

func TestRegistry_SlugCheckMountedTwice(t *testing.T) {
	app := fiber.New()
	NewRegistry(nil, handler.NewSlugHandler(stubChecker{}, nil), nil).Register(app)

	for _, path := range []string{
		LegacySlugCheckPath + "?slug=dra-perez",
		"/api/v1/slugs/availability?slug=dra-perez",
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		if err != nil {
			t.Fatalf("%s: request failed: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}

func TestRegistry_NilApp(t *testing.T) {
	NewRegistry(nil, nil, nil).Register(nil)
}
