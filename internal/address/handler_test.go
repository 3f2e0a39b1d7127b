package address

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func makeApp(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": id}})
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestAddressCRUDScopedToUser(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app := makeApp(NewHandler(NewService(repo)))

	// create
	req := httptest.NewRequest("POST", "/api/v1/addresses",
		strings.NewReader(`{"label":"Site office","line":"12 Mill Road","city":"Knysna","postalCode":"6570"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	// incomplete payload is rejected
	req = httptest.NewRequest("POST", "/api/v1/addresses", strings.NewReader(`{"line":"12 Mill Road"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for incomplete address, got %d", res.StatusCode)
	}

	// another user sees nothing
	req = httptest.NewRequest("GET", "/api/v1/addresses", nil)
	req.Header.Set("X-User-ID", "7")
	res, _ = app.Test(req)
	body, _ := io.ReadAll(res.Body)
	if strings.Contains(string(body), "Mill Road") {
		t.Fatalf("expected empty list for other user, got %s", string(body))
	}

	// nor can they delete it
	req = httptest.NewRequest("DELETE", "/api/v1/addresses/1", nil)
	req.Header.Set("X-User-ID", "7")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for other user's delete, got %d", res.StatusCode)
	}

	// update and delete by the owner
	req = httptest.NewRequest("PUT", "/api/v1/addresses/1",
		strings.NewReader(`{"label":"Yard","line":"1 Sawdust Lane","city":"Knysna","postalCode":"6570"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	body, _ = io.ReadAll(res.Body)
	if !strings.Contains(string(body), "Sawdust Lane") {
		t.Fatalf("expected updated line, got %s", string(body))
	}

	req = httptest.NewRequest("DELETE", "/api/v1/addresses/1", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
}
