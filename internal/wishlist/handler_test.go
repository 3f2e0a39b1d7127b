package wishlist

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
	"github.com/timberhaus/sawmill-backend/internal/product"
	"github.com/timberhaus/sawmill-backend/internal/user"
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

func TestWishlistRoutes(t *testing.T) {
	catalog := map[int]product.Summary{
		1: {ProductID: 1, Name: "Pine Plank", UnitPrice: decimal.NewFromInt(150)},
	}
	repo := NewInMemoryRepository([]user.User{{ID: 42}}, catalog)
	app := makeApp(NewHandler(NewService(repo)))

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/wishlist", nil))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}

	// add
	req := httptest.NewRequest("POST", "/api/v1/wishlist", strings.NewReader(`{"productId":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	// adding twice conflicts
	req = httptest.NewRequest("POST", "/api/v1/wishlist", strings.NewReader(`{"productId":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 on duplicate, got %d", res.StatusCode)
	}

	// listing carries product details
	req = httptest.NewRequest("GET", "/api/v1/wishlist", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	body, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(body), "Pine Plank") {
		t.Fatalf("expected product details in wishlist, got %s", string(body))
	}

	// remove
	req = httptest.NewRequest("DELETE", "/api/v1/wishlist", strings.NewReader(`{"productId":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	// removing again is a bad request
	req = httptest.NewRequest("DELETE", "/api/v1/wishlist", strings.NewReader(`{"productId":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 on double remove, got %d", res.StatusCode)
	}
}
