package cart

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

func makeAppWithCartHandler(cHandler *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id}
				tok := &jwt.Token{Claims: claims}
				c.Locals("user", tok)
			}
		}
		return c.Next()
	})
	cHandler.RegisterProtectedRoutes(app)
	return app
}

func testCatalog() map[int]product.Summary {
	return map[int]product.Summary{
		1: {ProductID: 1, Name: "Pine Plank", UnitPrice: decimal.NewFromInt(150)},
		3: {ProductID: 3, Name: "Oak Beam", UnitPrice: decimal.RequireFromString("890.50")},
	}
}

func TestCartRoutes_Basic(t *testing.T) {
	seed := []user.User{{ID: 42, Cart: map[int]int{1: 1}}}
	repo := NewInMemoryRepository(seed, testCatalog())
	service := NewService(repo)
	handler := NewHandler(service)
	app := makeAppWithCartHandler(handler)

	// unauthorized access should be blocked
	req := httptest.NewRequest("GET", "/api/v1/cart", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated GET, got %d", res.StatusCode)
	}

	// authorized GET should succeed and return items plus subtotal
	req2 := httptest.NewRequest("GET", "/api/v1/cart", nil)
	req2.Header.Set("X-User-ID", "42")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for authenticated GET, got %d", res2.StatusCode)
	}
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), "subtotal") {
		t.Fatalf("response missing subtotal: %s", string(b2))
	}

	// add product 3 with explicit quantity 2
	req3 := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"productId":3,"quantity":2}`))
	req3.Header.Set("Content-Type", "application/json")
	req3.Header.Set("X-User-ID", "42")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for adding to cart, got %d", res3.StatusCode)
	}
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), `"quantity":2`) {
		t.Fatalf("expected quantity 2 after add, got %s", string(b3))
	}

	// add same product again, should increment
	req4 := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"productId":3}`))
	req4.Header.Set("Content-Type", "application/json")
	req4.Header.Set("X-User-ID", "42")
	res4, _ := app.Test(req4)
	b4, _ := io.ReadAll(res4.Body)
	if !strings.Contains(string(b4), `"quantity":3`) {
		t.Fatalf("expected quantity 3 after second add, got %s", string(b4))
	}

	// pin exact quantity via PUT
	req5 := httptest.NewRequest("PUT", "/api/v1/cart/items", strings.NewReader(`{"productId":3,"quantity":1}`))
	req5.Header.Set("Content-Type", "application/json")
	req5.Header.Set("X-User-ID", "42")
	res5, _ := app.Test(req5)
	b5, _ := io.ReadAll(res5.Body)
	if !strings.Contains(string(b5), `"quantity":1`) {
		t.Fatalf("expected quantity 1 after set, got %s", string(b5))
	}

	// setting quantity below 1 removes the line
	req6 := httptest.NewRequest("PUT", "/api/v1/cart/items", strings.NewReader(`{"productId":3,"quantity":0}`))
	req6.Header.Set("Content-Type", "application/json")
	req6.Header.Set("X-User-ID", "42")
	res6, _ := app.Test(req6)
	b6, _ := io.ReadAll(res6.Body)
	if strings.Contains(string(b6), "Oak Beam") {
		t.Fatalf("expected product 3 removed after quantity zero, got %s", string(b6))
	}

	// clear the cart
	req7 := httptest.NewRequest("DELETE", "/api/v1/cart", nil)
	req7.Header.Set("X-User-ID", "42")
	res7, _ := app.Test(req7)
	if res7.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204 for clear cart, got %d", res7.StatusCode)
	}
	req8 := httptest.NewRequest("GET", "/api/v1/cart", nil)
	req8.Header.Set("X-User-ID", "42")
	res8, _ := app.Test(req8)
	b8, _ := io.ReadAll(res8.Body)
	if strings.Contains(string(b8), "Pine Plank") {
		t.Fatalf("expected empty cart after clear, got %s", string(b8))
	}
}

func TestSubtotal(t *testing.T) {
	items := []CartItem{
		{Summary: product.Summary{ProductID: 1, UnitPrice: decimal.NewFromInt(150)}, Quantity: 2},
		{Summary: product.Summary{ProductID: 3, UnitPrice: decimal.RequireFromString("890.50")}, Quantity: 1},
	}

	want := decimal.RequireFromString("1190.50")
	if got := Subtotal(items); !got.Equal(want) {
		t.Fatalf("expected subtotal %s, got %s", want, got)
	}

	if got := Subtotal(nil); !got.Equal(decimal.Zero) {
		t.Fatalf("expected zero subtotal for empty cart, got %s", got)
	}
}

func TestZeroQuantityNeverPersisted(t *testing.T) {
	repo := NewInMemoryRepository([]user.User{{ID: 1}}, testCatalog())
	service := NewService(repo)

	if _, err := service.AddToCart(1, 1, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	items, err := service.AddToCart(1, 1, -2)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart after decrement to zero, got %+v", items)
	}
}

func TestItemsReturnedInProductOrder(t *testing.T) {
	repo := NewInMemoryRepository([]user.User{{ID: 1, Cart: map[int]int{3: 1, 1: 2, 2: 4}}}, testCatalog())
	service := NewService(repo)

	for i := 0; i < 10; i++ {
		items, err := service.GetCart(1)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if len(items) != 3 {
			t.Fatalf("expected 3 items, got %d", len(items))
		}
		for j := 1; j < len(items); j++ {
			if items[j-1].ProductID >= items[j].ProductID {
				t.Fatalf("expected items sorted by product id, got %+v", items)
			}
		}
	}
}
