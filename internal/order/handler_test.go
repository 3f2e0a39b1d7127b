package order

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
)

func makeApp(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id}
				if r := c.Get("X-Role"); r != "" {
					claims["role"] = r
				}
				c.Locals("user", &jwt.Token{Claims: claims})
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func seedOrder(userID int) Order {
	return Order{
		UserID:          userID,
		Items:           []Item{{ProductID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(150)}},
		Subtotal:        decimal.NewFromInt(300),
		Discount:        decimal.Zero,
		Total:           decimal.NewFromInt(300),
		CustomerName:    "J. Smith",
		CustomerEmail:   "j@x.com",
		PhoneNumber:     "0821234567",
		DeliveryMethod:  "pickup",
		ShippingAddress: PickupAddress,
	}
}

func TestOrderOwnership(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	service := NewService(repo)
	created, err := service.Create(seedOrder(42))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	handler := NewHandler(service, nil)
	app := makeApp(handler)

	// owner sees the order
	req := httptest.NewRequest("GET", "/api/v1/orders/"+strconv.Itoa(created.OrderID), nil)
	req.Header.Set("X-User-ID", "42")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for owner, got %d", res.StatusCode)
	}

	// another customer does not
	req2 := httptest.NewRequest("GET", "/api/v1/orders/"+strconv.Itoa(created.OrderID), nil)
	req2.Header.Set("X-User-ID", "7")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for stranger, got %d", res2.StatusCode)
	}

	// but an admin does
	req3 := httptest.NewRequest("GET", "/api/v1/orders/"+strconv.Itoa(created.OrderID), nil)
	req3.Header.Set("X-User-ID", "7")
	req3.Header.Set("X-Role", "admin")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", res3.StatusCode)
	}

	// list returns only own orders
	req4 := httptest.NewRequest("GET", "/api/v1/orders", nil)
	req4.Header.Set("X-User-ID", "7")
	res4, _ := app.Test(req4)
	b4, _ := io.ReadAll(res4.Body)
	if strings.Contains(string(b4), "J. Smith") {
		t.Fatalf("stranger saw someone else's order: %s", string(b4))
	}
}

func TestCreateValidatesTotals(t *testing.T) {
	service := NewService(NewInMemoryRepository(nil))

	if _, err := service.Create(Order{}); err != ErrEmptyOrder {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}

	bad := seedOrder(1)
	bad.Total = decimal.NewFromInt(299)
	if _, err := service.Create(bad); err != ErrTotalsMismatch {
		t.Fatalf("expected ErrTotalsMismatch for wrong total, got %v", err)
	}

	bad2 := seedOrder(1)
	bad2.Subtotal = decimal.NewFromInt(450)
	bad2.Total = decimal.NewFromInt(450)
	if _, err := service.Create(bad2); err != ErrTotalsMismatch {
		t.Fatalf("expected ErrTotalsMismatch for wrong subtotal, got %v", err)
	}
}

func TestStatusTransitions(t *testing.T) {
	service := NewService(NewInMemoryRepository(nil))
	created, err := service.Create(seedOrder(1))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Status != StatusPending {
		t.Fatalf("expected new order to be pending, got %s", created.Status)
	}

	// skipping ahead is rejected
	if _, err := service.UpdateStatus(created.OrderID, StatusCompleted); err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition for pending -> completed, got %v", err)
	}

	for _, next := range []string{StatusProcessing, StatusShipped, StatusCompleted} {
		if _, err := service.UpdateStatus(created.OrderID, next); err != nil {
			t.Fatalf("transition to %s failed: %v", next, err)
		}
	}

	// terminal orders stay put
	if _, err := service.UpdateStatus(created.OrderID, StatusPending); err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition after completion, got %v", err)
	}
}
