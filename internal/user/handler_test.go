package user

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
	h.RegisterPublicRoutes(app)
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id}
				if r := c.Get("X-Role"); r != "" {
					claims["role"] = r
				}
				tok := &jwt.Token{Claims: claims}
				c.Locals("user", tok)
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestRegisterAndProfile(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	service := NewService(repo)
	handler := NewHandler(service)
	app := makeApp(handler)

	body := `{"email":"j@x.com","password":"secret","firstName":"J.","lastName":"Smith","phone":"0821234567"}`
	req := httptest.NewRequest("POST", "/api/v1/sign-up", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 for sign-up, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if strings.Contains(string(b), "secret") {
		t.Fatalf("password must not be echoed: %s", string(b))
	}
	if !strings.Contains(string(b), `"role":"customer"`) {
		t.Fatalf("expected customer role on sign-up, got %s", string(b))
	}

	// missing required fields rejected
	req2 := httptest.NewRequest("POST", "/api/v1/sign-up", strings.NewReader(`{"email":"a@b.c"}`))
	req2.Header.Set("Content-Type", "application/json")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for incomplete sign-up, got %d", res2.StatusCode)
	}

	// duplicate email rejected
	req3 := httptest.NewRequest("POST", "/api/v1/sign-up", strings.NewReader(body))
	req3.Header.Set("Content-Type", "application/json")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", res3.StatusCode)
	}

	// profile requires auth
	req4 := httptest.NewRequest("GET", "/api/v1/profile", nil)
	res4, _ := app.Test(req4)
	if res4.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res4.StatusCode)
	}

	req5 := httptest.NewRequest("GET", "/api/v1/profile", nil)
	req5.Header.Set("X-User-ID", "1")
	res5, _ := app.Test(req5)
	if res5.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for profile, got %d", res5.StatusCode)
	}
	b5, _ := io.ReadAll(res5.Body)
	if !strings.Contains(string(b5), `"email":"j@x.com"`) {
		t.Fatalf("unexpected profile body: %s", string(b5))
	}
}

func TestAuthenticate(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	service := NewService(repo)

	if _, err := service.Register(User{Email: "mill@saw.co", Password: "plank123", FirstName: "Mill", LastName: "Owner", Phone: "1"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := service.Authenticate("mill@saw.co", "plank123"); err != nil {
		t.Fatalf("expected successful authentication, got %v", err)
	}
	if _, err := service.Authenticate("mill@saw.co", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := service.Authenticate("nobody@saw.co", "plank123"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAdminRoutesForbiddenForCustomers(t *testing.T) {
	repo := NewInMemoryRepository([]User{{ID: 7, Email: "c@x.com", Role: RoleCustomer}})
	handler := NewHandler(NewService(repo))
	app := makeApp(handler)

	req := httptest.NewRequest("GET", "/api/v1/admin/users", nil)
	req.Header.Set("X-User-ID", "7")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for customer on admin route, got %d", res.StatusCode)
	}

	req2 := httptest.NewRequest("GET", "/api/v1/admin/users", nil)
	req2.Header.Set("X-User-ID", "7")
	req2.Header.Set("X-Role", "admin")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", res2.StatusCode)
	}
}
