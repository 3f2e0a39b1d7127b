package cart

import (
	"github.com/gofiber/fiber/v2"
	"github.com/timberhaus/sawmill-backend/internal/user"
)

// Handler delegates cart operations to the cart service.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart/items", h.addItem)
	app.Put("/api/v1/cart/items", h.setQuantity)
	app.Delete("/api/v1/cart/items", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
}

type cartItemRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity,omitempty"`
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(cartItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	// an omitted quantity means "one more"
	qty := payload.Quantity
	if qty == 0 {
		qty = 1
	}

	items, err := h.service.AddToCart(userID, payload.ProductID, qty)
	if err != nil {
		return h.cartError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(cartResponse(items))
}

func (h *Handler) setQuantity(c *fiber.Ctx) error {
	payload := new(cartItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	items, err := h.service.SetQuantity(userID, payload.ProductID, payload.Quantity)
	if err != nil {
		return h.cartError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(cartResponse(items))
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	payload := new(cartItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	items, err := h.service.RemoveItem(userID, payload.ProductID)
	if err != nil {
		return h.cartError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(cartResponse(items))
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	items, err := h.service.GetCart(userID)
	if err != nil {
		return h.cartError(c, err)
	}
	return c.JSON(cartResponse(items))
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.ClearCart(userID); err != nil {
		return h.cartError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) cartError(c *fiber.Ctx, err error) error {
	switch err {
	case ErrNotFound, user.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

func cartResponse(items []CartItem) fiber.Map {
	return fiber.Map{
		"items":    items,
		"subtotal": Subtotal(items),
	}
}
