package order

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/timberhaus/sawmill-backend/internal/product"
	"github.com/timberhaus/sawmill-backend/internal/user"
)

// Handler exposes order tracking for customers and fulfilment for admins.
// Order creation has no route of its own: orders are only born from a
// confirmed checkout (see internal/checkout).
type Handler struct {
	service        *Service
	productService product.ServiceInterface
}

func NewHandler(s *Service, ps product.ServiceInterface) *Handler {
	return &Handler{service: s, productService: ps}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/orders", h.getOrders)
	app.Get("/api/v1/orders/:id<[0-9]+>", h.getOrder)
	app.Get("/api/v1/admin/orders", h.getAllOrders)
	app.Patch("/api/v1/admin/orders/:id<[0-9]+>/status", h.updateStatus)
}

// getOrders returns all orders belonging to the currently authenticated
// user, newest first, with product details attached for display.
func (h *Handler) getOrders(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	h.enrich(orders)
	return c.JSON(orders)
}

// getOrder backs the "track order" view. Customers only see their own
// orders; admins see any.
func (h *Handler) getOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	ord, err := h.service.GetByID(orderID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
	}
	if ord.UserID != userID && user.RequireAdmin(c) != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
	}

	orders := []Order{ord}
	h.enrich(orders)
	return c.JSON(orders[0])
}

func (h *Handler) getAllOrders(c *fiber.Ctx) error {
	if err := user.RequireAdmin(c); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	orders, err := h.service.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	if err := user.RequireAdmin(c); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	payload := new(statusUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.UpdateStatus(orderID, payload.Status)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case ErrInvalidTransition:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "invalid status transition"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(updated)
}

// enrich attaches product summaries to order items in place.
func (h *Handler) enrich(orders []Order) {
	if h.productService == nil || len(orders) == 0 {
		return
	}

	idSet := map[int]struct{}{}
	for _, ord := range orders {
		for _, item := range ord.Items {
			idSet[item.ProductID] = struct{}{}
		}
	}
	ids := make([]int, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return
	}

	prods, err := h.productService.ListByIDs(ids)
	if err != nil {
		return
	}
	prodMap := map[string]product.Summary{}
	for _, p := range prods {
		prodMap[strconv.Itoa(p.ID)] = product.Summary{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			ImageRef:  p.ImageRef,
			Species:   p.Species,
		}
	}

	for i := range orders {
		orders[i].Products = map[string]product.Summary{}
		for _, item := range orders[i].Items {
			key := strconv.Itoa(item.ProductID)
			if p, ok := prodMap[key]; ok {
				orders[i].Products[key] = p
			}
		}
	}
}
