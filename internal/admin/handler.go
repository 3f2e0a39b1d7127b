package admin

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/timberhaus/sawmill-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/admin/analytics/summary", h.getSummary)
	app.Get("/api/v1/admin/analytics/revenue", h.getRevenue)
	app.Get("/api/v1/admin/analytics/top-products", h.getTopProducts)
	app.Post("/api/v1/admin/products/price-adjust", h.adjustPrices)
}

func (h *Handler) getSummary(c *fiber.Ctx) error {
	if err := user.RequireAdmin(c); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	summary, err := h.service.Summary()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(summary)
}

func (h *Handler) getRevenue(c *fiber.Ctx) error {
	if err := user.RequireAdmin(c); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	days, _ := strconv.Atoi(c.Query("days", "30"))
	points, err := h.service.RevenueByDay(days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(points)
}

func (h *Handler) getTopProducts(c *fiber.Ctx) error {
	if err := user.RequireAdmin(c); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "5"))
	top, err := h.service.TopProducts(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(top)
}

type priceAdjustRequest struct {
	Category string          `json:"category"`
	Percent  decimal.Decimal `json:"percent"`
}

func (h *Handler) adjustPrices(c *fiber.Ctx) error {
	if err := user.RequireAdmin(c); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	payload := new(priceAdjustRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	changed, err := h.service.AdjustPricesByCategory(payload.Category, payload.Percent)
	if err != nil {
		switch err {
		case ErrUnknownCategory, ErrBadPercent:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"category": payload.Category, "updated": changed})
}
