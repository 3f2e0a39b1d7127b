package gallery

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/timberhaus/sawmill-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/gallery", h.getGallery)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/admin/gallery", h.createItem)
	app.Delete("/api/v1/admin/gallery/:id<[0-9]+>", h.deleteItem)
}

func (h *Handler) getGallery(c *fiber.Ctx) error {
	limit := 10
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}
	// an empty table renders as an empty strip on the storefront
	return c.JSON(h.service.List(limit))
}

func (h *Handler) createItem(c *fiber.Ctx) error {
	if err := user.RequireAdmin(c); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	payload := new(Item)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ImageRef == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "imageRef is required"})
	}

	created, err := h.service.Create(*payload)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) deleteItem(c *fiber.Ctx) error {
	if err := user.RequireAdmin(c); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid gallery id"})
	}
	if err := h.service.Delete(id); err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "gallery item not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "gallery item deleted"})
}
