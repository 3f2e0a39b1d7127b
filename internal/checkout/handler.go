package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/timberhaus/sawmill-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/checkout", h.startCheckout)
	app.Get("/api/v1/checkout", h.getCheckout)
	app.Post("/api/v1/checkout/advance", h.advance)
	app.Post("/api/v1/checkout/back", h.back)
	app.Put("/api/v1/checkout/details", h.updateDetails)
	app.Post("/api/v1/checkout/confirm", h.confirm)
}

func (h *Handler) startCheckout(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	sess, err := h.service.Start(userID)
	if err != nil {
		return checkoutError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sess)
}

func (h *Handler) getCheckout(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	sess, err := h.service.Get(userID)
	if err != nil {
		return checkoutError(c, err)
	}
	return c.JSON(sess)
}

func (h *Handler) advance(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	sess, err := h.service.Advance(userID)
	if err != nil {
		return checkoutError(c, err)
	}
	return c.JSON(sess)
}

func (h *Handler) back(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	sess, err := h.service.Back(userID)
	if err != nil {
		return checkoutError(c, err)
	}
	return c.JSON(sess)
}

func (h *Handler) updateDetails(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(Details)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	sess, err := h.service.UpdateDetails(userID, *payload)
	if err != nil {
		return checkoutError(c, err)
	}
	return c.JSON(sess)
}

func (h *Handler) confirm(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	sess, err := h.service.Confirm(userID)
	if err != nil {
		return checkoutError(c, err)
	}
	return c.JSON(sess)
}

// checkoutError maps service errors onto HTTP statuses.
func checkoutError(c *fiber.Ctx, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message":  "order details are incomplete",
			"problems": ve.Problems,
		})
	}

	switch err {
	case ErrNoSession:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "no checkout session"})
	case ErrEmptyCart:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "cart is empty"})
	case ErrInvalidStep:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "operation not allowed at this step"})
	case ErrSubmissionInFlight:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "order submission already in progress"})
	case ErrAlreadyConfirmed:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "checkout already confirmed"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
