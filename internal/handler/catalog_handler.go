package handler

import (
	"errors"

	"go-isitvegan-api/internal/apperror"
	"go-isitvegan-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// Helpers to pull the caller identity from the JWT context (set by RequireAuth)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system" // shouldn't happen on protected routes
	}
	return userID.(string)
}

func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return "Unknown"
	}
	return userName.(string)
}

func getUserEmail(c *fiber.Ctx) string {
	userEmail := c.Locals("user_email")
	if userEmail == nil {
		return ""
	}
	return userEmail.(string)
}

func actorFromCtx(c *fiber.Ctx) service.Actor {
	return service.Actor{
		ID:    getUserID(c),
		Email: getUserEmail(c),
		Name:  getUserName(c),
	}
}

// respondError maps the outcome taxonomy to HTTP. Validation rejections use
// the bare {error} shape; everything after validation carries success:false.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "An internal error occurred"})
	}

	switch {
	case errors.Is(err, apperror.ErrValidation):
		return c.Status(400).JSON(fiber.Map{"error": appErr.Message})
	case errors.Is(err, apperror.ErrAuthRequired), errors.Is(err, apperror.ErrAuthFailed):
		return c.Status(401).JSON(fiber.Map{"error": appErr.Message})
	case errors.Is(err, apperror.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"success": false, "error": appErr.Message})
	default:
		return c.Status(500).JSON(fiber.Map{"success": false, "error": appErr.Message})
	}
}

func (h *CatalogHandler) UpdateProductImage(c *fiber.Ctx) error {
	var req service.UpdateImageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateProductImage(&req, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "updatedProduct": updated})
}

func (h *CatalogHandler) CreateProductFromPhoto(c *fiber.Ctx) error {
	var req service.CreateFromPhotoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.CreateProductFromPhoto(&req, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"product":     result.Product,
		"recognition": result.Recognition,
	})
}

func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	code := c.Params("code")

	product, err := h.service.LookupProduct(code)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "product": product})
}

func (h *CatalogHandler) GetIngredient(c *fiber.Ctx) error {
	title := c.Params("title")

	ingredient, err := h.service.LookupIngredient(title)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "ingredient": ingredient})
}

func (h *CatalogHandler) GetCatalogStats(c *fiber.Ctx) error {
	stats, err := h.service.GetCatalogStats()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(stats)
}
