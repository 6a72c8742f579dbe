package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/api/dto"
	"github.com/spec-kit/portfolio-service/internal/service"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// TaxonomyHandler exposes category and tag endpoints.
// Reads are public; creation sits behind the admin gate on the router.
type TaxonomyHandler struct {
	content *service.ContentService
}

// NewTaxonomyHandler constructs handler.
func NewTaxonomyHandler(content *service.ContentService) *TaxonomyHandler {
	return &TaxonomyHandler{content: content}
}

// ListCategories handles GET /categories.
func (h *TaxonomyHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.content.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"categories": categories}})
}

// CreateCategory handles POST /categories.
func (h *TaxonomyHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CategoryCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	category, err := h.content.CreateCategory(c.UserContext(), req.Name, req.Slug)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"category": category}})
}

// ListTags handles GET /tags.
func (h *TaxonomyHandler) ListTags(c *fiber.Ctx) error {
	tags, err := h.content.ListTags(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"tags": tags}})
}

// CreateTag handles POST /tags.
func (h *TaxonomyHandler) CreateTag(c *fiber.Ctx) error {
	var req dto.TagCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	tag, err := h.content.CreateTag(c.UserContext(), req.Name, req.Slug)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"tag": tag}})
}
