package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/api/dto"
	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/service"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// PostsHandler exposes blog post endpoints.
type PostsHandler struct {
	content *service.ContentService
}

// NewPostsHandler constructs handler.
func NewPostsHandler(content *service.ContentService) *PostsHandler {
	return &PostsHandler{content: content}
}

// List handles GET /posts. Published posts only.
func (h *PostsHandler) List(c *fiber.Ctx) error {
	posts, err := h.content.ListPosts(c.UserContext(), false)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"posts": posts}})
}

// ListAll handles GET /admin/posts. Drafts included.
func (h *PostsHandler) ListAll(c *fiber.Ctx) error {
	posts, err := h.content.ListPosts(c.UserContext(), true)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"posts": posts}})
}

// Get handles GET /posts/:slug. Counts a view on published posts.
func (h *PostsHandler) Get(c *fiber.Ctx) error {
	post, err := h.content.GetPost(c.UserContext(), c.Params("slug"), false)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"post": post}})
}

// Create handles POST /posts.
func (h *PostsHandler) Create(c *fiber.Ctx) error {
	var req dto.PostCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	post, err := h.content.CreatePost(c.UserContext(), &domain.Post{
		Title:      req.Title,
		Slug:       req.Slug,
		Summary:    req.Summary,
		Body:       req.Body,
		CategoryID: req.CategoryID,
		AuthorID:   principal.SubjectID,
		Status:     domain.PostStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"post": post}})
}

// Update handles PUT /posts/:id.
func (h *PostsHandler) Update(c *fiber.Ctx) error {
	var req dto.PostUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	post, err := h.content.UpdatePost(c.UserContext(), &domain.Post{
		ID:         c.Params("id"),
		Title:      req.Title,
		Slug:       req.Slug,
		Summary:    req.Summary,
		Body:       req.Body,
		CategoryID: req.CategoryID,
		Status:     domain.PostStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"post": post}})
}

// Delete handles DELETE /posts/:id.
func (h *PostsHandler) Delete(c *fiber.Ctx) error {
	if err := h.content.DeletePost(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}
