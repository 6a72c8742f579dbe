package handlers

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/service"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// FilesHandler exposes the admin file manager. Every route requires ADMIN.
type FilesHandler struct {
	files *service.FileService
}

// NewFilesHandler constructs handler.
func NewFilesHandler(files *service.FileService) *FilesHandler {
	return &FilesHandler{files: files}
}

// List handles GET /files.
func (h *FilesHandler) List(c *fiber.Ctx) error {
	files, err := h.files.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"files": files}})
}

// Get handles GET /files/:id.
func (h *FilesHandler) Get(c *fiber.Ctx) error {
	file, err := h.files.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"file": file}})
}

// Upload handles POST /files with a multipart "file" field.
func (h *FilesHandler) Upload(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	header, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("file field required", nil)
	}

	src, err := header.Open()
	if err != nil {
		return apperrors.MapError(err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return apperrors.MapError(err)
	}

	file, err := h.files.Upload(c.UserContext(), principal.SubjectID, header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"file": file}})
}

// Delete handles DELETE /files/:id.
func (h *FilesHandler) Delete(c *fiber.Ctx) error {
	if err := h.files.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}
