package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/services"
)

// CategoryHandler handles category-related HTTP requests.
type CategoryHandler struct {
	service *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// RegisterRoutes registers the category routes. Writes are admin-only.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, auth, admin fiber.Handler) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleListCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategory)
	categoryRoutes.Post("/", auth, admin, h.HandleCreateCategory)
	categoryRoutes.Put("/:id", auth, admin, h.HandleUpdateCategory)
	categoryRoutes.Delete("/:id", auth, admin, h.HandleDeleteCategory)
}

// CategoryRequest is the body of a category creation.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// CategoryPatchRequest is the body of a category update. Absent fields stay unchanged.
type CategoryPatchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

// HandleListCategories retrieves all categories.
func (h *CategoryHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// HandleGetCategory retrieves a single category by ID.
func (h *CategoryHandler) HandleGetCategory(c *fiber.Ctx) error {
	category, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return notFound(c, err, "Category")
	}
	return c.JSON(category)
}

// HandleCreateCategory creates a new category.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	category, err := h.service.Create(c.UserContext(), req.Name, req.Description, req.Image)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdateCategory updates the provided fields of a category.
func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	var req CategoryPatchRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	category, err := h.service.Update(c.UserContext(), c.Params("id"), services.CategoryPatch{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		return notFound(c, err, "Category")
	}
	return c.JSON(category)
}

// HandleDeleteCategory deletes a category by ID.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return notFound(c, err, "Category")
	}
	return c.JSON(fiber.Map{"message": "Category removed"})
}
