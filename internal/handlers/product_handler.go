package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

// Pagination headers set on product listings.
const (
	HeaderTotalCount = "X-Total-Count"
	HeaderPage       = "X-Page"
	HeaderPages      = "X-Total-Pages"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth, admin fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/related/:id", h.HandleRelatedProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", auth, admin, h.HandleCreateProduct)
	productRoutes.Put("/:id", auth, admin, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", auth, admin, h.HandleDeleteProduct)
	productRoutes.Post("/:id/reviews", auth, h.HandleCreateReview)
}

// ProductRequest is the body of a product creation.
type ProductRequest struct {
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	LongDescription string   `json:"longDescription"`
	Images          []string `json:"images"`
	Price           float64  `json:"price" validate:"gte=0"`
	CountInStock    int      `json:"countInStock" validate:"gte=0"`
	Category        string   `json:"category" validate:"required"`
	Sizes           []string `json:"sizes"`
	Colors          []string `json:"colors"`
	Featured        bool     `json:"featured"`
}

// ProductPatchRequest is the body of a product update. Absent fields stay unchanged.
type ProductPatchRequest struct {
	Title           *string   `json:"title"`
	Description     *string   `json:"description"`
	LongDescription *string   `json:"longDescription"`
	Images          *[]string `json:"images"`
	Price           *float64  `json:"price" validate:"omitempty,gte=0"`
	CountInStock    *int      `json:"countInStock" validate:"omitempty,gte=0"`
	Category        *string   `json:"category"`
	Sizes           *[]string `json:"sizes"`
	Colors          *[]string `json:"colors"`
	Featured        *bool     `json:"featured"`
}

// ReviewRequest is the body of a product review.
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

func parseFilter(c *fiber.Ctx) (repositories.ProductFilter, error) {
	f := repositories.ProductFilter{
		Keyword:  c.Query("keyword"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", repositories.DefaultPageSize),
	}
	if v := c.Query("featured"); v != "" {
		featured := v == "true"
		f.Featured = &featured
	}
	for name, dst := range map[string]**float64{"minPrice": &f.MinPrice, "maxPrice": &f.MaxPrice} {
		v := c.Query(name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, fmt.Errorf("%w: %s must be a number", services.ErrValidation, name)
		}
		*dst = &n
	}
	return f, nil
}

// HandleListProducts returns a page of products. Pagination totals travel in headers.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	page, err := h.service.List(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(HeaderTotalCount, strconv.FormatInt(page.Total, 10))
	c.Set(HeaderPage, strconv.Itoa(page.Page))
	c.Set(HeaderPages, strconv.Itoa(page.Pages))
	return c.JSON(page.Products)
}

// HandleGetProduct retrieves a single product by ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return notFound(c, err, "Product")
	}
	return c.JSON(product)
}

// HandleRelatedProducts returns other products from the same category.
func (h *ProductHandler) HandleRelatedProducts(c *fiber.Ctx) error {
	related, err := h.service.Related(c.UserContext(), c.Params("id"))
	if err != nil {
		return notFound(c, err, "Product")
	}
	return c.JSON(related)
}

// HandleCreateProduct creates a product owned by the signed-in admin.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	product, err := h.service.Create(c.UserContext(), middleware.CurrentUser(c).ID, services.ProductInput{
		Title:           req.Title,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		Images:          req.Images,
		Price:           req.Price,
		CountInStock:    req.CountInStock,
		Category:        req.Category,
		Sizes:           req.Sizes,
		Colors:          req.Colors,
		Featured:        req.Featured,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct updates the provided fields of a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req ProductPatchRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	product, err := h.service.Update(c.UserContext(), c.Params("id"), services.ProductPatch{
		Title:           req.Title,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		Images:          req.Images,
		Price:           req.Price,
		CountInStock:    req.CountInStock,
		Category:        req.Category,
		Sizes:           req.Sizes,
		Colors:          req.Colors,
		Featured:        req.Featured,
	})
	if err != nil {
		return notFound(c, err, "Product")
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return notFound(c, err, "Product")
	}
	return c.JSON(fiber.Map{"message": "Product removed"})
}

// HandleCreateReview adds the signed-in user's review to a product.
func (h *ProductHandler) HandleCreateReview(c *fiber.Ctx) error {
	var req ReviewRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	product, err := h.service.AddReview(c.UserContext(), c.Params("id"), middleware.CurrentUser(c), req.Rating, req.Comment)
	if err != nil {
		return notFound(c, err, "Product")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Review added",
		"review":  product.Reviews[len(product.Reviews)-1],
	})
}
