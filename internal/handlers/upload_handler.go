package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/services"
)

// UploadHandler handles image upload requests.
type UploadHandler struct {
	service *services.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(service *services.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// RegisterRoutes registers the admin-only upload routes.
func (h *UploadHandler) RegisterRoutes(router fiber.Router, auth, admin fiber.Handler) {
	uploadRoutes := router.Group("/upload", auth, admin)
	uploadRoutes.Post("/", h.HandleUpload)
	uploadRoutes.Post("/multiple", h.HandleUploadMultiple)
}

func uploadError(c *fiber.Ctx, err error) error {
	status := statusOf(err)
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}

func openUpload(fh *multipart.FileHeader) (services.UploadFile, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return services.UploadFile{}, nil, fmt.Errorf("%w: could not read %s", services.ErrValidation, fh.Filename)
	}
	return services.UploadFile{Name: fh.Filename, Data: f}, func() { f.Close() }, nil
}

// HandleUpload stores the multipart field "image".
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "No file uploaded"})
	}
	file, closeFile, err := openUpload(fh)
	if err != nil {
		return uploadError(c, err)
	}
	defer closeFile()

	url, err := h.service.UploadOne(c.UserContext(), file)
	if err != nil {
		return uploadError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "imageUrl": url})
}

// HandleUploadMultiple stores up to five files from the multipart field "images".
func (h *UploadHandler) HandleUploadMultiple(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["images"]) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "No files uploaded"})
	}
	headers := form.File["images"]
	if len(headers) > services.MaxUploadBatch {
		return uploadError(c, fmt.Errorf("%w: at most %d files per upload", services.ErrValidation, services.MaxUploadBatch))
	}

	files := make([]services.UploadFile, 0, len(headers))
	for _, fh := range headers {
		file, closeFile, err := openUpload(fh)
		if err != nil {
			return uploadError(c, err)
		}
		defer closeFile()
		files = append(files, file)
	}

	urls, err := h.service.UploadMany(c.UserContext(), files)
	if err != nil {
		if !errors.Is(err, services.ErrUpstream) && !errors.Is(err, services.ErrValidation) {
			return respondError(c, err)
		}
		return uploadError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "imageUrls": urls})
}
