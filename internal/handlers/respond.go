package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/logging"
	"storefront/internal/services"
)

var validate = validator.New()

type bodyError struct{ err error }

func (e *bodyError) Error() string { return "Invalid request body" }
func (e *bodyError) Unwrap() error { return e.err }

// bind parses the JSON body into v and validates its struct tags.
func bind(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return &bodyError{err: err}
	}
	return validate.Struct(v)
}

// bindOptional is bind for endpoints whose body may be omitted.
func bindOptional(c *fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return bind(c, v)
}

// statusOf maps service errors onto HTTP statuses.
func statusOf(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrDuplicateCategory),
		errors.Is(err, services.ErrAlreadyReviewed),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrUpstream):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// messageOf returns the client-facing text for err.
func messageOf(err error, status int) string {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return "Resource not found"
	case errors.Is(err, services.ErrDuplicateEmail):
		return "User already exists"
	case errors.Is(err, services.ErrDuplicateCategory):
		return "Category already exists"
	case errors.Is(err, services.ErrAlreadyReviewed):
		return "Product already reviewed"
	case errors.Is(err, services.ErrEmptyCart):
		return "No order items"
	case errors.Is(err, services.ErrInvalidCredentials):
		return "Invalid email or password"
	case status == fiber.StatusInternalServerError:
		return "Server Error"
	default:
		return err.Error()
	}
}

// respondError writes err as a JSON error body. It always returns nil so
// handlers can `return respondError(c, err)`.
func respondError(c *fiber.Ctx, err error) error {
	var be *bodyError
	if errors.As(err, &be) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": be.Error(),
			"error":   be.err.Error(),
		})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	status := statusOf(err)
	if status >= fiber.StatusInternalServerError {
		logging.FromContext(c.UserContext()).Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
	}
	return c.Status(status).JSON(fiber.Map{"message": messageOf(err, status)})
}

// notFound rewrites a NotFound error with a resource-specific message.
func notFound(c *fiber.Ctx, err error, what string) error {
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": what + " not found"})
	}
	return respondError(c, err)
}
