package handlers

import (
	"errors"
	"log"

	"storefront/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// MessageInternalError is the only detail a client sees for unexpected failures.
const MessageInternalError = "Internal Server Error"

// parseBody decodes a JSON body into out. An empty body leaves out untouched.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(out)
}

func invalidBody(c *fiber.Ctx, err error) error {
	log.Printf("Error parsing request body for %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   "Invalid request body",
	})
}

// validationFailed answers a request that did not pass validation. Errors
// that are not validation errors become a 500.
func validationFailed(c *fiber.Ctx, err error) error {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return internalError(c, "validate request", err)
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   verr.Error(),
		"issues":  verr.Issues,
	})
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid ID",
	})
}

func productNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "Product not found",
	})
}

func internalError(c *fiber.Ctx, operation string, err error) error {
	log.Printf("Error during %s: %v", operation, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": MessageInternalError,
	})
}
