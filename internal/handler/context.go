package handler

import (
	"errors"

	"go-carwash-inventory/internal/model"
	"go-carwash-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// getActor assembles the verified identity from the JWT context set by the
// auth middleware.
func getActor(c *fiber.Ctx) model.Actor {
	actor := model.Actor{}
	if v, ok := c.Locals("user_id").(string); ok {
		actor.ID = v
	}
	if v, ok := c.Locals("user_email").(string); ok {
		actor.Email = v
	}
	if v, ok := c.Locals("user_name").(string); ok {
		actor.Name = v
	}
	if v, ok := c.Locals("user_role").(string); ok {
		actor.RoleCode = v
	}
	if v, ok := c.Locals("user_privileges").([]string); ok {
		actor.Privileges = v
	}
	return actor
}

// parseUUID parses a path parameter into a UUID
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// errStatus maps service errors onto HTTP status codes.
func errStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return 404
	case errors.Is(err, service.ErrForbidden):
		return 403
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrInvalidAction),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrEmptyItems),
		errors.Is(err, service.ErrSKUExists):
		return 400
	default:
		return 500
	}
}

// fail writes the uniform error body.
func fail(c *fiber.Ctx, err error) error {
	return c.Status(errStatus(err)).JSON(fiber.Map{"error": err.Error()})
}
