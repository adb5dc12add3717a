package handler

import (
	"go-carwash-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CarwashHandler struct {
	service service.CarwashService
}

func NewCarwashHandler(s service.CarwashService) *CarwashHandler {
	return &CarwashHandler{service: s}
}

// CreateService adds a carwash service with its consumption list
// POST /api/v1/services
func (h *CarwashHandler) CreateService(c *fiber.Ctx) error {
	var req service.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	svc, err := h.service.CreateService(c.Context(), &req, getActor(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Service created", "data": svc})
}

// GetServices lists all carwash services
// GET /api/v1/services
func (h *CarwashHandler) GetServices(c *fiber.Ctx) error {
	services, err := h.service.GetAllServices()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(services)
}

// GetService returns a single carwash service by ID
// GET /api/v1/services/:id
func (h *CarwashHandler) GetService(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid service ID"})
	}

	svc, err := h.service.GetServiceByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(svc)
}

// UpdateService rewrites a carwash service and its consumption list
// PUT /api/v1/services/:id
func (h *CarwashHandler) UpdateService(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid service ID"})
	}

	var req service.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	svc, err := h.service.UpdateService(c.Context(), id, &req, getActor(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Service updated", "data": svc})
}

// DeleteService soft-deletes a carwash service
// DELETE /api/v1/services/:id
func (h *CarwashHandler) DeleteService(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid service ID"})
	}

	if err := h.service.DeleteService(c.Context(), id, getActor(c)); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Service deleted"})
}

// PerformService consumes stock for one execution of the service
// POST /api/v1/services/:id/perform
func (h *CarwashHandler) PerformService(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid service ID"})
	}

	entries, err := h.service.PerformService(c.Context(), id, getActor(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Service performed", "data": entries})
}
