package handler

import (
	"go-carwash-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// GetLogs lists ledger entries, optionally filtered by product
// GET /api/v1/inventory-logs?product_id=...
func (h *InventoryHandler) GetLogs(c *fiber.Ctx) error {
	if productParam := c.Query("product_id"); productParam != "" {
		productID, err := parseUUID(productParam)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
		}
		entries, err := h.service.GetLogsByProduct(productID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
		}
		return c.JSON(entries)
	}

	entries, err := h.service.GetAllLogs()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(entries)
}

// AdjustStock records a manual stock adjustment
// POST /api/v1/inventory-logs
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var req service.AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	entry, err := h.service.AdjustStock(c.Context(), &req, getActor(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Stock adjusted", "data": entry})
}
