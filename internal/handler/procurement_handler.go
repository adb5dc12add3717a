package handler

import (
	"go-carwash-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProcurementHandler struct {
	service service.ProcurementService
}

func NewProcurementHandler(s service.ProcurementService) *ProcurementHandler {
	return &ProcurementHandler{service: s}
}

// CreateRequisition opens a pending requisition
// POST /api/v1/requisitions
func (h *ProcurementHandler) CreateRequisition(c *fiber.Ctx) error {
	var req service.CreateRequisitionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	requisition, err := h.service.CreateRequisition(c.Context(), &req, getActor(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Requisition created", "data": requisition})
}

// GetRequisitions lists all requisitions
// GET /api/v1/requisitions
func (h *ProcurementHandler) GetRequisitions(c *fiber.Ctx) error {
	requisitions, err := h.service.GetAllRequisitions()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(requisitions)
}

// DecideRequisition approves or rejects a pending requisition
// PATCH /api/v1/requisitions/:id
func (h *ProcurementHandler) DecideRequisition(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid requisition ID"})
	}

	var req struct {
		Action string `json:"action"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	requisition, err := h.service.DecideRequisition(c.Context(), id, req.Action, getActor(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Requisition " + string(requisition.Status), "data": requisition})
}

// CreatePurchase opens a purchase order directly
// POST /api/v1/purchases
func (h *ProcurementHandler) CreatePurchase(c *fiber.Ctx) error {
	var req service.CreatePurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	purchase, err := h.service.CreatePurchase(c.Context(), &req, getActor(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Purchase created", "data": purchase})
}

// CreatePurchaseFromRequisition derives a purchase from an approved requisition
// POST /api/v1/purchases/from-requisition
func (h *ProcurementHandler) CreatePurchaseFromRequisition(c *fiber.Ctx) error {
	var req service.PurchaseFromRequisitionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	purchase, err := h.service.CreatePurchaseFromRequisition(c.Context(), &req, getActor(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Purchase created from requisition", "data": purchase})
}

// GetPurchases lists all purchases
// GET /api/v1/purchases
func (h *ProcurementHandler) GetPurchases(c *fiber.Ctx) error {
	purchases, err := h.service.GetAllPurchases()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(purchases)
}

// ReceivePurchase books delivered items into stock
// PATCH /api/v1/purchases/:id/receive
func (h *ProcurementHandler) ReceivePurchase(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid purchase ID"})
	}

	var req service.ReceivePurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	purchase, err := h.service.ReceivePurchase(c.Context(), id, &req, getActor(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Purchase received", "data": purchase})
}
