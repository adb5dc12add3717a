package handler

import (
	"go-carwash-inventory/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type AuditHandler struct {
	auditRepo repository.AuditLogRepository
}

func NewAuditHandler(auditRepo repository.AuditLogRepository) *AuditHandler {
	return &AuditHandler{auditRepo: auditRepo}
}

// GetAuditLogs lists audit records, optionally scoped to one row
// GET /api/v1/audit-logs?table=products&row_id=...
func (h *AuditHandler) GetAuditLogs(c *fiber.Ctx) error {
	table := c.Query("table")
	rowParam := c.Query("row_id")

	if table != "" && rowParam != "" {
		rowID, err := parseUUID(rowParam)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid row ID"})
		}
		entries, err := h.auditRepo.FindByRow(table, rowID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch audit logs"})
		}
		return c.JSON(entries)
	}

	entries, err := h.auditRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch audit logs"})
	}
	return c.JSON(entries)
}
