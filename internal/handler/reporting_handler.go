package handler

import (
	"strconv"
	"time"

	"go-carwash-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportingHandler struct {
	service service.ReportingService
}

func NewReportingHandler(s service.ReportingService) *ReportingHandler {
	return &ReportingHandler{service: s}
}

// GetStockMovement returns stock movement data for charts
// Query params: days (default 7)
func (h *ReportingHandler) GetStockMovement(c *fiber.Ctx) error {
	daysStr := c.Query("days", "7")
	days, err := strconv.Atoi(daysStr)
	if err != nil || days <= 0 {
		days = 7
	}

	data, err := h.service.GetStockMovement(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stock movement"})
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}

// GetDashboardStats returns overview statistics
func (h *ReportingHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}

	return c.JSON(stats)
}

// GetCostImpact sums inbound and outbound ledger cost over a date range
// Query params: start, end (YYYY-MM-DD, default last 30 days)
func (h *ReportingHandler) GetCostImpact(c *fiber.Ctx) error {
	end := time.Now()
	start := end.AddDate(0, 0, -30)

	if s := c.Query("start"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid start date, use YYYY-MM-DD"})
		}
		start = parsed
	}
	if e := c.Query("end"); e != "" {
		parsed, err := time.Parse("2006-01-02", e)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid end date, use YYYY-MM-DD"})
		}
		// Inclusive end of day
		end = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	summary, err := h.service.GetCostImpact(start, end)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch cost impact"})
	}

	return c.JSON(summary)
}
