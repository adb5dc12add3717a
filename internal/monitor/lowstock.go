package monitor

import (
	"log"

	"go-carwash-inventory/internal/repository"
	"go-carwash-inventory/internal/ws"

	"github.com/robfig/cron/v3"
)

// LowStockMonitor periodically scans for products at or below their reorder
// level and pushes an advisory to connected websocket clients.
type LowStockMonitor struct {
	productRepo repository.ProductRepository
	wsHub       *ws.Hub
	cron        *cron.Cron
}

func NewLowStockMonitor(productRepo repository.ProductRepository, hub *ws.Hub) *LowStockMonitor {
	return &LowStockMonitor{
		productRepo: productRepo,
		wsHub:       hub,
		cron:        cron.New(),
	}
}

// Start schedules the scan. spec uses cron syntax, e.g. "@every 15m".
func (m *LowStockMonitor) Start(spec string) error {
	if _, err := m.cron.AddFunc(spec, m.Scan); err != nil {
		return err
	}
	m.cron.Start()
	log.Printf("Low-stock monitor scheduled (%s)", spec)
	return nil
}

func (m *LowStockMonitor) Stop() {
	m.cron.Stop()
}

// Scan runs one pass. Exported so the first pass can run at boot.
func (m *LowStockMonitor) Scan() {
	products, err := m.productRepo.FindLowStock()
	if err != nil {
		log.Printf("Warning: low-stock scan failed: %v", err)
		return
	}
	if len(products) == 0 {
		return
	}

	alert := ws.LowStockAlert{Type: "low_stock_alert"}
	for _, p := range products {
		alert.Products = append(alert.Products, ws.LowStockEntry{
			ProductID:    p.ID.String(),
			SKU:          p.SKU,
			Name:         p.Name,
			Stock:        p.Stock,
			ReorderLevel: p.ReorderLevel,
		})
	}

	m.wsHub.BroadcastJSON(alert)
}
