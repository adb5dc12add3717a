package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-carwash-inventory/internal/handler"
	"go-carwash-inventory/internal/middleware"
	"go-carwash-inventory/internal/model"
	"go-carwash-inventory/internal/monitor"
	"go-carwash-inventory/internal/repository"
	"go-carwash-inventory/internal/service"
	"go-carwash-inventory/internal/ws"
	"go-carwash-inventory/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	db.AutoMigrate(
		&model.Category{}, &model.Supplier{}, &model.Product{},
		&model.Service{}, &model.ServiceItem{},
		&model.InventoryLog{}, &model.AuditLog{},
		&model.Requisition{}, &model.RequisitionItem{},
		&model.Purchase{}, &model.PurchaseItem{},
		&model.User{}, &model.Privilege{}, &model.Role{},
	)

	// 3. Seed default privileges, roles, and admin user
	seedPrivilegesRolesAndAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	uow := repository.NewUnitOfWork(db)

	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	serviceRepo := repository.NewServiceRepo(db)
	logRepo := repository.NewInventoryLogRepo(db)
	auditRepo := repository.NewAuditLogRepo(db)
	requisitionRepo := repository.NewRequisitionRepo(db)
	purchaseRepo := repository.NewPurchaseRepo(db)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	invService := service.NewInventoryService(uow, logRepo, wsHub)
	procService := service.NewProcurementService(uow, requisitionRepo, purchaseRepo, wsHub)
	carwashService := service.NewCarwashService(uow, serviceRepo, wsHub)
	catalogService := service.NewCatalogService(uow, productRepo, categoryRepo, supplierRepo, wsHub)
	advisoryService := service.NewAdvisoryService(productRepo)
	reportService := service.NewReportingService(logRepo, productRepo)
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo)

	invHandler := handler.NewInventoryHandler(invService)
	procHandler := handler.NewProcurementHandler(procService)
	carwashHandler := handler.NewCarwashHandler(carwashService)
	catalogHandler := handler.NewCatalogHandler(catalogService, advisoryService)
	reportHandler := handler.NewReportingHandler(reportService)
	auditHandler := handler.NewAuditHandler(auditRepo)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Carwash Inventory v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	// Auth Routes (No authentication required)
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard Routes (authenticated users can view)
	protected.Get("/dashboard/stats", middleware.RequirePrivilege("dashboard:view"), reportHandler.GetDashboardStats)
	protected.Get("/dashboard/stock-movement", middleware.RequirePrivilege("dashboard:view"), reportHandler.GetStockMovement)
	protected.Get("/dashboard/cost-impact", middleware.RequirePrivilege("dashboard:view"), reportHandler.GetCostImpact)

	// Product Routes (with privilege checks)
	protected.Get("/products", middleware.RequirePrivilege("product:view"), catalogHandler.GetProducts)
	protected.Get("/products/low-stock", middleware.RequirePrivilege("product:view"), catalogHandler.GetLowStock)
	protected.Get("/products/reorder-suggestions", middleware.RequirePrivilege("product:view"), catalogHandler.GetReorderSuggestions)
	protected.Get("/products/:id", middleware.RequirePrivilege("product:view"), catalogHandler.GetProduct)
	protected.Post("/products", middleware.RequirePrivilege("product:create"), catalogHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequirePrivilege("product:update"), catalogHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequirePrivilege("product:delete"), catalogHandler.DeleteProduct)

	// Category & Supplier Routes
	protected.Get("/categories", catalogHandler.GetCategories)
	protected.Post("/categories", middleware.RequirePrivilege("category:manage"), catalogHandler.CreateCategory)
	protected.Put("/categories/:id", middleware.RequirePrivilege("category:manage"), catalogHandler.UpdateCategory)
	protected.Delete("/categories/:id", middleware.RequirePrivilege("category:manage"), catalogHandler.DeleteCategory)
	protected.Get("/suppliers", catalogHandler.GetSuppliers)
	protected.Post("/suppliers", middleware.RequirePrivilege("supplier:manage"), catalogHandler.CreateSupplier)
	protected.Put("/suppliers/:id", middleware.RequirePrivilege("supplier:manage"), catalogHandler.UpdateSupplier)
	protected.Delete("/suppliers/:id", middleware.RequirePrivilege("supplier:manage"), catalogHandler.DeleteSupplier)

	// Carwash Service Routes
	protected.Get("/services", carwashHandler.GetServices)
	protected.Get("/services/:id", carwashHandler.GetService)
	protected.Post("/services", middleware.RequirePrivilege("service:manage"), carwashHandler.CreateService)
	protected.Put("/services/:id", middleware.RequirePrivilege("service:manage"), carwashHandler.UpdateService)
	protected.Delete("/services/:id", middleware.RequirePrivilege("service:manage"), carwashHandler.DeleteService)
	protected.Post("/services/:id/perform", middleware.RequirePrivilege("service:perform"), carwashHandler.PerformService)

	// Inventory Ledger Routes
	protected.Get("/inventory-logs", middleware.RequirePrivilege("inventory:view"), invHandler.GetLogs)
	protected.Post("/inventory-logs", middleware.RequirePrivilege("inventory:adjust"), invHandler.AdjustStock)

	// Procurement Routes
	protected.Get("/requisitions", middleware.RequirePrivilege("requisition:view"), procHandler.GetRequisitions)
	protected.Post("/requisitions", middleware.RequirePrivilege("requisition:create"), procHandler.CreateRequisition)
	protected.Patch("/requisitions/:id", middleware.RequireRole(model.RoleAdmin), procHandler.DecideRequisition)
	protected.Get("/purchases", middleware.RequirePrivilege("purchase:view"), procHandler.GetPurchases)
	protected.Post("/purchases", middleware.RequirePrivilege("purchase:create"), procHandler.CreatePurchase)
	protected.Post("/purchases/from-requisition", middleware.RequirePrivilege("purchase:create"), procHandler.CreatePurchaseFromRequisition)
	protected.Patch("/purchases/:id/receive", middleware.RequireRole(model.RoleAdmin), procHandler.ReceivePurchase)

	// Audit Trail Routes (admin only)
	protected.Get("/audit-logs", middleware.RequireRole(model.RoleAdmin), auditHandler.GetAuditLogs)

	// User Management Routes (with privilege checks)
	protected.Get("/users", middleware.RequirePrivilege("user:view"), userHandler.GetUsers)
	protected.Get("/users/:id", middleware.RequirePrivilege("user:view"), userHandler.GetUser)
	protected.Post("/users", middleware.RequirePrivilege("user:create"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege("user:update"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege("user:delete"), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", middleware.RequirePrivilege("user:update_privilege"), userHandler.UpdateUserPrivileges)

	// Role Routes
	protected.Get("/roles", roleHandler.GetRoles)

	// Privileges Route (list all available privileges)
	protected.Get("/privileges", func(c *fiber.Ctx) error {
		privileges, err := privilegeRepo.FindAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch privileges"})
		}
		return c.JSON(privileges)
	})

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Low-stock monitor
	lowStockMonitor := monitor.NewLowStockMonitor(productRepo, wsHub)
	scanSpec := os.Getenv("LOW_STOCK_SCAN")
	if scanSpec == "" {
		scanSpec = "@every 15m"
	}
	if err := lowStockMonitor.Start(scanSpec); err != nil {
		log.Printf("Warning: Failed to start low-stock monitor: %v", err)
	}
	defer lowStockMonitor.Stop()

	// 9. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedPrivilegesRolesAndAdmin creates default privileges, roles, and admin user if they don't exist
func seedPrivilegesRolesAndAdmin(db *gorm.DB) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	// 1. Seed privileges first
	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}

	// 2. Seed roles
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	// 3. Assign privileges to roles
	allPrivileges, _ := privilegeRepo.FindAll()

	// ADMIN gets ALL privileges
	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err == nil && len(adminRole.Privileges) == 0 {
		db.Model(&adminRole).Association("Privileges").Replace(allPrivileges)
		log.Println("✅ ADMIN role assigned all privileges")
	}

	// EMPLOYEE gets operational privileges
	employeeRole, err := roleRepo.FindByCode(model.RoleEmployee)
	if err == nil && len(employeeRole.Privileges) == 0 {
		employeePrivileges, _ := privilegeRepo.FindByCodes(model.EmployeePrivilegeCodes)
		db.Model(&employeeRole).Association("Privileges").Replace(employeePrivileges)
		log.Println("✅ EMPLOYEE role assigned operational privileges")
	}

	// USER gets read-only privileges
	userRole, err := roleRepo.FindByCode(model.RoleUser)
	if err == nil && len(userRole.Privileges) == 0 {
		userPrivileges, _ := privilegeRepo.FindByCodes(model.UserPrivilegeCodes)
		db.Model(&userRole).Association("Privileges").Replace(userPrivileges)
		log.Println("✅ USER role assigned read-only privileges")
	}

	// 4. Create default admin user with ADMIN role
	_, err = userRepo.FindByEmail("admin@example.com")
	if err != nil {
		adminRole, _ := roleRepo.FindByCode(model.RoleAdmin)

		admin := &model.User{
			Email:       "admin@example.com",
			FullName:    "Administrator",
			PhoneNumber: "",
			RoleID:      &adminRole.ID,
			IsActive:    true,
			Privileges:  adminRole.Privileges,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}

		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("✅ Admin user created: admin@example.com / admin123 (ADMIN)")
		}
	}
}
