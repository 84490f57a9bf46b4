package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ferreinv/inventario-api/internal/application/inventory"
	"github.com/ferreinv/inventario-api/internal/application/reports"
	"github.com/ferreinv/inventario-api/internal/application/usecase"
)

// RouterDeps dependencias para el router. UploadUC puede ser nil cuando el
// almacenamiento de imágenes no está configurado.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	CategoryUC       *usecase.CategoryUseCase
	QRUC             *usecase.ProductQRUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	ReportUC         *reports.ReportUseCase
	UploadUC         *usecase.UploadUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.QRUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/qr", productHandler.QR)

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Stock movements (ledger)
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.RegisterMovement)
	movements.Post("/", movementHandler.Register)
	movements.Get("/", movementHandler.List)

	// Dashboard
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.ReportUC)
	dashboard.Get("/metrics", dashboardHandler.Metrics)
	dashboard.Get("/recent-activity", dashboardHandler.RecentActivity)

	// Reports
	reportsGroup := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/top-products", reportHandler.TopProducts)
	reportsGroup.Get("/inventory-value", reportHandler.InventoryValue)
	reportsGroup.Get("/inventory-value/pdf", reportHandler.ValuationPDF)
	reportsGroup.Get("/movements-by-period", reportHandler.MovementsByPeriod)

	// Uploads (solo si hay storage configurado)
	if deps.UploadUC != nil {
		uploads := api.Group("/upload")
		uploadHandler := NewUploadHandler(deps.UploadUC)
		uploads.Post("/presigned", uploadHandler.Presign)
		uploads.Post("/complete", uploadHandler.Complete)
	}
}
