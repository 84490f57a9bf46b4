package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/ferreinv/inventario-api/internal/application/inventory"
	"github.com/ferreinv/inventario-api/internal/application/ports"
	"github.com/ferreinv/inventario-api/internal/application/reports"
	"github.com/ferreinv/inventario-api/internal/application/usecase"
	infrapdf "github.com/ferreinv/inventario-api/internal/infrastructure/pdf"
	"github.com/ferreinv/inventario-api/internal/infrastructure/postgres"
	infraqr "github.com/ferreinv/inventario-api/internal/infrastructure/qr"
	"github.com/ferreinv/inventario-api/internal/infrastructure/storage"
	httpRouter "github.com/ferreinv/inventario-api/internal/interfaces/http"
	"github.com/ferreinv/inventario-api/pkg/config"
	"github.com/ferreinv/inventario-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Storage S3 — opcional: sin bucket configurado los productos se
	// gestionan sin imágenes y las rutas de uploads no se registran.
	var objectStorage ports.ObjectStorage
	if cfg.Storage.Enabled() {
		s3Storage, err := storage.NewS3Storage(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("configuración de S3")
		}
		objectStorage = s3Storage
	} else {
		log.Info().Msg("storage S3 deshabilitado (AWS_BUCKET_NAME vacío)")
	}

	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, movementRepo)
	productUC := usecase.NewProductUseCase(productRepo, txRunner, objectStorage, log)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, productRepo)
	qrUC := usecase.NewProductQRUseCase(productRepo, infraqr.NewGenerator())

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	reportUC := reports.NewReportUseCase(productRepo, movementRepo, pdfGenerator)

	var uploadUC *usecase.UploadUseCase
	if objectStorage != nil {
		uploadUC = usecase.NewUploadUseCase(objectStorage)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	registerSwagger(app, swaggerDocsPath, cfg.App.Name, log)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:        productUC,
		CategoryUC:       categoryUC,
		QRUC:             qrUC,
		RegisterMovement: registerMovementUC,
		ReportUC:         reportUC,
		UploadUC:         uploadUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

const swaggerDocsPath = "./docs/swagger.json"

// registerSwagger registra la UI de Swagger solo si el JSON generado existe:
// el middleware entra en pánico cuando el archivo falta, y la API debe
// arrancar igual en árboles sin docs generadas (`swag init`).
func registerSwagger(app *fiber.App, filePath, title string, log *logger.Logger) {
	if _, err := os.Stat(filePath); err != nil {
		log.Info().Str("path", filePath).Msg("swagger.json no encontrado, UI de docs deshabilitada")
		return
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    title,
	}))
}
