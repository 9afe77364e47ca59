package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/stock-ledger/internal/application/ledger"
	"github.com/tu-usuario/stock-ledger/internal/application/usecase"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
	"github.com/tu-usuario/stock-ledger/internal/infrastructure/memory"
	"github.com/tu-usuario/stock-ledger/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/stock-ledger/internal/interfaces/http"
	"github.com/tu-usuario/stock-ledger/pkg/config"
	"github.com/tu-usuario/stock-ledger/pkg/logger"
)

// repos puertos de persistencia ya atados al backend elegido.
type repos struct {
	txRunner  ledger.TxRunner
	stock     repository.StockRepository
	transfer  repository.TransferRepository
	location  repository.LocationRepository
	item      repository.ItemRepository
	recipient repository.RecipientRepository
	supplier  repository.SupplierRepository
	opLog     repository.OperationLogRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var r repos
	switch cfg.DB.Driver {
	case "memory":
		store := memory.NewStore()
		r = repos{
			txRunner:  memory.NewTxRunner(store),
			stock:     memory.NewStockRepository(store),
			transfer:  memory.NewTransferRepository(store),
			location:  memory.NewLocationRepository(store),
			item:      memory.NewItemRepository(store),
			recipient: memory.NewRecipientRepository(store),
			supplier:  memory.NewSupplierRepository(store),
			opLog:     memory.NewOperationLogRepository(store),
		}
		log.Warn().Msg("backend en memoria: los datos no sobreviven al proceso")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migración del esquema")
		}
		r = repos{
			txRunner:  postgres.NewTxRunner(pool),
			stock:     postgres.NewStockRepository(pool),
			transfer:  postgres.NewTransferRepository(pool),
			location:  postgres.NewLocationRepository(pool),
			item:      postgres.NewItemRepository(pool),
			recipient: postgres.NewRecipientRepository(pool),
			supplier:  postgres.NewSupplierRepository(pool),
			opLog:     postgres.NewOperationLogRepository(pool),
		}
	}

	// La ubicación TRANSIT debe existir antes de aceptar tráfico.
	if _, err := ledger.EnsureTransit(r.location); err != nil {
		log.Fatal().Err(err).Msg("inicialización de la ubicación de tránsito")
	}

	locationUC := usecase.NewLocationUseCase(r.location)
	itemUC := usecase.NewItemUseCase(r.item, r.stock, r.transfer)
	recipientUC := usecase.NewRecipientUseCase(r.recipient)
	supplierUC := usecase.NewSupplierUseCase(r.supplier)
	transferUC := ledger.NewTransferUseCase(r.txRunner, r.location, r.item, r.recipient, log)
	receiveUC := ledger.NewReceiveUseCase(r.txRunner, r.location, r.item, log)
	queryUC := ledger.NewQueryUseCase(r.stock, r.transfer, r.location, r.opLog)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		LocationUC:  locationUC,
		ItemUC:      itemUC,
		RecipientUC: recipientUC,
		SupplierUC:  supplierUC,
		TransferUC:  transferUC,
		ReceiveUC:   receiveUC,
		QueryUC:     queryUC,
		Metrics:     httpRouter.NewMetrics(),
		JWTSecret:   cfg.JWT.Secret,
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
