package app

import (
	"context"
	"errors"
	"time"

	"stockflow/internal/config"
	"stockflow/internal/database"
	"stockflow/internal/handlers"
	"stockflow/internal/middleware"
	"stockflow/internal/repositories"
	"stockflow/internal/services"
	"stockflow/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// App is the assembled HTTP service and the resources it owns.
type App struct {
	Fiber  *fiber.App
	db     *gorm.DB
	mq     *rabbitmq.Client
	logger zerolog.Logger
}

// New builds the repositories, services and handlers described by cfg and
// mounts them on a Fiber app.
func New(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	a := &App{logger: logger}

	repo, err := a.productRepository(cfg.Database)
	if err != nil {
		return nil, err
	}

	var publisher services.EventPublisher
	if cfg.RabbitMQ.Enabled {
		a.mq, err = rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQ.URL,
			Exchange: cfg.RabbitMQ.Exchange,
		}, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		publisher = a.mq
	}

	productService := services.NewProductService(repo, publisher, logger,
		services.WithInactiveInListings(cfg.Products.ListInactive))
	productHandler := handlers.NewProductHandler(productService)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		ErrorHandler:          handlers.ErrorHandler(logger),
		DisableStartupMessage: true,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.RequestLogger(logger))
	app.Use(recover.New())
	app.Use(middleware.CORS(cfg.CORS))

	app.Get("/health", a.handleHealth)

	api := app.Group(cfg.App.BasePath)
	productHandler.RegisterRoutes(api)

	a.Fiber = app
	return a, nil
}

func (a *App) productRepository(cfg config.DatabaseConfig) (repositories.ProductRepository, error) {
	if cfg.Driver == config.DriverMemory {
		a.logger.Warn().Msg("using in-memory product store, data is lost on restart")
		return repositories.NewInMemoryProductRepository(), nil
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	a.db = db

	if cfg.AutoMigrate {
		if err := database.Migrate(db, cfg.Driver, "up", a.logger); err != nil {
			a.Close()
			return nil, err
		}
	}
	return repositories.NewGORMProductRepository(db), nil
}

func (a *App) handleHealth(c *fiber.Ctx) error {
	status := fiber.StatusOK
	dbState := "memory"
	if a.db != nil {
		dbState = "up"
		if err := a.ping(c.UserContext()); err != nil {
			a.logger.Error().Err(err).Msg("database ping failed")
			dbState = "down"
			status = fiber.StatusServiceUnavailable
		}
	}

	health := "healthy"
	if status != fiber.StatusOK {
		health = "unhealthy"
	}
	return c.Status(status).JSON(fiber.Map{
		"status":   health,
		"time":     time.Now().Format(time.RFC3339),
		"database": dbState,
	})
}

func (a *App) ping(ctx context.Context) error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Close releases the broker connection and the database pool.
func (a *App) Close() error {
	var errs []error
	if a.mq != nil {
		errs = append(errs, a.mq.Close())
	}
	if a.db != nil {
		errs = append(errs, database.Close(a.db))
	}
	return errors.Join(errs...)
}
