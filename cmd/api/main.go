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
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Invorya-access-api/internal/application/usecase"
	"github.com/jhoicas/Invorya-access-api/internal/domain/module"
	"github.com/jhoicas/Invorya-access-api/internal/infrastructure/cache"
	"github.com/jhoicas/Invorya-access-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/Invorya-access-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Invorya-access-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Invorya-access-api/internal/interfaces/http"
	"github.com/jhoicas/Invorya-access-api/pkg/config"
	"github.com/jhoicas/Invorya-access-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Grafo de módulos: catálogo por defecto + reglas de MODULES_DEPENDENCIES.
	rules, err := module.ParseRules(cfg.Modules.Dependencies)
	if err != nil {
		log.Fatal().Err(err).Msg("reglas de dependencia de módulos")
	}
	graph, err := module.NewGraph(module.DefaultDefinitions(), rules...)
	if err != nil {
		log.Fatal().Err(err).Msg("grafo de módulos")
	}
	engine := module.NewEngine(graph)

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Redis es opcional: sin REDIS_ADDR la configuración se lee siempre de la DB.
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, se continúa sin caché")
		} else {
			defer redisClient.Close()
		}
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	businessUnitRepo := postgres.NewBusinessUnitRepository(pool)
	settingsRepo := cache.NewSettingsCache(postgres.NewModuleSettingsRepository(pool), redisClient, cfg.Redis.TTL, log)
	txRunner := postgres.NewTxRunner(pool)

	notifier := notify.NewLogNotifier(log)
	reportGenerator := infrapdf.NewHealthReportGenerator()

	settingsUC := usecase.NewSettingsUseCase(engine, settingsRepo, txRunner, settingsRepo, businessUnitRepo, notifier, log)
	accessUC := usecase.NewAccessUseCase(
		userRepo, businessUnitRepo, companyRepo, settingsUC, graph,
		reportGenerator, cfg.Diagnostics.ExpectedDelta, log,
	)
	businessUnitUC := usecase.NewBusinessUnitUseCase(businessUnitRepo)
	moduleSvc := usecase.NewModuleService(settingsUC)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (requiere `swag init`).
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Invorya Access API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SettingsUC:     settingsUC,
		AccessUC:       accessUC,
		BusinessUnitUC: businessUnitUC,
		ModuleService:  moduleSvc,
		JWTSecret:      cfg.JWT.Secret,
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
