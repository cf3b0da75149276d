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

	"github.com/jhoicas/Nevera-api/internal/application/detection"
	"github.com/jhoicas/Nevera-api/internal/application/inventory"
	"github.com/jhoicas/Nevera-api/internal/application/ports"
	"github.com/jhoicas/Nevera-api/internal/application/recipes"
	"github.com/jhoicas/Nevera-api/internal/application/report"
	domaininv "github.com/jhoicas/Nevera-api/internal/domain/inventory"
	infracache "github.com/jhoicas/Nevera-api/internal/infrastructure/cache"
	infradetector "github.com/jhoicas/Nevera-api/internal/infrastructure/detector"
	inframetrics "github.com/jhoicas/Nevera-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Nevera-api/internal/infrastructure/pdf"
	infrarecipes "github.com/jhoicas/Nevera-api/internal/infrastructure/recipes"
	"github.com/jhoicas/Nevera-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Nevera-api/internal/interfaces/http"
	"github.com/jhoicas/Nevera-api/pkg/config"
	"github.com/jhoicas/Nevera-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

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
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Str("detector", cfg.Detector.Provider).
		Msg("iniciando aplicación")

	policy, err := domaininv.ParseExpiryPolicy(cfg.Inventory.ExpiryPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("INVENTORY_EXPIRY_POLICY")
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén de inventario")
	}
	defer store.Close()

	metrics := inframetrics.NewCollector()

	// Detector: Rekognition, Gemini o servicio HTTP propio
	var detector ports.Detector
	switch cfg.Detector.Provider {
	case "rekognition":
		client, err := infradetector.NewRekognitionClient(ctx, cfg.Detector.AWSRegion)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente Rekognition")
		}
		detector = infradetector.NewRekognitionDetector(client, cfg.Detector.MaxLabels, cfg.Detector.MinConfidence)
	case "gemini":
		detector = infradetector.NewGeminiDetector(cfg.Detector.GeminiAPIKey, cfg.Detector.GeminiModel, "", cfg.Detector.Timeout)
	default:
		detector = infradetector.NewHTTPDetector(cfg.Detector.URL, cfg.Detector.Timeout)
	}

	// Recetas: Spoonacular, con caché Redis opcional
	var searcher ports.RecipeSearcher = infrarecipes.NewSpoonacularClient(
		cfg.Recipes.APIKey, cfg.Recipes.BaseURL, cfg.Recipes.Timeout,
	)
	if cfg.Recipes.APIKey == "" {
		log.Warn().Msg("SPOONACULAR_API_KEY vacío: /recipes responderá 502")
	}
	if cfg.Redis.Addr != "" {
		rdb, err := infracache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, recetas sin caché")
		} else {
			defer rdb.Close()
			searcher = infracache.NewRecipeCache(searcher, rdb, cfg.Recipes.CacheTTL, log.Named("recipe_cache"))
			log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Recipes.CacheTTL).Msg("caché de recetas activa")
		}
	}

	inventoryUC := inventory.NewInventoryUseCase(store.Repo, policy, time.Now, metrics)
	recipeUC := recipes.NewRecipeUseCase(searcher, cfg.Recipes.Timeout, metrics)
	detectionUC := detection.NewDetectionUseCase(detector, inventoryUC, recipeUC, cfg.Detector.Timeout, metrics)
	reportUC := report.NewReportUseCase(store.Repo, infrapdf.NewMarotoReportGenerator(cfg.App.Name), time.Now)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    detection.MaxImageBytes + 1<<20,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(metrics.Middleware())
	app.Use(httpRouter.AccessLog(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Nevera API",
		}))
	}

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: API sin autenticación")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		InventoryUC:    inventoryUC,
		DetectionUC:    detectionUC,
		RecipeUC:       recipeUC,
		ReportUC:       reportUC,
		JWTSecret:      cfg.JWT.Secret,
		MetricsHandler: metrics.Handler(),
		ServiceName:    cfg.App.Name,
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
