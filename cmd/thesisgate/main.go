package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VettaLabs/ThesisGate/pkg/config"
	domainEmbedding "github.com/VettaLabs/ThesisGate/pkg/domain/embedding"
	"github.com/VettaLabs/ThesisGate/pkg/engine"
	handlers "github.com/VettaLabs/ThesisGate/pkg/handlers/http"
	"github.com/VettaLabs/ThesisGate/pkg/infra/annotate"
	infraAudit "github.com/VettaLabs/ThesisGate/pkg/infra/audit"
	"github.com/VettaLabs/ThesisGate/pkg/infra/audit/kafka"
	"github.com/VettaLabs/ThesisGate/pkg/infra/cache"
	"github.com/VettaLabs/ThesisGate/pkg/infra/database"
	infraEmbedding "github.com/VettaLabs/ThesisGate/pkg/infra/embedding"
	embeddingFactory "github.com/VettaLabs/ThesisGate/pkg/infra/embedding/factory"
	"github.com/VettaLabs/ThesisGate/pkg/infra/jwt"
	infraLogger "github.com/VettaLabs/ThesisGate/pkg/infra/logger"
	"github.com/VettaLabs/ThesisGate/pkg/infra/prometheus"
	providerFactory "github.com/VettaLabs/ThesisGate/pkg/infra/providers/factory"
	"github.com/VettaLabs/ThesisGate/pkg/infra/repository"
	"github.com/VettaLabs/ThesisGate/pkg/infra/strikes"
	"github.com/VettaLabs/ThesisGate/pkg/middleware"
	"github.com/VettaLabs/ThesisGate/pkg/producers"
	"github.com/VettaLabs/ThesisGate/pkg/producers/fuzzy"
	"github.com/VettaLabs/ThesisGate/pkg/producers/relevance"
	"github.com/VettaLabs/ThesisGate/pkg/producers/scamrules"
	"github.com/VettaLabs/ThesisGate/pkg/producers/semantic"
	"github.com/VettaLabs/ThesisGate/pkg/producers/toxicity"
	"github.com/VettaLabs/ThesisGate/pkg/quality"
	"github.com/VettaLabs/ThesisGate/pkg/report"
	"github.com/VettaLabs/ThesisGate/pkg/server"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config"
	}
	if err := config.Load(configPath); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	prometheus.Initialize(prometheus.DefaultMetricsConfig())

	// Initialize database
	db, err := database.NewDB(logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	cacheClient, err := cache.NewClient(cache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
	}, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize cache: %v", err)
	}

	// Phase one: annotator plus the producer set behind the moderator.
	annotator := annotate.NewAnnotator(logger)
	moderator, templateIndex := buildModerator(cfg, annotator, cacheClient, logger)

	// Phase two: local scorer with an LLM refiner on top.
	providerClient, err := providerFactory.NewProviderLocator().Get(cfg.Provider)
	if err != nil {
		logger.Fatalf("Failed to initialize provider client: %v", err)
	}
	refiner := quality.NewRefiner(cfg.Provider, cfg.Quality, providerClient, logger)
	scorer, err := quality.NewScorer(cfg.Quality, refiner, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize scorer: %v", err)
	}

	assembler := report.NewAssembler()

	// repository
	reviewRepository := repository.NewReviewRepository(db.DB)

	tracker := strikes.NewTracker(cacheClient, cfg.Strikes, logger)
	auditService := buildAuditService(cfg, logger)
	defer auditService.Close()

	jwtManager := jwt.NewJwtManager(&cfg.Auth)

	// middleware
	middlewareTransport := middleware.Transport{
		RequestIDMiddleware:    middleware.NewRequestIDMiddleware(logger),
		MetricsMiddleware:      middleware.NewMetricsMiddleware(logger),
		PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(logger),
		AdminAuthMiddleware:    middleware.NewAdminAuthMiddleware(logger, jwtManager),
	}

	// Handler Transport
	handlerTransport := handlers.HandlerTransport{
		// Pipeline
		ModerationHandler: handlers.NewModerationHandler(logger, moderator, assembler, tracker, auditService),
		AnalysisHandler:   handlers.NewAnalysisHandler(logger, moderator, scorer, assembler, auditService),
		// Manual review
		CreateReviewHandler: handlers.NewCreateReviewHandler(logger, reviewRepository),
		ListReviewsHandler:  handlers.NewListReviewsHandler(logger, reviewRepository),
		// Operational
		HealthHandler:  handlers.NewHealthHandler(logger, cacheClient, db, annotator, templateIndex),
		WarmupHandler:  handlers.NewWarmupHandler(logger, annotator, templateIndex),
		VersionHandler: handlers.NewGetVersionHandler(logger),
	}

	srv := server.NewGateServer(server.GateServerDI{
		MiddlewareTransport: middlewareTransport,
		HandlerTransport:    handlerTransport,
		Config:              cfg,
		Logger:              logger,
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	fmt.Println("shutting down server...")
	if err := srv.Shutdown(); err != nil {
		fmt.Println("error shutting down server:", err)
		os.Exit(1)
	}
	fmt.Println("server gracefully stopped")
}

// buildModerator assembles the phase-one pipeline. The optional producers
// are appended behind their config switches; the semantic producer doubles
// as the template index handed to the warmup and health handlers, and stays
// nil when disabled so those handlers can skip it.
func buildModerator(
	cfg *config.Config,
	annotator annotate.Annotator,
	cacheClient cache.Client,
	logger *logrus.Logger,
) (*engine.Moderator, handlers.TemplateIndex) {
	relevanceProducer, err := relevance.NewProducer(logger)
	if err != nil {
		logger.Fatalf("Failed to initialize relevance producer: %v", err)
	}
	scamProducer, err := scamrules.NewProducer(logger)
	if err != nil {
		logger.Fatalf("Failed to initialize scam rules producer: %v", err)
	}
	toxicityProducer, err := toxicity.NewProducer(logger)
	if err != nil {
		logger.Fatalf("Failed to initialize toxicity producer: %v", err)
	}

	safety := []producers.Producer{scamProducer, toxicityProducer}

	if cfg.Moderation.EnableFuzzy {
		safety = append(safety, fuzzy.NewProducer(cfg.Moderation.FuzzyThreshold, logger))
	}

	var templateIndex handlers.TemplateIndex
	if cfg.Moderation.EnableSemantic && cfg.Embeddings.Enabled {
		httpClient := &fasthttp.Client{
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		}
		embeddingConfig := &domainEmbedding.Config{
			Enabled:  cfg.Embeddings.Enabled,
			Provider: cfg.Embeddings.Provider,
			Model:    cfg.Embeddings.Model,
			Credentials: domainEmbedding.Credentials{
				ApiKey: cfg.Embeddings.ApiKey,
			},
		}
		creator, err := embeddingFactory.NewServiceLocator(logger, httpClient).GetService(embeddingConfig)
		if err != nil {
			logger.Fatalf("Failed to initialize embedding service: %v", err)
		}
		semanticProducer := semantic.NewProducer(
			embeddingConfig,
			cfg.Moderation.SemanticThreshold,
			creator,
			infraEmbedding.NewRedisRepository(cacheClient, logger),
			logger,
		)
		safety = append(safety, semanticProducer)
		templateIndex = semanticProducer
	}

	return engine.NewModerator(cfg.Moderation, annotator, relevanceProducer, safety, logger), templateIndex
}

func buildAuditService(cfg *config.Config, logger *logrus.Logger) infraAudit.Service {
	if !cfg.Audit.Enabled {
		return infraAudit.NewService(nil, logger, false)
	}
	locator := infraAudit.NewExporterLocator(
		infraAudit.WithExporter(kafka.ExporterName, kafka.NewKafkaExporter()),
	)
	exporter, err := locator.GetExporter(cfg.Audit.Exporter, map[string]interface{}{
		"host":  cfg.Audit.Host,
		"port":  cfg.Audit.Port,
		"topic": cfg.Audit.Topic,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize audit exporter: %v", err)
	}
	return infraAudit.NewService(exporter, logger, true)
}
