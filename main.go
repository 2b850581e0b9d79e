// File: tripflow/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"tripflow/cache"
	"tripflow/config"
	"tripflow/cron"
	"tripflow/database"
	sessionRepo "tripflow/database/repository/session"
	"tripflow/handlers"
	"tripflow/routes"
	"tripflow/services/capability"
	"tripflow/services/capability/providers"
	"tripflow/services/planner"
	"tripflow/utils"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()

	// Response cache: Redis by default, file-backed when configured.
	var store cache.Store
	if config.AppConfig.CacheBackend == "file" {
		fileStore, err := cache.NewFileStore(config.AppConfig.CacheDir)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize cache directory: %v", err)
		}
		store = fileStore
	} else {
		utils.InitResponseCache()
		store = cache.NewRedisStore(utils.GetResponseCacheClient())
	}
	ttl := time.Duration(config.AppConfig.CacheTTLHours) * time.Hour
	responseCache := cache.New(store, ttl, logger)

	// Generative extraction degrades to pattern matching when no key is set.
	var generator capability.Generator
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		gemini, err := capability.NewGeminiClient(context.Background(), key)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize gemini client: %v", err)
		}
		generator = gemini
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	sessions := sessionRepo.NewMongoSessionRepo()

	// capability providers and the pipeline engine.
	engine := planner.NewEngine(planner.ProviderSet{
		Extractor:    providers.NewExtractor(generator, responseCache, logger),
		Profile:      providers.NewProfileLookup(logger),
		Destinations: providers.NewDestinationDiscovery(logger),
		Events:       providers.NewEventSearch(logger),
		Flights:      providers.NewFlightSearch(logger),
		Hotels:       providers.NewHotelSearch(logger),
		Offers:       providers.NewOfferEnhancement(logger),
		Curator:      providers.NewFlightCurator(logger),
		Itinerary:    providers.NewItineraryAssembly(logger),
		Visa:         providers.NewVisaCheck(logger),
		Health:       providers.NewHealthAdvisory(logger),
		Insurance:    providers.NewInsuranceQuote(logger),
		Seatmap:      providers.NewSeatmapLookup(logger),
	}, sessions, logger)

	handlerBundle := &handlers.HandlerBundle{
		Engine:      engine,
		SessionRepo: sessions,
		Cache:       responseCache,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Periodic cache sweep.
	cron.InitCacheSweepWorker(responseCache)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
