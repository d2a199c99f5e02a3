// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contingent-booking-api-server/config"
	"contingent-booking-api-server/internal/api/handlers"
	"contingent-booking-api-server/internal/api/routes"
	"contingent-booking-api-server/internal/auth"
	"contingent-booking-api-server/internal/cache"
	"contingent-booking-api-server/internal/database"
	"contingent-booking-api-server/internal/repository"
	"contingent-booking-api-server/internal/s3"
	"contingent-booking-api-server/internal/service"
	"contingent-booking-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// 1. Load configuration
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.IsProduction())
	log.Info().Str("env", cfg.Server.Env).Msg("starting contingent booking api")
	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("jwt.secret (JWT_SECRET) must be set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Connect MongoDB, ensure indexes and seed reference data
	client, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()
	db := client.Database(cfg.Mongo.DBName)

	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}
	seededProvinces, err := database.SeedMasterRegion(ctx, db, cfg.Seed.MasterRegionFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed master region")
	}
	if err := database.SeedSuperAdmin(ctx, db, cfg.Seed); err != nil {
		log.Fatal().Err(err).Msg("failed to seed super admin")
	}

	// 4. Optional Redis cache for the province list
	var provinceCache service.ProvinceCache
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, province cache disabled")
		} else {
			defer redisClient.Close()
			provinceCache = cache.NewProvinceCache(redisClient, cfg.Redis.ProvinceTTL)
			log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
		}
	}

	// 5. Optional S3 uploader for exports
	var uploader service.Uploader
	if s3.Enabled(cfg.S3) {
		u, err := s3.NewUploader(ctx, cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create s3 uploader")
		}
		uploader = u
	} else {
		log.Info().Msg("s3 not configured, booking export disabled")
	}

	// 6. Repositories, services, handlers
	bookingRepo := repository.NewBookingRepository(db)
	coordinatorRepo := repository.NewRegionCoordinatorRepository(db)
	regionRepo := repository.NewMasterRegionRepository(db)
	userRepo := repository.NewUserRepository(db)

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration)
	hub := socket.NewHub()

	bookingService := service.NewBookingService(bookingRepo, coordinatorRepo, regionRepo, hub, cfg.Booking.CodeRetries)
	exportService := service.NewExportService(bookingRepo, uploader)
	regionService := service.NewRegionService(regionRepo, provinceCache)
	if seededProvinces > 0 {
		// A cache shared with an older deployment may still hold the previous list.
		regionService.InvalidateCache(ctx)
	}
	coordinatorService := service.NewCoordinatorService(coordinatorRepo)
	authService := service.NewAuthService(userRepo, tokens)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := routes.SetupRouter(cfg, tokens, routes.Handlers{
		Auth:              &handlers.AuthHandler{Auth: authService},
		Health:            &handlers.HealthHandler{DB: client},
		Booking:           &handlers.BookingHandler{Bookings: bookingService, Exporter: exportService},
		MasterRegion:      &handlers.MasterRegionHandler{Regions: regionService},
		RegionCoordinator: &handlers.RegionCoordinatorHandler{Coordinators: coordinatorService},
		WebSocket:         &handlers.WebSocketHandler{Hub: hub, Tokens: tokens, Roles: routes.AdminRoles},
	})

	// 7. Start server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to run server")
		}
	}()

	// 8. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}

func setupLogger(production bool) {
	if production {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return
	}
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
}
