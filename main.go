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

	"github.com/CUknot/meetroom/config"
	"github.com/CUknot/meetroom/controllers"
	"github.com/CUknot/meetroom/database"
	"github.com/CUknot/meetroom/docs"
	"github.com/CUknot/meetroom/fanout"
	"github.com/CUknot/meetroom/media"
	"github.com/CUknot/meetroom/meeting"
	"github.com/CUknot/meetroom/middleware"
	"github.com/CUknot/meetroom/repository"
	"github.com/CUknot/meetroom/utils"
	"github.com/CUknot/meetroom/websocket"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Meeting Room API
// @version         1.0
// @description     Room, participant and chat coordination for video meetings
// @host            localhost:5005
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogging(cfg)

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server exited gracefully")
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Mode == gin.ReleaseMode {
		// Machine-readable output in production.
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	gin.SetMode(cfg.Mode)
}

func run(ctx context.Context, cfg *config.Config) error {
	db, err := database.Connect(ctx, cfg.DSN(), cfg.DBConnectAttempts, cfg.DBConnectDelay)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	store := repository.New(db)

	bridge := media.New(cfg.OpenViduURL, cfg.OpenViduPublicURL, cfg.OpenViduSecret)
	if err := bridge.WaitReady(ctx, cfg.MediaConnectAttempts, cfg.MediaConnectDelay); err != nil {
		if cfg.MediaRequired {
			return err
		}
		log.Warn().Err(err).Msg("continuing without a reachable media server")
	}

	tokens := utils.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	index := meeting.NewConnIndex()

	var bus meeting.Broadcaster = index
	if cfg.RedisURL != "" {
		redisBus, err := fanout.Dial(ctx, cfg.RedisURL, index)
		if err != nil {
			return err
		}
		if err := redisBus.Start(ctx); err != nil {
			return err
		}
		defer redisBus.Close()
		bus = redisBus
	}

	svc := meeting.NewService(store, tokens, index, bus)
	hub := websocket.NewHub(ctx, svc)
	go hub.Run()

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.Port)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger(), middleware.CORS(cfg.CORSOrigin))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	controllers.NewAPI(store, svc, bridge, tokens).Routes(router, middleware.JWTAuth(tokens))
	router.GET("/ws", websocket.NewHandler(hub, cfg.CORSOrigin).HandleConnection)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("server running")
		log.Info().Msgf("swagger documentation available at http://localhost:%d/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
