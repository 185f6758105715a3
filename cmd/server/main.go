package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jason-czar/Sportstreams/internal/config"
	"github.com/jason-czar/Sportstreams/internal/handler"
	"github.com/jason-czar/Sportstreams/internal/hub"
	"github.com/jason-czar/Sportstreams/internal/service"
	"github.com/jason-czar/Sportstreams/internal/store"
	"github.com/jason-czar/Sportstreams/internal/streaming"
	"github.com/jason-czar/Sportstreams/internal/switcher"
	"github.com/jason-czar/Sportstreams/internal/viewers"
	"github.com/jason-czar/Sportstreams/pkg/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log.Init(cfg.Log)
	logger := log.L()
	logger.Info().Str("host", cfg.Server.Host).Int("port", cfg.Server.Port).Msg("starting sportstreams")

	st, err := store.Open(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}
	defer st.Close()
	logger.Info().Str("driver", cfg.Database.Driver).Msg("store ready")

	provider := streaming.NewClient(cfg.Streaming)

	// Fan-out registry: one instance, owned here, torn down at shutdown.
	wsHub := hub.NewHub(cfg.WebSocket)
	go wsHub.Run()
	defer wsHub.Shutdown()

	var presence viewers.PresenceStore
	if cfg.Redis.Enabled {
		presence, err = viewers.NewRedisPresenceStore(cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		logger.Info().Str("address", cfg.Redis.Address).Msg("redis presence store ready")
	} else {
		presence = viewers.NewMemoryPresenceStore()
	}
	defer presence.Close()

	tracker := viewers.NewTracker(presence, wsHub, wsHub, cfg.Viewers.PublishInterval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go tracker.Run(ctx)

	coordinator := switcher.NewCoordinator(st, wsHub, provider.PlaybackURL)

	authSvc := service.NewAuthService(st.Users, st.Sessions, cfg.Auth.SessionTTL)
	eventSvc := service.NewEventService(st, provider)
	cameraSvc := service.NewCameraService(st, provider)
	chatSvc := service.NewChatService(st, wsHub)

	session := handler.NewSessionMiddleware(authSvc, cfg.Auth.CookieName)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(log.GinMiddleware(logger), gin.Recovery())

	handler.NewAuthHandler(authSvc, cfg.Auth).RegisterRoutes(router, session)
	handler.NewEventHandler(eventSvc, cameraSvc, chatSvc, coordinator).RegisterRoutes(router, session)
	handler.NewWSHandler(wsHub, tracker, cfg.WebSocket).RegisterRoutes(router)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("stopped")
}
