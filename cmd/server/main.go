package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/youruser/wallart/internal/api"
	"github.com/youruser/wallart/internal/catalog"
	"github.com/youruser/wallart/internal/config"
	imagepkg "github.com/youruser/wallart/internal/image"
	"github.com/youruser/wallart/internal/lead"
	"github.com/youruser/wallart/internal/logger"
	"github.com/youruser/wallart/internal/shop"
	"github.com/youruser/wallart/internal/storage"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})
	if !cfg.DotEnvLoaded {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting wallart API")

	links := shop.NewLinks(cfg.StoreDomain, shop.Attribution{
		Source:   cfg.UTMSource,
		Medium:   cfg.UTMMedium,
		Campaign: cfg.UTMCampaign,
	})
	artworks := catalog.NewService(cfg.DataDir, catalog.NewResolver(links))

	// Load the catalog at startup (best-effort) so a broken CSV shows up in the logs early.
	if items, err := artworks.Artworks(); err != nil {
		log.Warn().Err(err).Str("data_dir", cfg.DataDir).Msg("Failed to load catalog at startup")
	} else {
		log.Info().Int("artworks", len(items)).Msg("Catalog loaded")
	}

	store, err := storage.New(context.Background(), storage.Config{
		Driver:       cfg.StorageDriver,
		LocalPath:    cfg.StaticDir,
		LocalBaseURL: "/static",
		S3Endpoint:   cfg.S3Endpoint,
		S3Region:     cfg.S3Region,
		S3Bucket:     cfg.S3Bucket,
		S3AccessKey:  cfg.S3AccessKey,
		S3SecretKey:  cfg.S3SecretKey,
		S3PublicURL:  cfg.S3PublicURL,
	})
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("Failed to initialize storage")
	}

	leads := lead.NewClient(cfg.MailerLiteAPIKey, cfg.MailerLiteGroupID)
	if !leads.Configured() {
		log.Warn().Msg("MAILERLITE_API_KEY not set, lead capture will answer 503")
	}

	policy, err := imagepkg.Policy{
		MinScale:       cfg.MockupMinScale,
		MaxScale:       cfg.MockupMaxScale,
		VerticalAnchor: cfg.MockupVerticalAnchor,
		DefaultScale:   cfg.MockupDefaultScale,
	}.OrDefault()
	if err != nil {
		log.Warn().Err(err).Msg("Invalid MOCKUP_* settings, using default placement policy")
	}
	h := api.NewHandler(artworks, imagepkg.NewDownloader(cfg.FetchTimeout), store, links, leads, policy)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.MaxMultipartMemory = 32 << 20
	r.Use(gin.Recovery(), logger.RequestID(), logger.Gin())
	if cfg.StorageDriver == "" || cfg.StorageDriver == "local" {
		r.Static("/static", cfg.StaticDir)
	}
	api.RegisterRoutes(r, h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.CORS(cfg.AllowedOrigins)(r),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
