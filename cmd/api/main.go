package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/craftly-ai/craftly-backend/config"
	"github.com/craftly-ai/craftly-backend/internal/auth"
	"github.com/craftly-ai/craftly-backend/internal/bootstrap"
	"github.com/craftly-ai/craftly-backend/internal/llm"
	"github.com/craftly-ai/craftly-backend/internal/storage"
	"github.com/craftly-ai/craftly-backend/internal/uploads"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	db, err := bootstrap.OpenDB(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	verifier, err := auth.InitializeFirebase(&cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}

	store, err := storage.New(ctx, cfg.Storage.Region, cfg.Storage.Bucket, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	uploadMgr, err := uploads.NewManager(cfg.Uploads.Dir, cfg.Uploads.MaxFileSize, cfg.Uploads.MaxAudioSize)
	if err != nil {
		log.Fatalf("uploads: %v", err)
	}

	sweeper := uploads.NewSweeper(uploadMgr, cfg.Uploads.MaxAge)
	if err := sweeper.Start(cfg.Uploads.SweepEvery); err != nil {
		log.Fatalf("sweeper: %v", err)
	}
	defer sweeper.Stop()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		DB:             db,
		Redis:          rdb,
		Verifier:       verifier,
		Chat:           llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Timeout),
		Images:         llm.NewImageClient(cfg.LLM.ImageAPIURL, cfg.LLM.ImageAPIKey, cfg.LLM.Timeout),
		Uploader:       store,
		Uploads:        uploadMgr,
		RateWindow:     cfg.RateLimit.Window,
		RateMax:        cfg.RateLimit.MaxRequests,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running in %s mode on port %s", cfg.App.Environment, cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
