package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	_ "procura/docs"
	"procura/internal/config"
	"procura/internal/handler"
	"procura/internal/repository/postgres"
	"procura/internal/router"
	"procura/internal/service"
	s3storage "procura/internal/storage/s3"
)

// @title Procura API
// @version 1.0
// @description AN01 tender evaluation analysis: workbook upload, offer extraction, savings statistics and exports.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("main: ignoring .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Log.Level == "debug" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	archive, err := s3storage.NewArchive(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 archive: %w", err)
	}

	analysisRepo := postgres.NewAnalysisRepo(db)

	authSvc := service.NewAuthService(cfg.JWT)
	analysisSvc := service.NewAnalysisService(analysisRepo, archive, &cfg.S3, &cfg.Upload, s3storage.ArchiveKey)

	analysisH := handler.NewAnalysisHandler(analysisSvc)
	tokenH := handler.NewTokenHandler(authSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(authSvc, analysisH, tokenH, healthH, cfg.CORS.AllowedOrigins)
	// multipart overhead on top of the workbook itself
	r.MaxMultipartMemory = cfg.Upload.MaxBytes() + 1<<20

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
