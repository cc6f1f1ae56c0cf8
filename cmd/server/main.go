package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rupamthxt/faceembed/internal/config"
	"github.com/rupamthxt/faceembed/internal/face"
	"github.com/rupamthxt/faceembed/internal/face/dlib"
	faceHttp "github.com/rupamthxt/faceembed/internal/http"
	infraLogger "github.com/rupamthxt/faceembed/internal/logger"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := infraLogger.NewLogger(cfg.Log.Level)

	logger.WithField("models_dir", cfg.Face.ModelsDir).Info("loading face models")
	recognizer, err := dlib.New(cfg.Face.ModelsDir, cfg.Face.UseCNN)
	if err != nil {
		logger.Fatalf("Failed to initialize recognizer: %v", err)
	}
	defer recognizer.Close()

	extractor := face.NewExtractor(recognizer, logger)
	handler := faceHttp.NewHandler(extractor, cfg.Face.DefaultThreshold, logger)

	app := faceHttp.NewApp(handler, logger, faceHttp.AppOptions{
		Metrics:   cfg.Metrics.Enabled,
		AccessLog: true,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			logger.WithError(err).Error("shutdown failed")
		}
	}()

	logger.Infof("faceembed listening on %s", cfg.Addr())
	if err := app.Listen(cfg.Addr()); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}
