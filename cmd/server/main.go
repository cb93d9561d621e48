package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/design-tracker/internal/config"
	"github.com/yukikurage/design-tracker/internal/database"
	"github.com/yukikurage/design-tracker/internal/handlers"
	"github.com/yukikurage/design-tracker/internal/logging"
	"github.com/yukikurage/design-tracker/internal/services"
)

func main() {
	// Load configuration; a missing store URI stops the process here
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logging.New(logging.Options{
		Service: "design-tracker-api",
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		File:    cfg.LogFile,
	})

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// The store is opened on first use
	store := database.NewHandle(cfg, log)

	taskService := services.NewTaskService(store.Tasks())
	memberService := services.NewMemberService(store.Members(), cfg.DefaultMembers)

	r := handlers.NewRouter(handlers.Dependencies{
		Tasks:       taskService,
		Members:     memberService,
		Store:       store,
		Log:         log,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).WithField("store_mode", cfg.StoreMode).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shut down")
	}
	if err := store.Close(ctx); err != nil {
		log.WithError(err).Error("Failed to close store")
	}
	log.Info("Server stopped")
}
