package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telekom-gateway/internal/config"
	"telekom-gateway/internal/mockserver"
	"telekom-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	srv := mockserver.New(cfg.MockServer)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.MockServer.Port),
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.MockServer.ReadTimeout,
		WriteTimeout: cfg.MockServer.WriteTimeout,
	}

	go func() {
		logger.Infof("mock backend listening on port %d (demo login %s / %s)",
			cfg.MockServer.Port, mockserver.DemoEmail, mockserver.DemoPassword)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("mock backend failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("shutdown failed: %v", err)
	}
	logger.Info("stopped")
}
