package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"media-studio/internal/enhance"
	"media-studio/internal/handlers"
	"media-studio/internal/importer"
	"media-studio/internal/logging"
	"media-studio/internal/middleware"
	"media-studio/internal/project"
	"media-studio/internal/prober"
	"media-studio/internal/resolver"
	"media-studio/internal/startup"
	"media-studio/internal/storage"
)

func main() {
	startTime := time.Now()

	// Optional .env for local development; the environment wins.
	_ = godotenv.Load()

	startup.ConfigureMemoryLimit()

	config, err := startup.LoadConfig()
	if err != nil {
		logging.Fatal("Configuration error: %v", err)
	}

	ctx := context.Background()

	store, err := storage.Open(ctx, config.DataDir)
	if err != nil {
		logging.Fatal("Failed to open storage: %v", err)
	}
	defer store.Close()

	session, err := resolver.NewSession(config.ScratchDir)
	if err != nil {
		logging.Fatal("Failed to create session directory: %v", err)
	}

	res := resolver.New(store, session)

	prober.InitVips()
	probe := prober.New(config.ThumbnailDir)
	imp := importer.New(store, probe, session)
	projects := project.NewStore(store)

	var enhancer enhance.Service
	if config.EnhanceURL != "" {
		enhancer = enhance.NewClient(config.EnhanceURL, config.EnhanceToken)
	} else {
		logging.Info("No enhancement service configured; /api/enhance will return 503")
	}

	h := handlers.New(imp, res, projects, enhancer)

	router := mux.NewRouter()
	router.Use(middleware.Metrics)
	h.RegisterRoutes(router)
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      middleware.Logger(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go handleShutdown(srv, session)

	logging.Info("Listening on :%s (startup took %s)", config.Port, time.Since(startTime).Round(time.Millisecond))
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logging.Fatal("Server error: %v", err)
	}
}

func handleShutdown(srv *http.Server, session *resolver.Session) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	logging.Info("Received %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	}

	// Session files are playback references minted for this process only;
	// nothing durable lives there.
	if err := session.Close(); err != nil {
		logging.Warn("Session cleanup error: %v", err)
	}

	prober.ShutdownVips()
}
