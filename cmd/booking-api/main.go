package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/medibook/booking/internal/booking"
	"github.com/medibook/booking/internal/directory"
	"github.com/medibook/booking/internal/identity"
	"github.com/medibook/booking/pkg/config"
	"github.com/medibook/booking/pkg/database"
	"github.com/medibook/booking/pkg/logger"
	"github.com/medibook/booking/pkg/monitoring"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.LogLevel)
	log.Info("Starting Booking API")

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.WithError(err).Error("Failed to connect to database")
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Database.CreateSchema {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := db.CreateSchema(ctx); err != nil {
			cancel()
			log.WithError(err).Error("Failed to create database schema")
			os.Exit(1)
		}
		cancel()
		log.Info("Database schema initialized")
	}

	// Shared identity components
	passwordManager := identity.NewPasswordManager()
	tokenManager := identity.NewTokenManager(&cfg.JWT)

	// Identity
	identityRepo := identity.NewRepository(db, log)
	identityService := identity.NewService(identityRepo, passwordManager, tokenManager, log)
	identityHandler := identity.NewHandler(identityService, log)

	// Directory
	directoryRepo := directory.NewRepository(db, log)
	directoryService := directory.NewService(directoryRepo, passwordManager, log)
	directoryHandler := directory.NewHandler(directoryService, log)

	// Booking
	bookingRepo := booking.NewRepository(db, log)
	bookingService := booking.NewService(bookingRepo, log)
	bookingHandler := booking.NewHandler(bookingService, log)

	// Setup router
	router := mux.NewRouter()
	router.Use(monitoring.HTTPMiddleware(log))

	router.HandleFunc("/health", healthHandler(db)).Methods("GET")
	router.Handle("/metrics", monitoring.MetricsHandler()).Methods("GET")

	identityHandler.RegisterRoutes(router)
	directoryHandler.RegisterRoutes(router)
	bookingHandler.RegisterRoutes(router)

	// Setup HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Infof("Starting HTTP server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Failed to start HTTP server")
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down Booking API...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
		os.Exit(1)
	}

	log.Info("Booking API stopped")
}

// healthHandler reports service and database health
func healthHandler(db *database.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "healthy"
		code := http.StatusOK
		if err := db.Health(); err != nil {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":    status,
			"service":   "booking-api",
			"timestamp": time.Now().UTC(),
		})
	}
}
