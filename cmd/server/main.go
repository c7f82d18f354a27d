package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/rdmitry/openforum/backend/internal/router"
	"github.com/rdmitry/openforum/backend/internal/tasks"
	"github.com/rdmitry/openforum/backend/pkg/config"
	"github.com/rdmitry/openforum/backend/pkg/firebase"
	"github.com/rdmitry/openforum/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Initialize Firebase when credentials are configured
	ctx := context.Background()
	var firebaseAuthClient *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		firebaseAuthClient = firebaseApp.AuthClient
	} else {
		log.Println("Firebase credentials not configured, firebase-login disabled.")
	}

	// Background task registry for fan-out and other off-path work
	taskRegistry := tasks.NewRegistry()

	// Create Echo instance
	e := echo.New()
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, firebaseAuthClient, taskRegistry)

	// Start server
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	// Wait for interrupt, then drain: HTTP first, then scheduled background
	// work, so fan-outs in flight are not silently lost
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown: %v", err)
	}
	if err := taskRegistry.Shutdown(shutdownCtx); err != nil {
		log.Printf("Background tasks not drained: %v", err)
	}
}
