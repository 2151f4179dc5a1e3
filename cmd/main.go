/*
Package main is the entry point for the userdeck server.

It is responsible for loading configuration, initializing the global logging
system, wiring the remote directory and presign collaborators to the session,
kicking off the one-time user list load, setting up the HTTP server, and
gracefully handling operating system interrupt signals (SIGINT, SIGTERM) to
ensure a smooth shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"userdeck/internal/app/directory"
	"userdeck/internal/app/mirror"
	"userdeck/internal/app/presign"
	"userdeck/internal/app/session"
	"userdeck/internal/app/storage"
	"userdeck/internal/app/user"
	"userdeck/internal/configs"
	"userdeck/internal/handler"
	"userdeck/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("user_api", cfg.UserAPIBaseURL).
		Str("presign_mode", string(cfg.PresignMode())).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dirClient := directory.NewClient(cfg.UserAPIBaseURL)
	store := mirror.NewStore()

	var (
		uploader       session.Uploader
		storageService storage.StorageService
		cleanup        session.CleanupFunc
	)

	switch cfg.PresignMode() {
	case configs.PresignExternal:
		uploader = presign.NewClient(cfg.PresignBaseURL)

	case configs.PresignSelfHosted:
		storageService, err = storage.NewStorageService(storage.ServiceConfig{
			S3BucketName:      cfg.S3BucketName,
			S3Endpoint:        cfg.S3Endpoint,
			S3AccessKeyID:     cfg.S3AccessKeyID,
			S3SecretAccessKey: cfg.S3SecretAccessKey,
			S3PublicBaseURL:   cfg.S3PublicBaseURL,
		})
		if err != nil {
			logx.Fatal(err, "Failed to initialize storage service")
		}

		// The presign client loops back to this server's own endpoint so the
		// external and self-hosted modes share one upload path.
		uploader = presign.NewClient(fmt.Sprintf("http://localhost:%d", cfg.Port))

		// Deleting a user whose avatar lives in our own bucket leaves the
		// object orphaned; remove it best-effort.
		publicPrefix := storageService.PublicURL("")
		cleanup = func(record user.Record) {
			if record.Avatar == "" || !strings.HasPrefix(record.Avatar, publicPrefix) {
				return
			}
			key := strings.TrimPrefix(record.Avatar, publicPrefix)

			cleanupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = storageService.Delete(cleanupCtx, key)
		}

	case configs.PresignDisabled:
		logx.Warn("No presign backend configured. Avatar file uploads are disabled; raw URLs still work.")
	}

	sess := session.NewSession(dirClient, uploader, store, cleanup)

	// Setup HTTP server and routes
	router := handler.Router(&handler.AppDeps{
		Session: sess,
		Config:  cfg,
		Storage: storageService,
	})

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// One-time initial load of the user list; failure is surfaced in the page
	// as a blocking error, never retried automatically.
	go sess.Load(ctx)

	go func() {
		logx.Info(fmt.Sprintf("userdeck server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.")
}
