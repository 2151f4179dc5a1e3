/*
Package configs is responsible for loading and parsing the application's configuration settings.

It configures server parameters by reading operating system environment variables,
including the running environment, port, CORS allowed origins, the remote user
directory address, and the avatar presign settings (external service or self-hosted S3).
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// PresignMode identifies how avatar file uploads obtain their presigned URL.
type PresignMode string

const (
	// PresignDisabled means no presign backend is configured; the add-user
	// workflow only accepts a raw avatar URL.
	PresignDisabled PresignMode = "disabled"

	// PresignExternal means an external presign service issues upload URLs.
	PresignExternal PresignMode = "external"

	// PresignSelfHosted means this binary serves its own presign endpoint
	// backed by S3-compatible storage.
	PresignSelfHosted PresignMode = "self-hosted"
)

// AppConfig contains all configuration parameters required for the application to run.
// All configuration values are loaded from environment variables.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// Security Settings
	AllowedOrigins []string

	// Remote User Directory Settings
	UserAPIBaseURL string

	// Avatar Presign Settings
	PresignBaseURL string

	// S3 Storage Settings (self-hosted presign mode only)
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicBaseURL   string
}

// developmentUserAPI is the mock directory used when no address is configured
// in a development environment.
const developmentUserAPI = "https://66a39c4e44aa63704581e216.mockapi.io/api/v1"

// PresignMode reports which avatar upload mode the configuration enables.
func (c *AppConfig) PresignMode() PresignMode {
	if c.PresignBaseURL != "" {
		return PresignExternal
	}
	if c.S3BucketName != "" {
		return PresignSelfHosted
	}
	return PresignDisabled
}

// LoadConfig reads and parses the application configuration from environment variables.
// It provides default values for each configuration item and performs necessary type
// conversions and validation. It returns a pointer to the AppConfig struct and any
// error encountered.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General Server Settings ---
	// Environment
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	// Port
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	cfg.Port = port

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	// --- Security Settings ---
	// AllowedOrigins
	originsStr := os.Getenv("ALLOWED_ORIGINS")
	if originsStr != "" {
		origins := strings.Split(originsStr, ",")
		for _, origin := range origins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{}
	}

	// --- Remote User Directory Settings ---
	cfg.UserAPIBaseURL = strings.TrimRight(os.Getenv("USER_API_BASE_URL"), "/")
	if cfg.UserAPIBaseURL == "" {
		if cfg.Environment == "development" {
			cfg.UserAPIBaseURL = developmentUserAPI
		} else {
			return nil, fmt.Errorf("USER_API_BASE_URL environment variable is required in %s environment", cfg.Environment)
		}
	}

	// --- Avatar Presign Settings ---
	cfg.PresignBaseURL = strings.TrimRight(os.Getenv("PRESIGN_BASE_URL"), "/")

	cfg.S3BucketName = os.Getenv("S3_BUCKET_NAME")
	cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
	cfg.S3AccessKeyID = os.Getenv("S3_ACCESS_KEY_ID")
	cfg.S3SecretAccessKey = os.Getenv("S3_SECRET_ACCESS_KEY")
	cfg.S3PublicBaseURL = strings.TrimRight(os.Getenv("S3_PUBLIC_BASE_URL"), "/")

	if cfg.PresignBaseURL != "" && cfg.S3BucketName != "" {
		return nil, fmt.Errorf("PRESIGN_BASE_URL and S3_BUCKET_NAME are mutually exclusive; configure exactly one presign mode")
	}

	if cfg.S3BucketName != "" {
		if cfg.S3Endpoint == "" {
			return nil, fmt.Errorf("S3_ENDPOINT environment variable is required for self-hosted presign mode")
		}
		if cfg.S3AccessKeyID == "" {
			return nil, fmt.Errorf("S3_ACCESS_KEY_ID environment variable is required for self-hosted presign mode")
		}
		if cfg.S3SecretAccessKey == "" {
			return nil, fmt.Errorf("S3_SECRET_ACCESS_KEY environment variable is required for self-hosted presign mode")
		}
	}

	return cfg, nil
}
