package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DevelopmentDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("PORT", "")
	t.Setenv("USER_API_BASE_URL", "")
	t.Setenv("PRESIGN_BASE_URL", "")
	t.Setenv("S3_BUCKET_NAME", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, developmentUserAPI, cfg.UserAPIBaseURL)
	assert.Equal(t, PresignDisabled, cfg.PresignMode())
}

func TestLoadConfig_ProductionRequiresUserAPI(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("USER_API_BASE_URL", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_PrivilegedPortRejected(t *testing.T) {
	t.Setenv("PORT", "80")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_TrimsTrailingSlashes(t *testing.T) {
	t.Setenv("USER_API_BASE_URL", "https://api.example.com/v1/")
	t.Setenv("PRESIGN_BASE_URL", "https://presign.example.com/")
	t.Setenv("S3_BUCKET_NAME", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/v1", cfg.UserAPIBaseURL)
	assert.Equal(t, "https://presign.example.com", cfg.PresignBaseURL)
	assert.Equal(t, PresignExternal, cfg.PresignMode())
}

func TestLoadConfig_PresignModesAreExclusive(t *testing.T) {
	t.Setenv("PRESIGN_BASE_URL", "https://presign.example.com")
	t.Setenv("S3_BUCKET_NAME", "bucket")
	t.Setenv("S3_ENDPOINT", "http://s3.local")
	t.Setenv("S3_ACCESS_KEY_ID", "key")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_SelfHostedRequiresCredentials(t *testing.T) {
	t.Setenv("PRESIGN_BASE_URL", "")
	t.Setenv("S3_BUCKET_NAME", "bucket")
	t.Setenv("S3_ENDPOINT", "http://s3.local")
	t.Setenv("S3_ACCESS_KEY_ID", "")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_SelfHostedMode(t *testing.T) {
	t.Setenv("PRESIGN_BASE_URL", "")
	t.Setenv("S3_BUCKET_NAME", "bucket")
	t.Setenv("S3_ENDPOINT", "http://s3.local")
	t.Setenv("S3_ACCESS_KEY_ID", "key")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, PresignSelfHosted, cfg.PresignMode())
}
