package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userdeck/internal/app/mirror"
	"userdeck/internal/app/session"
	"userdeck/internal/configs"
	"userdeck/internal/pkg/errs"
)

type stubStorage struct {
	presignedKeys []string
}

func (s *stubStorage) PresignUpload(ctx context.Context, key string, mimeType string, duration time.Duration) (string, error) {
	s.presignedKeys = append(s.presignedKeys, key)
	return "http://s3.local/upload/" + key, nil
}

func (s *stubStorage) PublicURL(key string) string {
	return "http://cdn.local/" + key
}

func (s *stubStorage) Delete(ctx context.Context, key string) error {
	return nil
}

func newSelfHostedServer(t *testing.T) (*httptest.Server, *stubStorage) {
	t.Helper()

	dir := &stubDirectory{}
	sess := session.NewSession(dir, stubUploader{}, mirror.NewStore(), nil)
	sess.Load(context.Background())

	cfg := &configs.AppConfig{
		Environment:       "development",
		Port:              8080,
		AllowedOrigins:    []string{},
		S3BucketName:      "avatars-bucket",
		S3Endpoint:        "http://s3.local",
		S3AccessKeyID:     "key",
		S3SecretAccessKey: "secret",
	}
	require.Equal(t, configs.PresignSelfHosted, cfg.PresignMode())

	store := &stubStorage{}
	ts := httptest.NewServer(Router(&AppDeps{Session: sess, Config: cfg, Storage: store}))
	t.Cleanup(ts.Close)
	return ts, store
}

func TestGeneratePresignedURL(t *testing.T) {
	ts, store := newSelfHostedServer(t)

	res, err := http.Get(ts.URL + "/generate-presigned-url?filename=a.png&filetype=image%2Fpng")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	// The bare slot shape, interchangeable with an external presign service.
	var slot map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&slot))

	assert.True(t, strings.HasPrefix(slot["uploadUrl"], "http://s3.local/upload/avatars/"))
	assert.True(t, strings.HasPrefix(slot["fileUrl"], "http://cdn.local/avatars/"))
	assert.True(t, strings.HasSuffix(slot["fileUrl"], ".png"))

	require.Len(t, store.presignedKeys, 1)
	key := store.presignedKeys[0]
	assert.True(t, strings.HasPrefix(key, "avatars/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
}

func TestGeneratePresignedURL_RejectsNonImage(t *testing.T) {
	ts, _ := newSelfHostedServer(t)

	res, err := http.Get(ts.URL + "/generate-presigned-url?filename=a.pdf&filetype=application%2Fpdf")
	require.NoError(t, err)
	defer res.Body.Close()

	var envelope map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&envelope))
	assert.EqualValues(t, errs.ErrAvatarTypeInvalid, envelope["code"])
}

func TestGeneratePresignedURL_RequiresParams(t *testing.T) {
	ts, _ := newSelfHostedServer(t)

	res, err := http.Get(ts.URL + "/generate-presigned-url?filename=a.png")
	require.NoError(t, err)
	defer res.Body.Close()

	var envelope map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&envelope))
	assert.EqualValues(t, errs.ErrInvalidParams, envelope["code"])
}

func TestPresignEndpointAbsentWithoutStorage(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	res, err := http.Get(ts.URL + "/generate-presigned-url?filename=a.png&filetype=image%2Fpng")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
