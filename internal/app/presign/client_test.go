package presign

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userdeck/internal/pkg/errs"
)

func TestGenerate_PassesFileNameAndType(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/generate-presigned-url", r.URL.Path)
		assert.Equal(t, "a.png", r.URL.Query().Get("filename"))
		assert.Equal(t, "image/png", r.URL.Query().Get("filetype"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Slot{
			UploadURL: "http://storage/upload/abc",
			FileURL:   "http://cdn/files/abc.png",
		})
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	slot, customErr := client.Generate(context.Background(), "a.png", "image/png")

	require.Nil(t, customErr)
	assert.Equal(t, "http://storage/upload/abc", slot.UploadURL)
	assert.Equal(t, "http://cdn/files/abc.png", slot.FileURL)
}

func TestGenerate_Rejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	_, customErr := client.Generate(context.Background(), "a.png", "image/png")

	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrPresignFailed, customErr.Code)
}

func TestGenerate_IncompleteSlot(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Slot{UploadURL: "http://storage/upload/abc"})
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	_, customErr := client.Generate(context.Background(), "a.png", "image/png")

	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrPresignFailed, customErr.Code)
}

func TestUpload_PutsBytesWithContentType(t *testing.T) {
	var gotMethod, gotContentType string
	var gotBody []byte

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	customErr := client.Upload(context.Background(), ts.URL+"/upload/abc", "image/png", []byte("png-bytes"))

	require.Nil(t, customErr)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "image/png", gotContentType)
	assert.Equal(t, []byte("png-bytes"), gotBody)
}

func TestUpload_NonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	customErr := client.Upload(context.Background(), ts.URL+"/upload/abc", "image/png", []byte("x"))

	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrAvatarUploadFailed, customErr.Code)
}
