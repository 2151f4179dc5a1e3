/*
Package presign implements the client side of the avatar presign flow.

A presign service issues a short-lived upload URL plus the final public URL for
a named, typed file; the avatar bytes are then transferred directly to storage
with a single PUT, keeping binary payloads off the record-creation request path.
*/
package presign

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"userdeck/internal/pkg/errs"
	"userdeck/internal/pkg/logx"
)

// Slot is the presign service's answer: where to PUT the bytes and the public
// URL the file will be served from afterwards.
type Slot struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
}

// Client talks to a presign service over HTTP and performs the direct upload.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a presign client for the given base URL. The generate
// endpoint path is appended per call.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate requests an upload slot for a file with the given name and declared
// content type.
func (c *Client) Generate(ctx context.Context, fileName, fileType string) (Slot, *errs.CustomError) {
	query := url.Values{}
	query.Set("filename", fileName)
	query.Set("filetype", fileType)

	endpoint := c.baseURL + "/generate-presigned-url?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		logx.Error(err, "presign: building generate request failed")
		return Slot{}, errs.NewError(errs.ErrPresignFailed)
	}

	res, err := c.http.Do(req)
	if err != nil {
		logx.Error(err, "presign: generate request failed")
		return Slot{}, errs.NewError(errs.ErrPresignFailed)
	}
	defer drainAndClose(res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		logx.Error(fmt.Errorf("unexpected status %d", res.StatusCode), "presign: generate request rejected")
		return Slot{}, errs.NewError(errs.ErrPresignFailed)
	}

	var slot Slot
	if err := json.NewDecoder(res.Body).Decode(&slot); err != nil {
		logx.Error(err, "presign: decoding generate response failed")
		return Slot{}, errs.NewError(errs.ErrPresignFailed)
	}

	if slot.UploadURL == "" || slot.FileURL == "" {
		logx.Error(fmt.Errorf("incomplete slot response"), "presign: generate response missing URLs")
		return Slot{}, errs.NewError(errs.ErrPresignFailed)
	}

	return slot, nil
}

// Upload transfers the file bytes to the presigned upload URL with the content
// type declared at generation time. Any non-2xx status is a failure.
func (c *Client) Upload(ctx context.Context, uploadURL, mimeType string, data []byte) *errs.CustomError {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		logx.Error(err, "presign: building upload request failed")
		return errs.NewError(errs.ErrAvatarUploadFailed)
	}
	req.Header.Set("Content-Type", mimeType)
	req.ContentLength = int64(len(data))

	res, err := c.http.Do(req)
	if err != nil {
		logx.Error(err, "presign: upload request failed")
		return errs.NewError(errs.ErrAvatarUploadFailed)
	}
	defer drainAndClose(res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		logx.Error(fmt.Errorf("unexpected status %d", res.StatusCode), "presign: upload rejected by storage")
		return errs.NewError(errs.ErrAvatarUploadFailed)
	}

	return nil
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
