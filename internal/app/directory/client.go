/*
Package directory implements the HTTP client for the remote user directory.

The directory is the sole arbiter of user ids: records are listed, created, and
deleted through its REST interface, and the local mirror is only updated after a
call succeeds.
*/
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"userdeck/internal/app/user"
	"userdeck/internal/pkg/errs"
	"userdeck/internal/pkg/logx"
)

// CreatePayload is the request body for creating a user. Avatar is null when
// no avatar was provided.
type CreatePayload struct {
	FirstName string  `json:"firstName"`
	Age       int     `json:"age"`
	CompanyID string  `json:"companyId,omitempty"`
	Avatar    *string `json:"avatar"`
}

// Client talks to the remote user directory over HTTP.
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

// NewClient creates a directory client for the given base URL
// (e.g. "https://host/api/v1"). The "/users" resource path is appended per call.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches the full ordered user list.
func (c *Client) List(ctx context.Context) ([]user.Record, *errs.CustomError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users", nil)
	if err != nil {
		logx.Error(err, "directory: building list request failed")
		return nil, errs.NewError(errs.ErrDirectoryLoadFailed)
	}

	res, err := c.http.Do(req)
	if err != nil {
		logx.Error(err, "directory: list request failed")
		return nil, errs.NewError(errs.ErrDirectoryLoadFailed)
	}
	defer drainAndClose(res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		logx.Error(fmt.Errorf("unexpected status %d", res.StatusCode), "directory: list request rejected")
		return nil, errs.NewError(errs.ErrDirectoryLoadFailed)
	}

	var records []user.Record
	if err := json.NewDecoder(res.Body).Decode(&records); err != nil {
		logx.Error(err, "directory: decoding list response failed")
		return nil, errs.NewError(errs.ErrDirectoryLoadFailed)
	}

	return records, nil
}

// Create submits a new user and returns the record as stored by the directory,
// including its server-assigned id.
func (c *Client) Create(ctx context.Context, payload CreatePayload) (user.Record, *errs.CustomError) {
	body, err := json.Marshal(payload)
	if err != nil {
		logx.Error(err, "directory: encoding create payload failed")
		return user.Record{}, errs.NewError(errs.ErrUserCreateRejected)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/users", bytes.NewReader(body))
	if err != nil {
		logx.Error(err, "directory: building create request failed")
		return user.Record{}, errs.NewError(errs.ErrUserCreateRejected)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		logx.Error(err, "directory: create request failed")
		return user.Record{}, errs.NewError(errs.ErrUserCreateRejected)
	}
	defer drainAndClose(res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		logx.Error(fmt.Errorf("unexpected status %d", res.StatusCode), "directory: create request rejected")
		return user.Record{}, errs.NewError(errs.ErrUserCreateRejected)
	}

	var created user.Record
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		logx.Error(err, "directory: decoding create response failed")
		return user.Record{}, errs.NewError(errs.ErrUserCreateRejected)
	}

	return created, nil
}

// Delete removes the user with the given id from the directory.
func (c *Client) Delete(ctx context.Context, id string) *errs.CustomError {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/users/"+id, nil)
	if err != nil {
		logx.Error(err, "directory: building delete request failed", "user_id", id)
		return errs.NewError(errs.ErrUserDeleteRejected)
	}

	res, err := c.http.Do(req)
	if err != nil {
		logx.Error(err, "directory: delete request failed", "user_id", id)
		return errs.NewError(errs.ErrUserDeleteRejected)
	}
	defer drainAndClose(res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		logx.Error(fmt.Errorf("unexpected status %d", res.StatusCode), "directory: delete request rejected", "user_id", id)
		return errs.NewError(errs.ErrUserDeleteRejected)
	}

	return nil
}

// drainAndClose empties the response body before closing so the underlying
// connection can be reused.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
