// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	httptypes "github.com/canonical/tenant-directory/internal/http/types"
	"github.com/canonical/tenant-directory/internal/types"
	"github.com/canonical/tenant-directory/pkg/authentication"
)

type directoryClient struct {
	endpoint string
	token    string

	client *http.Client
}

func newDirectoryClient(endpoint, token string) *directoryClient {
	c := new(directoryClient)

	c.endpoint = endpoint
	c.token = token
	c.client = &http.Client{
		Timeout:   30 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	return c
}

// do sends in as JSON and decodes the data field of the reply envelope into out.
func (c *directoryClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr httptypes.ErrorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("api error (status %d): %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to unmarshal response data: %w", err)
	}
	return nil
}

func (c *directoryClient) Login(ctx context.Context, loginID, secret string) (*authentication.LoginResponse, error) {
	out := new(authentication.LoginResponse)
	err := c.do(ctx, http.MethodPost, "/api/v0/sessions", authentication.LoginRequest{LoginID: loginID, Secret: secret}, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *directoryClient) ListRegistrations(ctx context.Context, role, tenantKey string) ([]*types.PendingRequest, error) {
	q := url.Values{}
	if role != "" {
		q.Set("role", role)
	}
	if tenantKey != "" {
		q.Set("tenant_key", tenantKey)
	}

	path := "/api/v0/registrations"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []*types.PendingRequest
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *directoryClient) ListFailedRegistrations(ctx context.Context) ([]*types.PendingRequest, error) {
	var out []*types.PendingRequest
	if err := c.do(ctx, http.MethodGet, "/api/v0/registrations/failed", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *directoryClient) ApproveRegistration(ctx context.Context, id string) (*types.Account, error) {
	out := new(types.Account)
	if err := c.do(ctx, http.MethodPost, "/api/v0/registrations/"+url.PathEscape(id)+"/approve", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *directoryClient) RejectRegistration(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/v0/registrations/"+url.PathEscape(id)+"/reject", nil, nil)
}

func (c *directoryClient) ListResets(ctx context.Context) ([]*types.ResetRequest, error) {
	var out []*types.ResetRequest
	if err := c.do(ctx, http.MethodGet, "/api/v0/resets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *directoryClient) ApproveReset(ctx context.Context, id string) (*types.ResetRequest, error) {
	out := new(types.ResetRequest)
	if err := c.do(ctx, http.MethodPost, "/api/v0/resets/"+url.PathEscape(id)+"/approve", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *directoryClient) RejectReset(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/v0/resets/"+url.PathEscape(id)+"/reject", nil, nil)
}
