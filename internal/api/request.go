// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/staranto/togglctl/internal/config"
	"github.com/staranto/togglctl/internal/factory"
)

type request struct {
	headers http.Header
	client  *http.Client
}

// Option customizes a single request.
type Option func(*request)

// WithHeaders replaces the default Content-Type header.
func WithHeaders(h http.Header) Option {
	return func(r *request) { r.headers = h }
}

// WithHTTPClient sends the request through c instead of
// http.DefaultClient.
func WithHTTPClient(c *http.Client) Option {
	return func(r *request) { r.client = c }
}

var methods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
}

// Request sends method to path, relative to the configured API root, and
// returns the parsed JSON response. A nil cfg means the default Config.
//
// data may be nil, a []byte or string sent as is, or anything else which is
// marshaled to JSON.
func Request(
	ctx context.Context,
	cfg *config.Config,
	method string,
	path string,
	data any,
	opts ...Option,
) (gjson.Result, error) {
	method = strings.ToUpper(method)
	if !methods[method] {
		return gjson.Result{}, fmt.Errorf("%w: %q", ErrMethodNotImplemented, method)
	}

	r := request{
		headers: http.Header{"Content-Type": []string{"application/json"}},
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(&r)
	}

	if cfg == nil {
		var err error
		if cfg, err = config.Factory(factory.Omitted[string]()); err != nil {
			return gjson.Result{}, fmt.Errorf("failed to load config: %w", err)
		}
	}

	base, err := cfg.BaseURL()
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to resolve API URL: %w", err)
	}
	creds, err := cfg.Auth()
	if err != nil {
		return gjson.Result{}, err
	}

	payload, err := encode(data)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to encode request data: %w", err)
	}

	url := base + strings.TrimPrefix(path, "/")
	log.Infof("Sending %s to '%s' data: %s", method, url, payload)

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range r.headers {
		req.Header[k] = v
	}
	req.SetBasicAuth(creds.Username, creds.Password)

	resp, err := r.client.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	var doc bytes.Buffer
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return gjson.Result{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return gjson.Result{}, newError(resp.StatusCode, doc.String())
	}

	raw := bytes.TrimSpace(doc.Bytes())
	if len(raw) == 0 {
		return gjson.Result{}, nil
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, fmt.Errorf("%w: %.64q", ErrInvalidResponse, raw)
	}

	log.Debugf("Response data:\n%s", gjson.GetBytes(raw, "@pretty").Raw)
	return gjson.ParseBytes(raw), nil
}

func encode(data any) ([]byte, error) {
	switch d := data.(type) {
	case nil:
		return nil, nil
	case []byte:
		return d, nil
	case string:
		return []byte(d), nil
	default:
		return json.Marshal(d)
	}
}

func Get(ctx context.Context, cfg *config.Config, path string, opts ...Option) (gjson.Result, error) {
	return Request(ctx, cfg, http.MethodGet, path, nil, opts...)
}

func Post(ctx context.Context, cfg *config.Config, path string, data any, opts ...Option) (gjson.Result, error) {
	return Request(ctx, cfg, http.MethodPost, path, data, opts...)
}

func Put(ctx context.Context, cfg *config.Config, path string, data any, opts ...Option) (gjson.Result, error) {
	return Request(ctx, cfg, http.MethodPut, path, data, opts...)
}

func Delete(ctx context.Context, cfg *config.Config, path string, opts ...Option) (gjson.Result, error) {
	return Request(ctx, cfg, http.MethodDelete, path, nil, opts...)
}
