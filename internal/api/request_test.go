// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/togglctl/internal/config"
	"github.com/staranto/togglctl/internal/factory"
)

func newTestConfig(t *testing.T, url string) *config.Config {
	t.Helper()
	t.Setenv("TOGGL_URL", "")
	t.Setenv("TOGGL_API_TOKEN", "")

	cfg, err := config.Factory(factory.Null[string](), config.WithData(map[string]any{
		"api_url":   url,
		"api_token": "secret",
	}))
	require.NoError(t, err)
	return cfg
}

func TestRequest_SendsRequest(t *testing.T) {
	var gotMethod, gotPath, gotBody, gotType, gotUser, gotPass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		gotUser, gotPass, _ = r.BasicAuth()
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = w.Write([]byte(`{"id": 7, "description": "coding"}`))
	}))
	defer srv.Close()

	cfg := newTestConfig(t, srv.URL+"/api/v9")

	res, err := Post(context.Background(), cfg, "/workspaces/1/time_entries", map[string]any{"description": "coding"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/v9/workspaces/1/time_entries", gotPath)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, "secret", gotUser)
	assert.Equal(t, "api_token", gotPass)
	assert.JSONEq(t, `{"description":"coding"}`, gotBody)
	assert.Equal(t, int64(7), res.Get("id").Int())
	assert.Equal(t, "coding", res.Get("description").String())
}

func TestRequest_Methods(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cfg := newTestConfig(t, srv.URL)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want string
	}{
		{"get", func() error { _, err := Get(ctx, cfg, "me"); return err }, http.MethodGet},
		{"put", func() error { _, err := Put(ctx, cfg, "me", `{}`); return err }, http.MethodPut},
		{"delete", func() error { _, err := Delete(ctx, cfg, "me"); return err }, http.MethodDelete},
		{"lower case", func() error { _, err := Request(ctx, cfg, "post", "me", []byte(`{}`)); return err }, http.MethodPost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.call())
			assert.Equal(t, tt.want, gotMethod)
		})
	}
}

func TestRequest_UnsupportedMethod(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	cfg := newTestConfig(t, srv.URL)

	_, err := Request(context.Background(), cfg, "patch", "me", nil)
	assert.ErrorIs(t, err, ErrMethodNotImplemented)
	assert.Equal(t, int32(0), hits.Load())
}

func TestRequest_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "premium", status: http.StatusPaymentRequired, want: ErrPremium},
		{name: "auth", status: http.StatusForbidden, want: ErrAuthentication},
		{name: "throttled", status: http.StatusTooManyRequests, want: ErrThrottled},
		{name: "not found", status: http.StatusNotFound, want: ErrNotFound},
		{name: "internal", status: http.StatusInternalServerError, want: ErrServer},
		{name: "unavailable", status: http.StatusServiceUnavailable, want: ErrServer},
		{name: "bad request", status: http.StatusBadRequest, want: ErrAPI},
		{name: "conflict", status: http.StatusConflict, want: ErrAPI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("nope"))
			}))
			defer srv.Close()

			cfg := newTestConfig(t, srv.URL)

			_, err := Get(context.Background(), cfg, "me")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrAPI)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "nope", apiErr.Body)
			assert.NotEmpty(t, apiErr.Message)
		})
	}
}

func TestRequest_KindsAreExclusive(t *testing.T) {
	err := newError(http.StatusNotFound, "")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrServer)
	assert.NotErrorIs(t, err, ErrAuthentication)

	generic := newError(http.StatusTeapot, "short and stout")
	assert.Contains(t, generic.Error(), "418")
	assert.Contains(t, generic.Message, "short and stout")
}

func TestRequest_ResponseBodies(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
		exists  bool
	}{
		{name: "empty", body: "", exists: false},
		{name: "whitespace", body: "  \n", exists: false},
		{name: "null", body: "null", exists: true},
		{name: "not json", body: "<html>", wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			res, err := Get(context.Background(), newTestConfig(t, srv.URL), "me")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.exists, res.Exists())
		})
	}
}

func TestRequest_CustomHeaders(t *testing.T) {
	var gotType, gotExtra string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		gotExtra = r.Header.Get("X-Extra")
	}))
	defer srv.Close()

	_, err := Get(context.Background(), newTestConfig(t, srv.URL), "me",
		WithHeaders(http.Header{"X-Extra": []string{"1"}}),
		WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	assert.Empty(t, gotType)
	assert.Equal(t, "1", gotExtra)
}

func TestRequest_NoCredentials(t *testing.T) {
	t.Setenv("TOGGL_API_TOKEN", "")
	cfg, err := config.Factory(factory.Null[string](), config.WithData(map[string]any{}))
	require.NoError(t, err)

	_, err = Get(context.Background(), cfg, "me")
	assert.ErrorIs(t, err, config.ErrNoCredentials)
}

func TestRequest_DefaultConfig(t *testing.T) {
	var gotUser string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _, _ = r.BasicAuth()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	t.Setenv("TOGGL_CFG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("APPDATA", "")
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TOGGL_URL", srv.URL)
	t.Setenv("TOGGL_API_TOKEN", "from-env")

	_, err := Get(context.Background(), nil, "me")
	require.NoError(t, err)
	assert.Equal(t, "from-env", gotUser)
}
