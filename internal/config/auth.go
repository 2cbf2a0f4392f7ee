// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"strings"
)

// Credentials are the HTTP basic-auth pair sent to the API.
type Credentials struct {
	Username string
	Password string
}

// Auth resolves credentials. The precedence is:
//  1. WithToken
//  2. TOGGL_API_TOKEN
//  3. api_token in the config file
//  4. username and password in the config file
func (cfg *Config) Auth() (Credentials, error) {
	if err := cfg.check(); err != nil {
		return Credentials{}, err
	}

	token := cfg.token
	if token == "" {
		token = os.Getenv("TOGGL_API_TOKEN")
	}
	if token == "" {
		token, _ = cfg.GetString("api_token", "")
	}
	if token != "" {
		// The API takes the token as the username with a fixed password.
		return Credentials{Username: token, Password: "api_token"}, nil
	}

	user, _ := cfg.GetString("username", "")
	pass, _ := cfg.GetString("password", "")
	if user != "" && pass != "" {
		return Credentials{Username: user, Password: pass}, nil
	}

	return Credentials{}, ErrNoCredentials
}

// BaseURL returns the API root, always with a trailing slash.
func (cfg *Config) BaseURL() (string, error) {
	if err := cfg.check(); err != nil {
		return "", err
	}

	url := os.Getenv("TOGGL_URL")
	if url == "" {
		var err error
		if url, err = cfg.GetString("api_url"); err != nil {
			return "", err
		}
	}

	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	return url, nil
}

// Timezone returns the configured IANA zone name, falling back to TZ.
func (cfg *Config) Timezone() (string, error) {
	if err := cfg.check(); err != nil {
		return "", err
	}

	tz, _ := cfg.GetString("timezone", "")
	if tz == "" {
		tz = os.Getenv("TZ")
	}
	return tz, nil
}

// DefaultWorkspace returns the workspace id used when a command is not given
// one. Zero means none is configured.
func (cfg *Config) DefaultWorkspace() (int, error) {
	if err := cfg.check(); err != nil {
		return 0, err
	}

	ws, err := cfg.GetInt("default_wid", 0)
	if err != nil {
		return 0, err
	}
	return ws, nil
}
