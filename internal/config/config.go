// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"

	"github.com/staranto/togglctl/internal/factory"
)

const fileName = "togglctl.yaml"

var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrConfigIsDir     = errors.New("config path points to a directory")
	ErrUnknownProfile  = errors.New("unknown profile")
	ErrNoCredentials   = errors.New("no credentials configured")
	ErrKeyNotFound     = errors.New("key not found")
	ErrValueNotString  = errors.New("value is not a string")
	ErrValueNotInteger = errors.New("value is not an int")
)

// Config is the configuration for one profile. Obtain it with Factory; a
// Config built any other way fails every method with
// factory.ErrIllegalConstruction.
type Config struct {
	factory.Seal

	// Profile is empty for the default and the uncached configurations.
	Profile string
	// Source is the file the data was read from, if any.
	Source string
	Data   map[string]any

	token string
}

var configs = factory.New[string, *Config]("Config")

// check rejects any Config that configs did not build.
func (cfg *Config) check() error {
	if cfg == nil {
		return factory.ErrIllegalConstruction
	}
	return cfg.CheckFrom(configs)
}

type options struct {
	path  string
	data  map[string]any
	token string
}

// Option tweaks how a Config is built. Options are ignored when Factory
// returns an already cached Config.
type Option func(*options)

// WithPath reads the configuration from path instead of searching the
// standard locations.
func WithPath(path string) Option {
	return func(o *options) { o.path = path }
}

// WithData uses data as the parsed configuration, skipping the file.
func WithData(data map[string]any) Option {
	return func(o *options) { o.data = data }
}

// WithToken sets an API token that takes precedence over the file.
func WithToken(token string) Option {
	return func(o *options) { o.token = token }
}

// Factory returns the Config for profile. The omitted key yields the
// process-wide default Config, a value key one Config per profile name and
// the null key a fresh Config every call.
func Factory(profile factory.Key[string], opts ...Option) (*Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return configs.Get(profile, func(k factory.Key[string]) (*Config, error) {
		return newConfig(k, o)
	})
}

func newConfig(key factory.Key[string], o options) (*Config, error) {
	cfg := &Config{
		Data:  o.data,
		token: o.token,
	}
	cfg.Profile, _ = key.Value()

	if cfg.Data == nil {
		path, err := resolvePath(o.path)
		switch {
		case err == nil:
			data, err := Load(path)
			if err != nil {
				return nil, err
			}
			cfg.Source = path
			cfg.Data = data
		case errors.Is(err, ErrConfigNotFound) && o.path == "" && os.Getenv("TOGGL_CFG") == "":
			// Running without a file is fine as long as credentials come
			// from somewhere else.
			log.Debugf("no config file: %v", err)
		default:
			return nil, err
		}
	}

	if cfg.Profile != "" {
		if _, ok := lookup(cfg.Data, "profiles."+cfg.Profile); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProfile, cfg.Profile)
		}
	}

	log.Debugf("built config for profile %q from %q", cfg.Profile, cfg.Source)
	return cfg, nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (map[string]any, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var data map[string]any
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return data, nil
}

// get resolves a dotted key, first inside the profile namespace, then at the
// root and finally among the defaults.
func (cfg *Config) get(kspec string) (any, error) {
	candidateKeys := []string{kspec}
	if cfg.Profile != "" {
		candidateKeys = []string{"profiles." + cfg.Profile + "." + kspec, kspec}
	}

	for _, key := range candidateKeys {
		if v, ok := lookup(cfg.Data, key); ok {
			return v, nil
		}
	}

	if v, ok := Default(kspec); ok {
		return v, nil
	}

	return nil, fmt.Errorf("%w: no valid path found among %v", ErrKeyNotFound, candidateKeys)
}

func lookup(data map[string]any, key string) (any, bool) {
	var current any = data
	for _, k := range strings.Split(key, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[k]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// GetString returns the string at the dotted key, or defaultValue when the
// key is missing.
func (cfg *Config) GetString(key string, defaultValue ...string) (string, error) {
	if err := cfg.check(); err != nil {
		return "", err
	}

	val, err := cfg.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s: %w", key, ErrValueNotString)
	}

	return s, nil
}

// GetInt returns the int at the dotted key, or defaultValue when the key is
// missing.
func (cfg *Config) GetInt(key string, defaultValue ...int) (int, error) {
	if err := cfg.check(); err != nil {
		return 0, err
	}

	val, err := cfg.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	// YAML numbers may be unmarshaled as int/float64 depending on content.
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("%s: %w", key, ErrValueNotInteger)
	}
}

// Path returns the config file that would be used by the default profile, or
// an empty string when there is none.
func Path() string {
	p, _ := resolvePath("")
	return p
}

func resolvePath(explicit string) (string, error) {
	if explicit == "" {
		explicit = os.Getenv("TOGGL_CFG")
	}

	if explicit != "" {
		info, err := os.Stat(explicit)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrConfigNotFound, explicit)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%w: %s", ErrConfigIsDir, explicit)
		}
		return explicit, nil
	}

	candidates := []string{
		os.Getenv("XDG_CONFIG_HOME"),
		os.Getenv("APPDATA"),
		os.Getenv("HOME"),
	}

	for _, c := range candidates {
		if c == "" {
			continue
		}
		file := filepath.Join(c, fileName)
		if fileInfo, err := os.Stat(file); err == nil && !fileInfo.IsDir() {
			log.Debugf("using config file: %s", file)
			return file, nil
		}
	}

	return "", fmt.Errorf("%w in standard locations", ErrConfigNotFound)
}
