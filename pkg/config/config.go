// Copyright (c) 2025, The FoodKG Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads fkg and fkgd settings from an optional YAML file,
// FKG_* environment variables and built-in defaults, in decreasing order of
// precedence after explicit flags.
//
//	service:
//	  base_url: http://localhost:8080/api
//	  timeout: 30s
//	breaker:
//	  enabled: true
//	  trip_ratio: 0.6
//	server:
//	  port: 8080
//	log:
//	  level: info
//	catalog:
//	  path: ./recipes.yaml
//
// Nested keys map to environment variables by upper-casing and replacing
// dots with underscores, e.g. FKG_SERVICE_BASE_URL.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/foodkg/recipe-finder/pkg/defaults"
	"github.com/foodkg/recipe-finder/pkg/errors"
	"github.com/foodkg/recipe-finder/pkg/search"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "FKG"

	// FileName is the config file looked up in $HOME and the working directory.
	FileName = ".fkg"
)

// Config holds all runtime configuration.
type Config struct {
	Service ServiceConfig `mapstructure:"service" json:"service" yaml:"service"`
	Breaker BreakerConfig `mapstructure:"breaker" json:"breaker" yaml:"breaker"`
	Server  ServerConfig  `mapstructure:"server" json:"server" yaml:"server"`
	Log     LogConfig     `mapstructure:"log" json:"log" yaml:"log"`
	Catalog CatalogConfig `mapstructure:"catalog" json:"catalog" yaml:"catalog"`
}

// ServiceConfig locates the search service.
type ServiceConfig struct {
	BaseURL string        `mapstructure:"base_url" json:"baseUrl" yaml:"baseUrl"`
	Timeout time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout"`
}

// BreakerConfig holds configuration for circuit breaking
type BreakerConfig struct {
	Enabled     bool          `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	MaxRequests uint32        `mapstructure:"max_requests" json:"maxRequests" yaml:"maxRequests"`
	Interval    time.Duration `mapstructure:"interval" json:"interval" yaml:"interval"`
	Timeout     time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout"`
	TripRatio   float64       `mapstructure:"trip_ratio" json:"tripRatio" yaml:"tripRatio"`
	MinRequests uint32        `mapstructure:"min_requests" json:"minRequests" yaml:"minRequests"`
}

// ServerConfig holds fkgd listener settings.
type ServerConfig struct {
	Address         string        `mapstructure:"address" json:"address" yaml:"address"`
	Port            int           `mapstructure:"port" json:"port" yaml:"port"`
	RateLimit       float64       `mapstructure:"rate_limit" json:"rateLimit" yaml:"rateLimit"`
	RateLimitBurst  int           `mapstructure:"rate_limit_burst" json:"rateLimitBurst" yaml:"rateLimitBurst"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" json:"shutdownTimeout" yaml:"shutdownTimeout"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level" json:"level" yaml:"level"`
}

// CatalogConfig points fkgd at a dataset file. Empty uses the embedded one.
type CatalogConfig struct {
	Path string `mapstructure:"path" json:"path" yaml:"path"`
}

// Load reads configuration. A non-empty path must exist; otherwise
// $HOME/.fkg.yaml and ./.fkg.yaml are tried and silently skipped if absent.
func Load(path string) (*Config, error) {
	return load(viper.New(), path)
}

func load(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to read config file", err,
				map[string]any{"path": path})
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(FileName)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !stderrors.As(err, &notFound) {
				return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to read config file", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "unable to decode config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.base_url", search.DefaultBaseURL)
	v.SetDefault("service.timeout", defaults.HTTPClientTimeout)

	v.SetDefault("breaker.enabled", true)
	v.SetDefault("breaker.max_requests", defaults.BreakerMaxRequests)
	v.SetDefault("breaker.interval", defaults.BreakerInterval)
	v.SetDefault("breaker.timeout", defaults.BreakerOpenTimeout)
	v.SetDefault("breaker.trip_ratio", defaults.BreakerTripRatio)
	v.SetDefault("breaker.min_requests", defaults.BreakerMinRequests)

	v.SetDefault("server.address", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 100)
	v.SetDefault("server.rate_limit_burst", 200)
	v.SetDefault("server.shutdown_timeout", defaults.ServerShutdownTimeout)

	v.SetDefault("log.level", "info")
	v.SetDefault("catalog.path", "")
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return cfg
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Service.BaseURL) == "":
		return errors.New(errors.ErrCodeInvalidRequest, "service.base_url is required")
	case c.Service.Timeout < 0:
		return errors.New(errors.ErrCodeInvalidRequest, "service.timeout must not be negative")
	case c.Breaker.TripRatio <= 0 || c.Breaker.TripRatio > 1:
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "breaker.trip_ratio must be in (0, 1]",
			map[string]any{"value": c.Breaker.TripRatio})
	case c.Server.Port < 0 || c.Server.Port > 65535:
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "server.port out of range",
			map[string]any{"value": c.Server.Port})
	case c.Server.RateLimit <= 0 || c.Server.RateLimitBurst <= 0:
		return errors.New(errors.ErrCodeInvalidRequest, "server.rate_limit and server.rate_limit_burst must be positive")
	}
	return nil
}

// Search returns the search client settings.
func (c *Config) Search() search.Config {
	return search.Config{
		BaseURL: c.Service.BaseURL,
		Timeout: c.Service.Timeout,
		Breaker: search.BreakerConfig{
			Enabled:     c.Breaker.Enabled,
			MaxRequests: c.Breaker.MaxRequests,
			Interval:    c.Breaker.Interval,
			OpenTimeout: c.Breaker.Timeout,
			TripRatio:   c.Breaker.TripRatio,
			MinRequests: c.Breaker.MinRequests,
		},
	}
}
