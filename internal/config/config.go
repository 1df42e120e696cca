package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures the settings required to boot the posture service.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Upstream  UpstreamConfig  `yaml:"upstream"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig controls gRPC listener behaviour.
type ServerConfig struct {
	Address         string        `yaml:"address"`
	MetricsAddress  string        `yaml:"metricsAddress"`
	GracefulTimeout time.Duration `yaml:"gracefulTimeout"`
	Reflection      bool          `yaml:"reflection"`
}

// UpstreamConfig configures access to the management API that owns templates and tenant data.
type UpstreamConfig struct {
	BaseURL             string        `yaml:"baseURL"`
	TemplatesPath       string        `yaml:"templatesPath"`
	OrganizationPath    string        `yaml:"organizationPath"`
	UserCountsPath      string        `yaml:"userCountsPath"`
	GraphRequestPath    string        `yaml:"graphRequestPath"`
	SharepointQuotaPath string        `yaml:"sharepointQuotaPath"`
	Timeout             time.Duration `yaml:"timeout"`
}

// CatalogConfig points at the optional standards catalog.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// DashboardConfig bounds summary assembly.
type DashboardConfig struct {
	BuildTimeout time.Duration `yaml:"buildTimeout"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Load initialises Config from a YAML file and optional environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("TENANT_POSTURE_CONFIG")
	}

	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s not found: %w", path, err)
			}
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Address:         ":50051",
			MetricsAddress:  ":2112",
			GracefulTimeout: 10 * time.Second,
			Reflection:      true,
		},
		Upstream: UpstreamConfig{
			TemplatesPath:       "/api/ListStandardTemplates",
			OrganizationPath:    "/api/ListOrg",
			UserCountsPath:      "/api/ListuserCounts",
			GraphRequestPath:    "/api/ListGraphRequest",
			SharepointQuotaPath: "/api/ListSharepointQuota",
			Timeout:             10 * time.Second,
		},
		Catalog:   CatalogConfig{Path: "configs/standards.yaml"},
		Dashboard: DashboardConfig{BuildTimeout: 30 * time.Second},
		Logging:   LoggingConfig{Level: "info", JSON: false},
	}
}

func (c Config) validate() error {
	if c.Server.Address == "" {
		return errors.New("server.address is required")
	}
	if c.Upstream.Timeout < 0 {
		return fmt.Errorf("upstream.timeout must not be negative, got %s", c.Upstream.Timeout)
	}
	if c.Dashboard.BuildTimeout < 0 {
		return fmt.Errorf("dashboard.buildTimeout must not be negative, got %s", c.Dashboard.BuildTimeout)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TENANT_POSTURE_SERVER_ADDRESS"); v != "" {
		cfg.Server.Address = v
	}
	if v := os.Getenv("TENANT_POSTURE_METRICS_ADDRESS"); v != "" {
		cfg.Server.MetricsAddress = v
	}
	if v := os.Getenv("TENANT_POSTURE_GRACEFUL_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.GracefulTimeout = d
		}
	}
	if v := os.Getenv("TENANT_POSTURE_REFLECTION"); v != "" {
		cfg.Server.Reflection = parseBool(v)
	}
	if v := os.Getenv("TENANT_POSTURE_UPSTREAM_URL"); v != "" {
		cfg.Upstream.BaseURL = v
	}
	if v := os.Getenv("TENANT_POSTURE_UPSTREAM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Upstream.Timeout = d
		}
	}
	if v := os.Getenv("TENANT_POSTURE_TEMPLATES_PATH"); v != "" {
		cfg.Upstream.TemplatesPath = v
	}
	if v := os.Getenv("TENANT_POSTURE_CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("TENANT_POSTURE_DASHBOARD_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Dashboard.BuildTimeout = d
		}
	}
	if v := os.Getenv("TENANT_POSTURE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TENANT_POSTURE_LOG_FORMAT"); v != "" {
		cfg.Logging.JSON = strings.EqualFold(v, "json")
	}
}

func parseBool(v string) bool {
	return strings.EqualFold(v, "true") || v == "1"
}
