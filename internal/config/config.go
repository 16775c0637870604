package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config is the server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Site     SiteConfig     `yaml:"site"`
	Proxy    ProxyConfig    `yaml:"proxy"`
}

type ServerConfig struct {
	Port        string   `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type UpstreamConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"` // Default: 30
}

type SiteConfig struct {
	BaseURL string `yaml:"base_url"` // public site used for recipient and award links
}

type ProxyConfig struct {
	MaxBody     string   `yaml:"max_body"` // echo BodyLimit syntax, e.g. "1M"
	AllowedKeys []string `yaml:"allowed_keys,omitempty"`
}

// Load reads the embedded defaults, then the optional file at path, then
// environment overrides. ${VAR} references inside YAML are expanded.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := decode(defaultsYAML, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := decode(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

func decode(data []byte, cfg *Config) error {
	expanded := os.ExpandEnv(string(data))
	return yaml.Unmarshal([]byte(expanded), cfg)
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				c.Server.CORSOrigins = append(c.Server.CORSOrigins, o)
			}
		}
	}
	if v := os.Getenv("USASPENDING_API_URL"); v != "" {
		c.Upstream.BaseURL = v
	}
	if v := os.Getenv("USASPENDING_SITE_URL"); v != "" {
		c.Site.BaseURL = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8081"
	}
	if c.Upstream.BaseURL == "" {
		c.Upstream.BaseURL = "https://api.usaspending.gov"
	}
	if c.Upstream.TimeoutSeconds <= 0 {
		c.Upstream.TimeoutSeconds = 30
	}
	if c.Site.BaseURL == "" {
		c.Site.BaseURL = "https://www.usaspending.gov"
	}
	if c.Proxy.MaxBody == "" {
		c.Proxy.MaxBody = "1M"
	}
}
