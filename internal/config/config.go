package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port            int               `yaml:"port"`
		AllowedOrigins  []string          `yaml:"allowedOrigins"`
		ShutdownTimeout time.Duration     `yaml:"shutdownTimeout"`
		AdminKeys       map[string]string `yaml:"adminKeys"` // name -> bearer key
		// CIDRs or IPs whose X-Forwarded-For / X-Real-IP headers are honored
		TrustedProxies []string `yaml:"trustedProxies"`
		// analyze endpoint only
		RateLimit struct {
			Capacity   int `yaml:"capacity"`
			RefillRate int `yaml:"refillRate"`
		} `yaml:"rateLimit"`
	} `yaml:"server"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // json | console
	} `yaml:"log"`

	Database struct {
		Driver   string `yaml:"driver"` // mysql | postgres | sqlite
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"`
		Path     string `yaml:"path"` // sqlite file
	} `yaml:"database"`

	Redis struct {
		Address  string        `yaml:"address"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		TTL      time.Duration `yaml:"ttl"`
	} `yaml:"redis"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	AI struct {
		Provider string        `yaml:"provider"` // openai | anthropic
		APIKey   string        `yaml:"apiKey"`
		Model    string        `yaml:"model"`
		BaseURL  string        `yaml:"baseURL"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"ai"`

	Analysis struct {
		UseAI              bool `yaml:"useAI"`
		RequireIndustry    bool `yaml:"requireIndustry"`
		PaidMetricsVisible bool `yaml:"paidMetricsVisible"`
	} `yaml:"analysis"`

	Geo struct {
		BaseURL string        `yaml:"baseURL"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"geo"`

	Search struct {
		BaseURL  string        `yaml:"baseURL"`
		APIKey   string        `yaml:"apiKey"`
		EngineID string        `yaml:"engineID"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"search"`

	Webhooks struct {
		AnalysisURL string        `yaml:"analysisURL"`
		PurchaseURL string        `yaml:"purchaseURL"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"webhooks"`
}

// Load reads the YAML file at path. A .env file next to the working directory
// is loaded first so ${VAR} placeholders in the YAML can refer to it.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes raw YAML, expands ${VAR} placeholders and applies defaults.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Server.RateLimit.Capacity == 0 {
		c.Server.RateLimit.Capacity = 5
	}
	if c.Server.RateLimit.RefillRate == 0 {
		c.Server.RateLimit.RefillRate = 1
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "mysql"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.Path == "" {
		c.Database.Path = "data/waitlist.db"
	}
	if c.Redis.TTL == 0 {
		c.Redis.TTL = 6 * time.Hour
	}
	if c.AI.Provider == "" {
		c.AI.Provider = "openai"
	}
	if c.AI.Timeout == 0 {
		c.AI.Timeout = 90 * time.Second
	}
	if c.Geo.BaseURL == "" {
		c.Geo.BaseURL = "https://ipapi.co"
	}
	if c.Geo.Timeout == 0 {
		c.Geo.Timeout = 5 * time.Second
	}
	if c.Search.BaseURL == "" {
		c.Search.BaseURL = "https://www.googleapis.com/customsearch/v1"
	}
	if c.Search.Timeout == 0 {
		c.Search.Timeout = 10 * time.Second
	}
	if c.Webhooks.Timeout == 0 {
		c.Webhooks.Timeout = 10 * time.Second
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("config: unknown database driver %q (allowed: mysql, postgres, sqlite)", c.Database.Driver)
	}
	switch c.AI.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("config: unknown ai provider %q (allowed: openai, anthropic)", c.AI.Provider)
	}
	for _, p := range c.Server.TrustedProxies {
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				return fmt.Errorf("config: invalid server.trustedProxies entry %q", p)
			}
		}
	}
	if c.Analysis.UseAI && c.AI.APIKey == "" {
		return fmt.Errorf("config: ai.apiKey is required when analysis.useAI is enabled")
	}
	return nil
}

// MySQLDSN builds the go-sql-driver DSN.
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// PostgresDSN builds the lib/pq connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SearchEnabled reports whether Google Custom Search credentials are set.
func (c *Config) SearchEnabled() bool {
	return c.Search.APIKey != "" && c.Search.EngineID != ""
}
