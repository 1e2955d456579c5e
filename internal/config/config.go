package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string   `yaml:"port" env:"SERVER_PORT"`
		Mode           string   `yaml:"mode" env:"SERVER_MODE"`
		StoragePath    string   `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		AllowedOrigins []string `yaml:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS"`
		ReadTimeout    string   `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout   string   `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
	} `yaml:"redis"`

	Session struct {
		Secret     string `yaml:"secret" env:"SESSION_SECRET"`
		TTL        string `yaml:"ttl" env:"SESSION_TTL"`
		CookieName string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME"`
		Secure     bool   `yaml:"secure" env:"SESSION_SECURE"`
		Issuer     string `yaml:"issuer" env:"SESSION_ISSUER"`
		Store      string `yaml:"store" env:"SESSION_STORE"`
	} `yaml:"session"`

	Storage struct {
		Driver         string `yaml:"driver" env:"STORAGE_DRIVER"`
		MinioEndpoint  string `yaml:"minio_endpoint" env:"MINIO_ENDPOINT"`
		MinioAccessKey string `yaml:"minio_access_key" env:"MINIO_ACCESS_KEY"`
		MinioSecretKey string `yaml:"minio_secret_key" env:"MINIO_SECRET_KEY"`
		MinioBucket    string `yaml:"minio_bucket" env:"MINIO_BUCKET"`
		MinioUseSSL    bool   `yaml:"minio_use_ssl" env:"MINIO_USE_SSL"`
	} `yaml:"storage"`

	Gemini struct {
		APIKey          string `yaml:"api_key" env:"GEMINI_API_KEY"`
		Model           string `yaml:"model" env:"GEMINI_MODEL"`
		Timeout         string `yaml:"timeout" env:"GEMINI_TIMEOUT"`
		PDFAsAttachment bool   `yaml:"pdf_as_attachment" env:"GEMINI_PDF_AS_ATTACHMENT"`
	} `yaml:"gemini"`

	Upload struct {
		MaxFileBytes int64 `yaml:"max_file_bytes" env:"UPLOAD_MAX_FILE_BYTES"`
		MaxFiles     int   `yaml:"max_files" env:"UPLOAD_MAX_FILES"`
	} `yaml:"upload"`

	RateLimit struct {
		AuthRPS   float64 `yaml:"auth_rps" env:"RATE_LIMIT_AUTH_RPS"`
		AuthBurst int     `yaml:"auth_burst" env:"RATE_LIMIT_AUTH_BURST"`
	} `yaml:"rate_limit"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from .env, a YAML file and environment variables, in that order
func LoadConfig(configPath string) (*Config, error) {
	// A missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "5000"
	config.Server.Mode = "development"
	config.Server.StoragePath = "uploads"
	config.Server.AllowedOrigins = []string{"http://localhost:3000"}
	config.Server.ReadTimeout = "15s"
	config.Server.WriteTimeout = "90s"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "studyhub"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.Redis.Addr = "localhost:6379"

	config.Session.TTL = "24h"
	config.Session.CookieName = "studyhub_session"
	config.Session.Issuer = "studyhub"
	config.Session.Store = "redis"

	config.Storage.Driver = "local"
	config.Storage.MinioBucket = "studyhub-uploads"

	config.Gemini.Model = "gemini-2.5-flash"
	config.Gemini.Timeout = "45s"

	config.Upload.MaxFileBytes = 10 * 1024 * 1024
	config.Upload.MaxFiles = 10

	config.RateLimit.AuthRPS = 1
	config.RateLimit.AuthBurst = 5

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}

	if config.Gemini.APIKey == "" {
		return fmt.Errorf("gemini api key is required")
	}

	durations := map[string]string{
		"session ttl":          config.Session.TTL,
		"gemini timeout":       config.Gemini.Timeout,
		"server read timeout":  config.Server.ReadTimeout,
		"server write timeout": config.Server.WriteTimeout,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	// The write deadline must outlive a generation call or the response is cut off
	if config.WriteTimeout() <= config.GeminiTimeout() {
		return fmt.Errorf("server write timeout (%s) must exceed gemini timeout (%s)",
			config.Server.WriteTimeout, config.Gemini.Timeout)
	}

	switch strings.ToLower(config.Session.Store) {
	case "redis":
		if config.Redis.Addr == "" {
			return fmt.Errorf("redis address is required when session store is redis")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown session store %q", config.Session.Store)
	}

	switch strings.ToLower(config.Storage.Driver) {
	case "local":
	case "minio":
		if config.Storage.MinioEndpoint == "" || config.Storage.MinioBucket == "" {
			return fmt.Errorf("minio endpoint and bucket are required when storage driver is minio")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}

	if config.Upload.MaxFileBytes <= 0 || config.Upload.MaxFiles <= 0 {
		return fmt.Errorf("upload limits must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// SessionTTL returns the parsed session lifetime
func (c *Config) SessionTTL() time.Duration {
	return mustDuration(c.Session.TTL, 24*time.Hour)
}

// GeminiTimeout returns the parsed deadline for one model call
func (c *Config) GeminiTimeout() time.Duration {
	return mustDuration(c.Gemini.Timeout, 45*time.Second)
}

// ReadTimeout returns the parsed HTTP read timeout
func (c *Config) ReadTimeout() time.Duration {
	return mustDuration(c.Server.ReadTimeout, 15*time.Second)
}

// WriteTimeout returns the parsed HTTP write timeout
func (c *Config) WriteTimeout() time.Duration {
	return mustDuration(c.Server.WriteTimeout, 90*time.Second)
}

func mustDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
