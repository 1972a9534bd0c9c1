package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// Database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port               string   `yaml:"port" env:"SERVER_PORT" env-default:"8080" validate:"required,numeric"`
		Mode               string   `yaml:"mode" env:"SERVER_MODE" env-default:"development" validate:"oneof=development production test"`
		BaseURL            string   `yaml:"base_url" env:"SERVER_BASE_URL" env-default:"http://localhost:8080" validate:"required,url"`
		StoragePath        string   `yaml:"storage_path" env:"SERVER_STORAGE_PATH" env-default:"./uploads" validate:"required"`
		MaxAvatarSize      int64    `yaml:"max_avatar_size" env:"SERVER_MAX_AVATAR_SIZE" env-default:"5242880" validate:"gt=0"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins" env:"SERVER_CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
		LoginRateLimit     string   `yaml:"login_rate_limit" env:"SERVER_LOGIN_RATE_LIMIT" env-default:"10-M" validate:"required"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres" validate:"oneof=postgres sqlite"`
		Host            string `yaml:"host" env:"DB_HOST" env-default:"localhost" validate:"required_if=Driver postgres"`
		Port            string `yaml:"port" env:"DB_PORT" env-default:"5432"`
		User            string `yaml:"user" env:"DB_USER" env-default:"postgres"`
		Password        string `yaml:"password" env:"DB_PASSWORD" env-default:"postgres"`
		DBName          string `yaml:"dbname" env:"DB_NAME" env-default:"studentdesk"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"5" validate:"gte=0"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"20" validate:"gt=0"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"1h"`
		SQLitePath      string `yaml:"sqlite_path" env:"DB_SQLITE_PATH" env-default:"studentdesk.db" validate:"required_if=Driver sqlite"`
	} `yaml:"database"`

	JWT struct {
		Secret                       string `yaml:"secret" env:"JWT_SECRET" validate:"required"`
		AccessTokenExpiration        string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION" env-default:"1h"`
		StudentAccessTokenExpiration string `yaml:"student_access_token_expiration" env:"JWT_STUDENT_ACCESS_TOKEN_EXPIRATION" env-default:"720h"`
		RefreshTokenExpiration       string `yaml:"refresh_token_expiration" env:"JWT_REFRESH_TOKEN_EXPIRATION" env-default:"168h"`
		Issuer                       string `yaml:"issuer" env:"JWT_ISSUER" env-default:"studentdesk"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
		Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json" validate:"oneof=json text"`
	} `yaml:"logging"`

	Admin struct {
		DefaultUsername string `yaml:"default_username" env:"ADMIN_DEFAULT_USERNAME"`
		DefaultPassword string `yaml:"default_password" env:"ADMIN_DEFAULT_PASSWORD" validate:"required_with=DefaultUsername"`
	} `yaml:"admin"`
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error; environment variables and defaults still apply.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	if configPath != "" {
		file, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(file, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables win over the file, env-default fills what is still empty
	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if err := validator.New().Struct(config); err != nil {
		return err
	}

	durations := map[string]string{
		"JWT access token expiration":         config.JWT.AccessTokenExpiration,
		"JWT student access token expiration": config.JWT.StudentAccessTokenExpiration,
		"JWT refresh token expiration":        config.JWT.RefreshTokenExpiration,
		"database connection max lifetime":    config.Database.ConnMaxLifetime,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
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

// UploadsURL is the public prefix stored files are served under
func (c *Config) UploadsURL() string {
	return c.Server.BaseURL + "/uploads"
}

// Usage returns a description of the supported environment variables
func Usage() string {
	desc, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return ""
	}
	return desc
}
