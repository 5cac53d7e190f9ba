package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var validEnvs = map[string]bool{
	"local": true,
	"alpha": true,
	"beta":  true,
	"prod":  true,
}

var validStorageDrivers = map[string]bool{
	"memory":   true,
	"file":     true,
	"postgres": true,
}

var validTokenSchemes = map[string]bool{
	"mock": true,
	"jwt":  true,
}

type Config struct {
	ServerPort string
	AppEnv     string
	LogLevel   string
	SeedDemo   bool
	Storage    StorageConfig
	Token      TokenConfig
	DB         DBConfig
}

type StorageConfig struct {
	// Driver selects the durable substrate: memory, file or postgres.
	Driver string
	// Path is the snapshot location for the file driver.
	Path string
}

type TokenConfig struct {
	// Scheme selects how bearer tokens are minted: mock (prefix + user id)
	// or jwt (HS256 signed).
	Scheme string
	Secret string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (d DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     d.Name,
		RawQuery: fmt.Sprintf("sslmode=%s", url.QueryEscape(d.SSLMode)),
	}
	return u.String()
}

func (c Config) ParseLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("invalid SERVER_PORT %q: %w", c.ServerPort, err)
	}
	if !validEnvs[c.AppEnv] {
		return fmt.Errorf("invalid APP_ENV %q: must be one of local, alpha, beta, prod", c.AppEnv)
	}
	if !validStorageDrivers[c.Storage.Driver] {
		return fmt.Errorf("invalid STORAGE_DRIVER %q: must be one of memory, file, postgres", c.Storage.Driver)
	}
	if !validTokenSchemes[c.Token.Scheme] {
		return fmt.Errorf("invalid TOKEN_SCHEME %q: must be mock or jwt", c.Token.Scheme)
	}
	if c.Token.Scheme == "jwt" && c.Token.Secret == "" {
		return fmt.Errorf("TOKEN_SECRET is required when TOKEN_SCHEME is jwt")
	}
	if c.Storage.Driver == "memory" && c.AppEnv != "local" {
		return fmt.Errorf("STORAGE_DRIVER memory must not be used in %s environment", c.AppEnv)
	}
	return nil
}

// Load reads configuration from the environment, after loading a .env file
// if one is present next to the process.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		ServerPort: envOrDefault("SERVER_PORT", "8080"),
		AppEnv:     envOrDefault("APP_ENV", "local"),
		LogLevel:   envOrDefault("LOG_LEVEL", "info"),
		SeedDemo:   strings.EqualFold(envOrDefault("SEED_DEMO", "true"), "true"),
		Storage: StorageConfig{
			Driver: envOrDefault("STORAGE_DRIVER", "file"),
			Path:   os.Getenv("STORAGE_PATH"),
		},
		Token: TokenConfig{
			Scheme: envOrDefault("TOKEN_SCHEME", "mock"),
			Secret: os.Getenv("TOKEN_SECRET"),
		},
		DB: DBConfig{
			Host:     envOrDefault("DB_HOST", "localhost"),
			Port:     envOrDefault("DB_PORT", "5432"),
			User:     envOrDefault("DB_USER", "taskboard"),
			Password: envOrDefault("DB_PASSWORD", "taskboard"),
			Name:     envOrDefault("DB_NAME", "taskboard"),
			SSLMode:  envOrDefault("DB_SSLMODE", "disable"),
		},
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
