package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Log     LogConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	storage, err := loadStorageConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Storage: storage, Log: logCfg}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8000"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8000" 或 "127.0.0.1:8000"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// StorageConfig 描述持久化存储配置。
type StorageConfig struct {
	Driver      string
	Path        string
	DSN         string
	BusyTimeout time.Duration
}

func loadStorageConfig() (StorageConfig, error) {
	driver := strings.ToLower(getEnvOrDefault("DB_DRIVER", DriverSQLite))
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return StorageConfig{}, fmt.Errorf("unsupported DB_DRIVER value: %q", driver)
	}

	busyMillis := 10000
	if override, err := parseOptionalIntEnv("DB_BUSY_TIMEOUT_MS"); err != nil {
		return StorageConfig{}, err
	} else if override != nil {
		if *override < 0 {
			return StorageConfig{}, fmt.Errorf("invalid DB_BUSY_TIMEOUT_MS value: %d", *override)
		}
		busyMillis = *override
	}

	cfg := StorageConfig{
		Driver:      driver,
		Path:        getEnvOrDefault("DB_PATH", "data/conversations.db"),
		DSN:         strings.TrimSpace(os.Getenv("DB_DSN")),
		BusyTimeout: time.Duration(busyMillis) * time.Millisecond,
	}
	if cfg.Driver == DriverPostgres && cfg.DSN == "" {
		return StorageConfig{}, fmt.Errorf("DB_DSN is required when DB_DRIVER=%s", DriverPostgres)
	}
	return cfg, nil
}

// LogConfig 描述日志输出配置。
type LogConfig struct {
	Level      string
	File       string
	Production bool
}

func loadLogConfig() (LogConfig, error) {
	env := strings.ToLower(getEnvOrDefault("APP_ENV", "development"))
	production, err := parseBoolEnv("LOG_JSON", env == "production")
	if err != nil {
		return LogConfig{}, err
	}

	return LogConfig{
		Level:      strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		File:       strings.TrimSpace(os.Getenv("LOG_FILE")),
		Production: production,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
