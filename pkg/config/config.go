package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mcclellann/branchdesk/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const envPrefix = "BRANCHDESK_"

// Storage drivers understood by the store factory.
const (
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type StorageConfig struct {
	Driver     string         `yaml:"driver"`
	SQLitePath string         `yaml:"sqlite_path"`
	Redis      RedisConfig    `yaml:"redis"`
	Postgres   PostgresConfig `yaml:"postgres"`
}

// BranchConfig holds the office-specific settings: display locale, the
// loan officer roster in display order, and how often deposits are checked
// for maturity. SeedPath optionally names a JSON file of starting records for
// slots that storage has never saved.
type BranchConfig struct {
	Locale               string   `yaml:"locale"`
	Officers             []string `yaml:"officers"`
	MaturityCheckMinutes int      `yaml:"maturity_check_minutes"`
	SeedPath             string   `yaml:"seed_path"`
}

// AppConfig is the main config struct that holds all configs
type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Logging LogConfig     `yaml:"logging"`
	Branch  BranchConfig  `yaml:"branch"`
}

func (c BranchConfig) MaturityCheckInterval() time.Duration {
	return time.Duration(c.MaturityCheckMinutes) * time.Minute
}

func assignDefaultConfigValues(cfg *AppConfig) *AppConfig {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = DriverSQLite
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = "branchdesk.db"
	}
	if cfg.Storage.Redis.KeyPrefix == "" {
		cfg.Storage.Redis.KeyPrefix = "branchdesk:"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Branch.Locale == "" {
		cfg.Branch.Locale = "en"
	}
	if cfg.Branch.MaturityCheckMinutes == 0 {
		cfg.Branch.MaturityCheckMinutes = 60
	}

	// environment overrides
	cfg.Server.Port = GetEnvOrDefaultAsInt(envPrefix+"SERVER_PORT", cfg.Server.Port)
	cfg.Storage.Driver = GetEnvOrDefaultAsString(envPrefix+"STORAGE_DRIVER", cfg.Storage.Driver)
	cfg.Storage.SQLitePath = GetEnvOrDefaultAsString(envPrefix+"SQLITE_PATH", cfg.Storage.SQLitePath)
	cfg.Storage.Redis.Addr = GetEnvOrDefaultAsString(envPrefix+"REDIS_ADDR", cfg.Storage.Redis.Addr)
	cfg.Storage.Redis.Password = GetEnvOrDefaultAsString(envPrefix+"REDIS_PASSWORD", cfg.Storage.Redis.Password)
	cfg.Storage.Redis.DB = GetEnvOrDefaultAsInt(envPrefix+"REDIS_DB", cfg.Storage.Redis.DB)
	cfg.Storage.Redis.KeyPrefix = GetEnvOrDefaultAsString(envPrefix+"REDIS_KEY_PREFIX", cfg.Storage.Redis.KeyPrefix)
	cfg.Storage.Postgres.DSN = GetEnvOrDefaultAsString(envPrefix+"POSTGRES_DSN", cfg.Storage.Postgres.DSN)
	cfg.Logging.Level = GetEnvOrDefaultAsString(envPrefix+"LOG_LEVEL", cfg.Logging.Level)
	cfg.Branch.Locale = GetEnvOrDefaultAsString(envPrefix+"LOCALE", cfg.Branch.Locale)
	cfg.Branch.Officers = GetEnvOrDefaultAsList(envPrefix+"OFFICERS", cfg.Branch.Officers)
	cfg.Branch.MaturityCheckMinutes = GetEnvOrDefaultAsInt(envPrefix+"MATURITY_CHECK_MINUTES", cfg.Branch.MaturityCheckMinutes)
	cfg.Branch.SeedPath = GetEnvOrDefaultAsString(envPrefix+"SEED_PATH", cfg.Branch.SeedPath)

	return cfg
}

// LoadFromConfigFilePath reads the YAML file, applies defaults and
// environment overrides, then validates the result.
func LoadFromConfigFilePath(configPath string) (*AppConfig, error) {
	// #nosec G304: the path comes from the operator
	data, err := os.ReadFile(configPath)
	if err != nil {
		logger.Error("Failed to read config file", err, zap.String("path", configPath))
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("Failed to unmarshal config", err)
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	defaultCfg := assignDefaultConfigValues(&cfg)

	if err := Validate(defaultCfg); err != nil {
		logger.Error("Config validation failed", err)
		return nil, err
	}

	logger.Info("Configuration loaded successfully", zap.String("path", configPath))
	return defaultCfg, nil
}

// LoadFromConfig loads an optional .env file, then the YAML file named by
// BRANCHDESK_CONFIG_PATH (default configs/config.yaml).
func LoadFromConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	configPath := GetEnvOrDefaultAsString(envPrefix+"CONFIG_PATH", "configs/config.yaml")
	cfg, err := LoadFromConfigFilePath(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func Validate(cfg *AppConfig) error {
	var errs []error

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port))
	}

	switch cfg.Storage.Driver {
	case DriverSQLite:
		if strings.TrimSpace(cfg.Storage.SQLitePath) == "" {
			errs = append(errs, errors.New("storage.sqlite_path is required for the sqlite driver"))
		}
	case DriverRedis:
		if strings.TrimSpace(cfg.Storage.Redis.Addr) == "" {
			errs = append(errs, errors.New("storage.redis.addr is required for the redis driver"))
		}
		if cfg.Storage.Redis.DB < 0 {
			errs = append(errs, fmt.Errorf("storage.redis.db must not be negative, got %d", cfg.Storage.Redis.DB))
		}
	case DriverPostgres:
		if strings.TrimSpace(cfg.Storage.Postgres.DSN) == "" {
			errs = append(errs, errors.New("storage.postgres.dsn is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver must be one of sqlite, redis, postgres, got %q", cfg.Storage.Driver))
	}

	if _, err := language.Parse(cfg.Branch.Locale); err != nil {
		errs = append(errs, fmt.Errorf("branch.locale %q is not a valid language tag: %w", cfg.Branch.Locale, err))
	}

	if len(cfg.Branch.Officers) == 0 {
		errs = append(errs, errors.New("branch.officers must list at least one officer"))
	}
	seen := make(map[string]bool, len(cfg.Branch.Officers))
	for i, name := range cfg.Branch.Officers {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Errorf("branch.officers[%d] is blank", i))
			continue
		}
		if seen[name] {
			errs = append(errs, fmt.Errorf("branch.officers lists %q twice", name))
		}
		seen[name] = true
	}

	if cfg.Branch.MaturityCheckMinutes < 1 {
		errs = append(errs, fmt.Errorf("branch.maturity_check_minutes must be positive, got %d", cfg.Branch.MaturityCheckMinutes))
	}
	if cfg.Branch.SeedPath != "" {
		if _, err := os.Stat(cfg.Branch.SeedPath); err != nil {
			errs = append(errs, fmt.Errorf("branch.seed_path: %w", err))
		}
	}

	return errors.Join(errs...)
}

// GetEnvOrDefaultAsInt returns the value of the given env variable
// as an int or the default value if not set or invalid.
func GetEnvOrDefaultAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		return defaultValue
	}
	return value
}

func GetEnvOrDefaultAsString(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		if strings.TrimSpace(val) != "" {
			return val
		}
	}
	return defaultVal
}

// GetEnvOrDefaultAsList splits a comma-separated env variable, dropping
// blank entries.
func GetEnvOrDefaultAsList(key string, defaultVal []string) []string {
	val := GetEnvOrDefaultAsString(key, "")
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
