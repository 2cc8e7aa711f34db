package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	sharedConfig "github.com/orris-inc/fitment/internal/shared/config"
)

const envPrefix = "FITMENT"

type Config struct {
	Server      sharedConfig.ServerConfig      `mapstructure:"server"`
	Database    sharedConfig.DatabaseConfig    `mapstructure:"database"`
	Logger      sharedConfig.LoggerConfig      `mapstructure:"logger"`
	Redis       sharedConfig.RedisConfig       `mapstructure:"redis"`
	Cache       sharedConfig.CacheConfig       `mapstructure:"cache"`
	RateLimit   sharedConfig.RateLimitConfig   `mapstructure:"ratelimit"`
	Diagnostics sharedConfig.DiagnosticsConfig `mapstructure:"diagnostics"`
	Metrics     sharedConfig.MetricsConfig     `mapstructure:"metrics"`
}

// legacyEnv maps the required store settings to the variable names the dashboard has always read.
var legacyEnv = map[string]string{
	"database.username": "ORA_USER",
	"database.password": "ORA_PASS",
	"database.address":  "ORA_DB",
}

// Load reads configs/config.yaml (or configPath when set) and the environment.
// A missing config file is not an error; the environment alone can configure the service.
func Load(env, configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, legacy := range legacyEnv {
		primary := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, primary, legacy); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Database.Address) == "" {
		missing = append(missing, "database.address")
	}
	switch c.Database.DriverName() {
	case sharedConfig.DriverMySQL, sharedConfig.DriverSQLite:
	default:
		return fmt.Errorf("unsupported database.driver %q (use mysql or sqlite)", c.Database.Driver)
	}

	if !c.Database.IsSQLite() && !c.Database.HasFullDSN() {
		if strings.TrimSpace(c.Database.Username) == "" {
			missing = append(missing, "database.username")
		}
		if c.Database.Password == "" {
			missing = append(missing, "database.password")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s (set %s_* or ORA_USER, ORA_PASS, ORA_DB)",
			strings.Join(missing, ", "), envPrefix)
	}

	if c.Database.MinIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.min_idle_conns (%d) exceeds database.max_open_conns (%d)",
			c.Database.MinIdleConns, c.Database.MaxOpenConns)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.allowed_origins", []string{})

	// Database defaults
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.username", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.address", "")
	v.SetDefault("database.min_idle_conns", 2)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("database.acquire_timeout", 30)
	v.SetDefault("database.slow_threshold_ms", 200)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cache.lookup_ttl_seconds", 300)

	v.SetDefault("ratelimit.enabled", false)
	v.SetDefault("ratelimit.requests", 120)
	v.SetDefault("ratelimit.window_seconds", 60)

	v.SetDefault("diagnostics.enabled", true)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}
