package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Store drivers. "sqlite3" is accepted as a spelling of DriverSQLite.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// NormalizeDriver maps a configured driver name to DriverMySQL or DriverSQLite.
// An empty name selects mysql; unknown names come back lowercased for the caller to reject.
func NormalizeDriver(name string) string {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "", DriverMySQL:
		return DriverMySQL
	case DriverSQLite, "sqlite3":
		return DriverSQLite
	default:
		return n
	}
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	// Address is host[:port]/database or a complete DSN for mysql, and a file path for sqlite
	Address         string `mapstructure:"address"`
	MinIdleConns    int    `mapstructure:"min_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	AcquireTimeout  int    `mapstructure:"acquire_timeout"`
	SlowThresholdMs int    `mapstructure:"slow_threshold_ms"`
}

func (d *DatabaseConfig) DriverName() string {
	return NormalizeDriver(d.Driver)
}

func (d *DatabaseConfig) IsSQLite() bool {
	return d.DriverName() == DriverSQLite
}

// HasFullDSN reports whether Address is already a complete mysql DSN carrying its own credentials.
func (d *DatabaseConfig) HasFullDSN() bool {
	if !strings.ContainsAny(d.Address, "@(") {
		return false
	}
	_, err := mysql.ParseDSN(d.Address)
	return err == nil
}

// GetDSN returns the mysql DSN. A complete DSN in Address is used unchanged; otherwise
// Address is read as host[:port]/database and combined with the credentials.
func (d *DatabaseConfig) GetDSN() string {
	if d.HasFullDSN() {
		return d.Address
	}

	hostPort, database, _ := strings.Cut(d.Address, "/")
	if !strings.Contains(hostPort, ":") {
		hostPort += ":3306"
	}

	cfg := mysql.NewConfig()
	cfg.User = d.Username
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = hostPort
	cfg.DBName = database
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

// QueryTimeout bounds connection acquisition plus execution of one query.
func (d *DatabaseConfig) QueryTimeout() time.Duration {
	return time.Duration(d.AcquireTimeout) * time.Second
}

func (d *DatabaseConfig) SlowThreshold() time.Duration {
	return time.Duration(d.SlowThresholdMs) * time.Millisecond
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type CacheConfig struct {
	LookupTTLSeconds int `mapstructure:"lookup_ttl_seconds"`
}

func (c *CacheConfig) LookupTTL() time.Duration {
	return time.Duration(c.LookupTTLSeconds) * time.Second
}

type RateLimitConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	Requests      int  `mapstructure:"requests"`
	WindowSeconds int  `mapstructure:"window_seconds"`
}

func (r *RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

type DiagnosticsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}
