package mysqlb

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"
)

// Config holds the connection settings of a Client.
type Config struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	// Params are extra DSN parameters (e.g. charset).
	Params map[string]string `yaml:"params,omitempty"`
	// Debug logs every statement.
	Debug bool `yaml:"debug,omitempty"`
	// SlowThreshold enables statement statistics and logs statements
	// slower than the threshold.
	SlowThreshold time.Duration `yaml:"slow_threshold,omitempty"`
}

// Validate checks that every connection option is set.
func (c Config) Validate() error {
	for _, o := range []struct {
		name string
		set  bool
	}{
		{"host", c.Host != ""},
		{"port", c.Port != 0},
		{"user", c.User != ""},
		{"password", c.Password != ""},
		{"database", c.Database != ""},
	} {
		if !o.set {
			return &ConfigError{Option: o.name, Err: ErrMissingOption}
		}
	}
	if c.Port < 0 || c.Port > 65535 {
		return &ConfigError{Option: "port", Err: ErrInvalidOption}
	}
	return nil
}

// MySQL returns the go-sql-driver configuration for c.
func (c Config) MySQL() *mysql.Config {
	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.User = c.User
	mc.Passwd = c.Password
	mc.DBName = c.Database
	mc.ParseTime = true
	if len(c.Params) > 0 {
		mc.Params = make(map[string]string, len(c.Params))
		for k, v := range c.Params {
			mc.Params[k] = v
		}
	}
	return mc
}

// DSN returns the data source name for c.
func (c Config) DSN() string {
	return c.MySQL().FormatDSN()
}

// LoadConfig reads a YAML configuration file.
//
//	host: localhost
//	port: 3306
//	user: root
//	password: root
//	database: app
//	slow_threshold: 200ms
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("mysqlb: read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("mysqlb: parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ConfigFromEnv reads DB_HOST, DB_PORT, DB_USER, DB_PASSWORD and DB_NAME.
// Host and port default to localhost:3306.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		Host:     envOr("DB_HOST", "localhost"),
		Port:     3306,
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Database: os.Getenv("DB_NAME"),
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, &ConfigError{Option: "port", Err: fmt.Errorf("%w: %w", ErrInvalidOption, err)}
		}
		cfg.Port = port
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
