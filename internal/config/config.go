package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// envKeyReplacer maps nested config keys to env var names (server.port -> SERVER_PORT).
var envKeyReplacer = strings.NewReplacer(".", "_")

// ServerConfig holds the fixture store's HTTP server settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutDownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	AllowedOrigins  string        `mapstructure:"allowed_origins"`
}

// DataConfig holds the JSON data file settings.
type DataConfig struct {
	FilePath        string        `mapstructure:"file_path"`
	PersistInterval time.Duration `mapstructure:"persist_interval"`
}

// ClientConfig holds the settings used by hirectl and the access layer.
type ClientConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	DelayMS int           `mapstructure:"delay_ms"`
}

// MiscConfig holds settings that do not belong anywhere else.
type MiscConfig struct {
	LogLevel string `mapstructure:"log_level"`
	GinMode  string `mapstructure:"gin_mode"`
}

// Config is the root configuration document.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Data   DataConfig   `mapstructure:"data"`
	Client ClientConfig `mapstructure:"client"`
	Misc   MiscConfig   `mapstructure:"misc"`
}

// LoadConfig reads config.yaml from the given paths (current dir when none are
// given), applies defaults and lets HIREDESK_* environment variables override
// everything, e.g. HIREDESK_SERVER_PORT=8080.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Defaults to allow running without a config file
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.request_timeout", 5*time.Second)
	v.SetDefault("server.allowed_origins", "*")
	v.SetDefault("data.file_path", "./data/candidates.json")
	v.SetDefault("data.persist_interval", 30*time.Second)
	v.SetDefault("client.base_url", "http://localhost:3001")
	v.SetDefault("client.timeout", 15*time.Second)
	v.SetDefault("client.delay_ms", 0)
	v.SetDefault("misc.log_level", "info")
	v.SetDefault("misc.gin_mode", "release")

	v.AutomaticEnv()
	v.SetEnvPrefix("HIREDESK")
	v.SetEnvKeyReplacer(envKeyReplacer)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// No config file is fine: defaults and env vars apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
