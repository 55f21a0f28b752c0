package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// SELENIUMGUIDE_SERVER_PORT.
const EnvPrefix = "SELENIUMGUIDE"

// ServerConfig HTTP server settings
type ServerConfig struct {
	Host string     `mapstructure:"host" json:"host"`
	Port int        `mapstructure:"port" json:"port"`
	Mode string     `mapstructure:"mode" json:"mode"` // gin mode: debug, release, test
	CORS CORSConfig `mapstructure:"cors" json:"cors"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CORSConfig cross-origin settings
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins" json:"allowOrigins"`
}

// ExportConfig controls generated files
type ExportConfig struct {
	OutputDir     string `mapstructure:"output_dir" json:"outputDir"`
	DefaultFormat string `mapstructure:"default_format" json:"defaultFormat"`
	Concurrency   int    `mapstructure:"concurrency" json:"concurrency"` // parallel exports in export-all
}

// HistoryConfig selects where export history is stored
type HistoryConfig struct {
	Enabled     bool   `mapstructure:"enabled" json:"enabled"`
	Engine      string `mapstructure:"engine" json:"engine"` // sqlite or mysql
	Path        string `mapstructure:"path" json:"path"`     // sqlite file, ":memory:" allowed
	DSN         string `mapstructure:"dsn" json:"dsn,omitempty"`
	MaxRetries  int    `mapstructure:"max_retries" json:"maxRetries"`
	RetryBaseMs int    `mapstructure:"retry_base_ms" json:"retryBaseMs"`
}

// LogConfig logging settings
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"` // console or json
	Dir    string `mapstructure:"dir" json:"dir"`       // empty disables the log file
}

// Config structure
type Config struct {
	Language    string        `mapstructure:"language" json:"language"`
	DetailedLog bool          `mapstructure:"detailed_log" json:"detailedLog"`
	Server      ServerConfig  `mapstructure:"server" json:"server"`
	Export      ExportConfig  `mapstructure:"export" json:"export"`
	History     HistoryConfig `mapstructure:"history" json:"history"`
	Log         LogConfig     `mapstructure:"log" json:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("language", "en")
	v.SetDefault("detailed_log", false)

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("export.output_dir", "exports")
	v.SetDefault("export.default_format", "pptx")
	v.SetDefault("export.concurrency", 4)

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.engine", "sqlite")
	v.SetDefault("history.path", "seleniumguide.db")
	v.SetDefault("history.dsn", "")
	v.SetDefault("history.max_retries", 3)
	v.SetDefault("history.retry_base_ms", 100)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.dir", "")
}

// Default returns the built-in configuration without reading files or the
// environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return &cfg
}

// Load reads configuration from file and environment.
// Precedence: environment > config file > defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("seleniumguide")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// no config file: defaults and environment only
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port must be between 1 and 65535")
	}
	switch c.Language {
	case "en", "zh":
	default:
		return fmt.Errorf("invalid config: language %q, expected en or zh", c.Language)
	}
	switch c.Server.Mode {
	case "", "debug", "release", "test":
	default:
		return fmt.Errorf("invalid config: server.mode %q, expected debug, release or test", c.Server.Mode)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid config: log.format %q, expected console or json", c.Log.Format)
	}
	if c.Export.Concurrency < 1 {
		return fmt.Errorf("invalid config: export.concurrency must be at least 1")
	}
	if c.History.Enabled {
		switch c.History.Engine {
		case "sqlite":
			if c.History.Path == "" {
				return fmt.Errorf("invalid config: history.path is required for sqlite")
			}
		case "mysql":
			if c.History.DSN == "" {
				return fmt.Errorf("invalid config: history.dsn is required for mysql")
			}
		default:
			return fmt.Errorf("invalid config: history.engine %q, expected sqlite or mysql", c.History.Engine)
		}
	}
	return nil
}
