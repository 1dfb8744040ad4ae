package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultBaseURL = "http://localhost:8000"

	// BaseURLEnv selects the backend base URL and wins over the config file.
	BaseURLEnv = "API_BASE_URL"
)

type Config struct {
	Gateway    GatewayConfig    `mapstructure:"gateway"`
	Session    SessionConfig    `mapstructure:"session"`
	Log        LogConfig        `mapstructure:"log"`
	MockServer MockServerConfig `mapstructure:"mock_server"`
}

type GatewayConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// Timeout of zero waits for the backend indefinitely.
	Timeout time.Duration `mapstructure:"timeout"`
}

type SessionConfig struct {
	Type    string `mapstructure:"type"` // memory | disk
	DataDir string `mapstructure:"data_dir"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MockServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORS         CORSConfig    `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("gateway.base_url", DefaultBaseURL)
	v.SetDefault("gateway.timeout", time.Duration(0))
	v.SetDefault("session.type", "memory")
	v.SetDefault("session.data_dir", "./data")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("mock_server.port", 8000)
	v.SetDefault("mock_server.read_timeout", 30*time.Second)
	v.SetDefault("mock_server.write_timeout", 30*time.Second)
	v.SetDefault("mock_server.cors.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("mock_server.cors.allowed_methods", []string{"GET", "POST", "PUT", "OPTIONS"})
	v.SetDefault("mock_server.cors.allowed_headers", []string{"Origin", "Content-Type", "Accept", "Authorization"})
	v.SetDefault("mock_server.cors.allow_credentials", true)
	v.SetDefault("mock_server.cors.max_age", 600)
}

// Load reads configPath when it is non-empty, then applies GATEWAY_* and
// API_BASE_URL from the environment on top of the defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("GATEWAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if baseURL := os.Getenv(BaseURLEnv); baseURL != "" {
		cfg.Gateway.BaseURL = baseURL
	}
	cfg.Gateway.BaseURL = strings.TrimRight(cfg.Gateway.BaseURL, "/")
	if cfg.Gateway.BaseURL == "" {
		cfg.Gateway.BaseURL = DefaultBaseURL
	}

	return cfg, nil
}

// Default returns the built-in configuration without reading files or the
// environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	cfg := &Config{}
	// Defaults alone always decode.
	_ = v.Unmarshal(cfg)
	return cfg
}
