package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	ListenAddr             string   `yaml:"listen_addr"`
	Greeting               string   `yaml:"greeting"`
	CORSOrigins            []string `yaml:"cors_origins"`
	LogFormat              string   `yaml:"log_format"`
	LogLevel               string   `yaml:"log_level"`
	LogBufferSize          int      `yaml:"log_buffer_size"`
	TimingPrecision        int      `yaml:"timing_precision"`
	MetricsEnabled         bool     `yaml:"metrics_enabled"`
	ReadTimeoutSeconds     int      `yaml:"read_timeout_seconds"`
	IdleTimeoutSeconds     int      `yaml:"idle_timeout_seconds"`
	ShutdownTimeoutSeconds int      `yaml:"shutdown_timeout_seconds"`
}

// Default returns the configuration used when no file or env override is set.
func Default() *Config {
	return &Config{
		ListenAddr:             "127.0.0.1:3000",
		Greeting:               "Hello World",
		LogFormat:              "json",
		LogLevel:               "info",
		LogBufferSize:          10000,
		TimingPrecision:        3,
		ReadTimeoutSeconds:     30,
		IdleTimeoutSeconds:     120,
		ShutdownTimeoutSeconds: 15,
	}
}

// Load reads configuration from config.yaml and overrides with environment variables.
func Load() (*Config, error) {
	configPath := os.Getenv("REQTIMER_CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	return LoadFile(configPath)
}

// LoadFile is Load with an explicit path. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	overrideFromEnv(cfg)
	return cfg, nil
}

func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("REQTIMER_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("REQTIMER_GREETING"); v != "" {
		cfg.Greeting = v
	}
	if v := os.Getenv("REQTIMER_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("REQTIMER_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("REQTIMER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("REQTIMER_LOG_BUFFER_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.LogBufferSize = n
		}
	}
	if v := os.Getenv("REQTIMER_TIMING_PRECISION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimingPrecision = n
		}
	}
	if v := os.Getenv("REQTIMER_METRICS_ENABLED"); v != "" {
		cfg.MetricsEnabled = v == "true" || v == "1"
	}
	if v := os.Getenv("REQTIMER_READ_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ReadTimeoutSeconds = n
		}
	}
	if v := os.Getenv("REQTIMER_IDLE_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.IdleTimeoutSeconds = n
		}
	}
	if v := os.Getenv("REQTIMER_SHUTDOWN_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ShutdownTimeoutSeconds = n
		}
	}
}
