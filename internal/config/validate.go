package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// Validate checks the config for invalid or missing values. Returns a
// multi-error with all problems found.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.ListenAddr == "" {
		errs = append(errs, "listen_addr is required")
	} else if _, _, err := net.SplitHostPort(cfg.ListenAddr); err != nil {
		errs = append(errs, fmt.Sprintf("listen_addr %q must be host:port", cfg.ListenAddr))
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("log_format must be json or text, got %q", cfg.LogFormat))
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log_level must be debug, info, warn or error, got %q", cfg.LogLevel))
	}
	if cfg.LogBufferSize < 0 {
		errs = append(errs, "log_buffer_size must be >= 0")
	}
	if cfg.TimingPrecision < 0 || cfg.TimingPrecision > 9 {
		errs = append(errs, "timing_precision must be between 0 and 9")
	}
	if cfg.ReadTimeoutSeconds < 0 {
		errs = append(errs, "read_timeout_seconds must be >= 0")
	}
	if cfg.IdleTimeoutSeconds < 0 {
		errs = append(errs, "idle_timeout_seconds must be >= 0")
	}
	if cfg.ShutdownTimeoutSeconds < 0 {
		errs = append(errs, "shutdown_timeout_seconds must be >= 0")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed: " + strings.Join(errs, "; "))
	}
	return nil
}
