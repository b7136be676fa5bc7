// Package config
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Interval        time.Duration `env:"SAMPLE_INTERVAL" validate:"gte=100ms"`
	AdapterSource   string        `env:"ADAPTER_SOURCE" validate:"oneof=gopsutil netlink"`
	ExcludeAdapters []string      `env:"EXCLUDE_ADAPTERS"`
	SmoothingWindow time.Duration `env:"SMOOTHING_WINDOW" validate:"gte=0"`

	Address        string   `env:"HTTP_ADDR" validate:"omitempty,hostname_port"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" validate:"dive,url"`
	JWTSecret      string   `env:"JWT_SECRET" validate:"omitempty,min=16"`

	Console      bool   `env:"CONSOLE"`
	AutostartDir string `env:"AUTOSTART_DIR" validate:"required"`

	LogLevel  string `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat string `env:"LOG_FORMAT" validate:"oneof=text json"`
}

const (
	SourceGopsutil = "gopsutil"
	SourceNetlink  = "netlink"
)

func Load() *Config {
	godotenv.Load()

	interval := time.Second
	if raw := os.Getenv("SAMPLE_INTERVAL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			interval = parsed
		}
	}

	source := strings.ToLower(os.Getenv("ADAPTER_SOURCE"))
	if source == "" {
		source = SourceGopsutil
	}

	window := 5 * time.Second
	if raw := os.Getenv("SMOOTHING_WINDOW"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed >= 0 {
			window = parsed
		}
	}

	addr, ok := os.LookupEnv("HTTP_ADDR")
	if !ok {
		addr = "127.0.0.1:3900"
	}

	console := true
	if raw := os.Getenv("CONSOLE"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			console = parsed
		}
	}

	autostartDir := os.Getenv("AUTOSTART_DIR")
	if autostartDir == "" {
		autostartDir = defaultAutostartDir()
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "text"
	}

	return &Config{
		Interval:        interval,
		AdapterSource:   source,
		ExcludeAdapters: splitList(os.Getenv("EXCLUDE_ADAPTERS")),
		SmoothingWindow: window,
		Address:         addr,
		AllowedOrigins:  splitList(os.Getenv("ALLOWED_ORIGINS")),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		Console:         console,
		AutostartDir:    autostartDir,
		LogLevel:        strings.ToLower(logLevel),
		LogFormat:       strings.ToLower(logFormat),
	}
}

func splitList(raw string) []string {
	var out []string
	for part := range strings.SplitSeq(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultAutostartDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "autostart")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "autostart")
	}
	return filepath.Join(os.TempDir(), "autostart")
}
