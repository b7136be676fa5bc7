package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SAMPLE_INTERVAL", "ADAPTER_SOURCE", "EXCLUDE_ADAPTERS", "SMOOTHING_WINDOW",
		"ALLOWED_ORIGINS", "JWT_SECRET", "CONSOLE", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("AUTOSTART_DIR", t.TempDir())
}

func TestConfig_Load_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg := Load()

	require.Equal(t, time.Second, cfg.Interval)
	require.Equal(t, SourceGopsutil, cfg.AdapterSource)
	require.Empty(t, cfg.ExcludeAdapters)
	require.Equal(t, 5*time.Second, cfg.SmoothingWindow)
	require.True(t, cfg.Console)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Load_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("SAMPLE_INTERVAL", "500ms")
	t.Setenv("ADAPTER_SOURCE", "NETLINK")
	t.Setenv("EXCLUDE_ADAPTERS", "vpn, lab* ,")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("CONSOLE", "false")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg := Load()

	require.Equal(t, 500*time.Millisecond, cfg.Interval)
	require.Equal(t, SourceNetlink, cfg.AdapterSource)
	require.Equal(t, []string{"vpn", "lab*"}, cfg.ExcludeAdapters)
	require.Empty(t, cfg.Address)
	require.False(t, cfg.Console)
	require.Equal(t, "debug", cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Load_BadDurationFallsBack(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("SAMPLE_INTERVAL", "soon")

	require.Equal(t, time.Second, Load().Interval)
}

func TestConfig_Validate_ReportsByEnvName(t *testing.T) {
	cfg := &Config{
		Interval:      10 * time.Millisecond,
		AdapterSource: "wmi",
		Address:       "not an address",
		JWTSecret:     "short",
		AutostartDir:  "/tmp",
		LogLevel:      "info",
		LogFormat:     "yaml",
	}

	err := cfg.Validate()
	require.Error(t, err)
	require.ErrorContains(t, err, "SAMPLE_INTERVAL must be at least 100ms")
	require.ErrorContains(t, err, "ADAPTER_SOURCE must be one of [gopsutil netlink]")
	require.ErrorContains(t, err, "HTTP_ADDR must be a host:port address")
	require.ErrorContains(t, err, "JWT_SECRET must be at least 16 characters")
	require.ErrorContains(t, err, "LOG_FORMAT must be one of [text json]")
}
