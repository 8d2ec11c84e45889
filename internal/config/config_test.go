package config

import (
	"strings"
	"testing"
	"time"

	"github.com/calebmartin/scorestream/internal/platform/logging"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Errorf("expected dev env, got %q", cfg.AppEnv)
	}
	if cfg.ServiceName != "scorestream-api" {
		t.Errorf("unexpected service name %q", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("unexpected http addr %q", cfg.HTTPAddr)
	}
	if cfg.ESPNTimeout != 30*time.Second {
		t.Errorf("expected 30s feed timeout, got %v", cfg.ESPNTimeout)
	}
	if !cfg.ESPNCircuitEnabled || cfg.ESPNCircuitFailureCount != 5 {
		t.Errorf("unexpected circuit defaults: %+v", cfg)
	}
	if cfg.RefreshInterval != 30*time.Second {
		t.Errorf("expected 30s refresh interval, got %v", cfg.RefreshInterval)
	}
	if cfg.SettingsPath != "data/settings.json" {
		t.Errorf("unexpected settings path %q", cfg.SettingsPath)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("unexpected CORS origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Errorf("expected info log level, got %v", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("ESPN_BASE_URL", "http://localhost:9090/sports")
	t.Setenv("ESPN_TIMEOUT", "5s")
	t.Setenv("ESPN_CIRCUIT_FAILURE_COUNT", "3")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("REFRESH_INTERVAL", "60s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AppEnv != EnvProd {
		t.Errorf("expected prod env, got %q", cfg.AppEnv)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Errorf("expected debug log level, got %v", cfg.LogLevel)
	}
	if cfg.ESPNBaseURL != "http://localhost:9090/sports" {
		t.Errorf("unexpected base url %q", cfg.ESPNBaseURL)
	}
	if cfg.ESPNTimeout != 5*time.Second {
		t.Errorf("unexpected feed timeout %v", cfg.ESPNTimeout)
	}
	if cfg.ESPNCircuitFailureCount != 3 {
		t.Errorf("unexpected failure count %d", cfg.ESPNCircuitFailureCount)
	}
	if cfg.CacheEnabled {
		t.Errorf("expected cache disabled")
	}
	if cfg.RefreshInterval != time.Minute {
		t.Errorf("unexpected refresh interval %v", cfg.RefreshInterval)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("unexpected CORS origins %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		key     string
		value   string
		wantMsg string
	}{
		{"bad app env", "APP_ENV", "qa", "invalid APP_ENV"},
		{"bad timeout", "ESPN_TIMEOUT", "soon", "parse ESPN_TIMEOUT"},
		{"negative timeout", "ESPN_TIMEOUT", "-1s", "must be > 0"},
		{"bad failure count", "ESPN_CIRCUIT_FAILURE_COUNT", "0", "must be >= 1"},
		{"bad cache ttl", "CACHE_TTL", "0s", "CACHE_TTL must be > 0"},
		{"bad refresh interval", "REFRESH_INTERVAL", "never", "parse REFRESH_INTERVAL"},
		{"bad metrics flag", "METRICS_ENABLED", "yep", "parse METRICS_ENABLED"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("expected %q in error, got %v", tc.wantMsg, err)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]logging.Level{
		"debug":   logging.LevelDebug,
		"INFO":    logging.LevelInfo,
		"warn":    logging.LevelWarn,
		"warning": logging.LevelWarn,
		"error":   logging.LevelError,
		"":        logging.LevelInfo,
		"trace":   logging.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" a, b ,, c ")
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("unexpected result: %v", got)
	}
}
