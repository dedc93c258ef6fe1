package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "scorefeed-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "scorefeed-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_DBDisablePreparedBinaryResultParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default true", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.DBDisablePreparedBinary {
			t.Fatalf("expected DBDisablePreparedBinary=true by default")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "not-bool")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_DISABLE_PREPARED_BINARY_RESULT")
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 60*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}

func TestLoad_APIFootballConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("disabled by default", func(t *testing.T) {
		t.Setenv("APIFOOTBALL_ENABLED", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.APIFootballEnabled {
			t.Fatalf("expected APIFootballEnabled=false by default")
		}
		if cfg.APIFootballBaseURL != "https://v3.football.api-sports.io" {
			t.Fatalf("unexpected default base url: %q", cfg.APIFootballBaseURL)
		}
	})

	t.Run("enabled requires key", func(t *testing.T) {
		t.Setenv("APIFOOTBALL_ENABLED", "true")
		t.Setenv("APIFOOTBALL_KEY", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when APIFOOTBALL_ENABLED=true without APIFOOTBALL_KEY")
		}
	})

	t.Run("enabled with valid values", func(t *testing.T) {
		t.Setenv("APIFOOTBALL_ENABLED", "true")
		t.Setenv("APIFOOTBALL_KEY", "key-123")
		t.Setenv("APIFOOTBALL_TIMEOUT", "15s")
		t.Setenv("APIFOOTBALL_MAX_RETRIES", "2")
		t.Setenv("APIFOOTBALL_CIRCUIT_FAILURE_COUNT", "3")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.APIFootballEnabled {
			t.Fatalf("expected APIFootballEnabled=true")
		}
		if cfg.APIFootballTimeout != 15*time.Second {
			t.Fatalf("unexpected timeout: %s", cfg.APIFootballTimeout)
		}
		if cfg.APIFootballMaxRetries != 2 {
			t.Fatalf("unexpected max retries: %d", cfg.APIFootballMaxRetries)
		}
		if cfg.APIFootballCircuitFailureCount != 3 {
			t.Fatalf("unexpected circuit failure count: %d", cfg.APIFootballCircuitFailureCount)
		}
	})
}

func TestLoad_SyncConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SyncSeasonYear != 0 {
			t.Fatalf("expected SyncSeasonYear=0 by default, got %d", cfg.SyncSeasonYear)
		}
		if cfg.SyncBatchSize != 50 {
			t.Fatalf("unexpected default sync batch size: %d", cfg.SyncBatchSize)
		}
		if cfg.SyncBatchPause != 1500*time.Millisecond {
			t.Fatalf("unexpected default sync batch pause: %s", cfg.SyncBatchPause)
		}
		if cfg.LiveMaxTracked != 50 {
			t.Fatalf("unexpected default live max tracked: %d", cfg.LiveMaxTracked)
		}
		if cfg.StaleThreshold != 3*time.Hour {
			t.Fatalf("unexpected default stale threshold: %s", cfg.StaleThreshold)
		}
	})

	t.Run("stale threshold must be positive", func(t *testing.T) {
		t.Setenv("SYNC_STALE_THRESHOLD", "-1h")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative SYNC_STALE_THRESHOLD")
		}
	})

	t.Run("batch size must be positive", func(t *testing.T) {
		t.Setenv("SYNC_BATCH_SIZE", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for SYNC_BATCH_SIZE=0")
		}
	})
}

func TestLoad_JobIntervalDefaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.JobReferenceInterval != 24*time.Hour {
		t.Fatalf("unexpected default reference interval: %s", cfg.JobReferenceInterval)
	}
	if cfg.JobTodayInterval != 15*time.Minute {
		t.Fatalf("unexpected default today interval: %s", cfg.JobTodayInterval)
	}
	if cfg.JobLiveInterval != time.Minute {
		t.Fatalf("unexpected default live interval: %s", cfg.JobLiveInterval)
	}
	if cfg.JobStaleCleanupInterval != time.Hour {
		t.Fatalf("unexpected default stale cleanup interval: %s", cfg.JobStaleCleanupInterval)
	}
}

func TestLoad_QuietWindowValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.QuietWindowStartHour != 2 || cfg.QuietWindowEndHour != 6 {
			t.Fatalf("unexpected quiet window defaults: %d-%d", cfg.QuietWindowStartHour, cfg.QuietWindowEndHour)
		}
	})

	t.Run("out of range hour", func(t *testing.T) {
		t.Setenv("QUIET_WINDOW_START_HOUR", "25")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for QUIET_WINDOW_START_HOUR=25")
		}
	})
}

func TestParseUptraceDSNFromOTLPHeaders(t *testing.T) {
	got := parseUptraceDSNFromOTLPHeaders(`uptrace-dsn="https://token@api.uptrace.dev/1"`)
	if got != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected dsn: %q", got)
	}
	if parseUptraceDSNFromOTLPHeaders("other=1") != "" {
		t.Fatalf("expected empty dsn for unrelated headers")
	}
}
