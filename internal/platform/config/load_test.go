package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/referral-pipeline/internal/platform/config"
)

// Load resolves configs/ relative to the working directory, so these tests
// move to the repository root and cannot run in parallel.

func TestLoad_Profiles(t *testing.T) {
	tests := []struct {
		profile string
		check   func(t *testing.T, cfg *config.Config)
	}{
		{
			profile: "local",
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "debug", cfg.Log.Level)
				assert.Equal(t, "text", cfg.Log.Format)
				assert.False(t, cfg.Telemetry.Enabled)
				assert.Equal(t, config.StorageConfig{
					Driver:          "sqlite",
					DSN:             "data/local.db",
					MaxOpenConns:    10,
					MaxIdleConns:    5,
					ConnMaxLifetime: 30 * time.Minute,
				}, cfg.Storage)
				assert.InDelta(t, 20, cfg.Client.RateLimit.RequestsPerSecond, 0)
				assert.Equal(t, 5, cfg.Client.RateLimit.BurstSize)
			},
		},
		{
			profile: "prod",
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "json", cfg.Log.Format)
				assert.True(t, cfg.Telemetry.Enabled)
				assert.Equal(t, "otlp", cfg.Telemetry.Exporter)
				assert.NotEmpty(t, cfg.Telemetry.Endpoint)
				assert.Equal(t, "postgres", cfg.Storage.Driver)
				assert.Equal(t, 8, cfg.Pipeline.BulkWorkers)
			},
		},
		{
			profile: "test",
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "memory", cfg.Storage.Driver)
				assert.Equal(t, 2, cfg.Pipeline.BulkWorkers)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			t.Chdir("../../..")

			cfg, err := config.Load(tt.profile)
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad_BaseValuesReachEveryProfile(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("local")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 3, cfg.Client.Retry.MaxAttempts)
	assert.Equal(t, 5, cfg.Client.CircuitBreaker.MaxFailures)
	assert.Equal(t, "WON_REFERRING", cfg.Pipeline.SignedStage)
	assert.Equal(t, 4, cfg.Pipeline.BulkWorkers)
	assert.Equal(t, "0.01265", cfg.Reports.IncomeRate)
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "top level key",
			env:  map[string]string{"APP_SERVER_PORT": "9090"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
			},
		},
		{
			name: "key containing underscores",
			env:  map[string]string{"APP_SERVER_READ_TIMEOUT": "15s"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
			},
		},
		{
			name: "nested key",
			env:  map[string]string{"APP_CLIENT_RETRY_MAX_ATTEMPTS": "7"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 7, cfg.Client.Retry.MaxAttempts)
			},
		},
		{
			name: "pipeline and reports",
			env: map[string]string{
				"APP_PIPELINE_SIGNED_STAGE": "DOCS_SIGNED",
				"APP_REPORTS_INCOME_RATE":   "0.02",
			},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "DOCS_SIGNED", cfg.Pipeline.SignedStage)
				assert.Equal(t, "0.02", cfg.Reports.IncomeRate)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir("../../..")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := config.Load("local")
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad_InvalidEnvValueFailsValidation(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_PIPELINE_BULK_WORKERS", "0")

	_, err := config.Load("local")
	assert.ErrorContains(t, err, "invalid local config")
}

func TestLoad_RejectsProfiles(t *testing.T) {
	for _, profile := range []string{"nonexistent", "", "  ", "../base", `prod\x`, "a/b"} {
		t.Run(profile, func(t *testing.T) {
			t.Chdir("../../..")

			_, err := config.Load(profile)
			assert.Error(t, err)
		})
	}
}

func TestLoad_WithConfigDir(t *testing.T) {
	cfg, err := config.Load("test", config.WithConfigDir("../../../configs"))
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestValidate_InvalidPort(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Server.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for port=0")
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Log.Level = "verbose"

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for invalid log level")
	}
}

func TestValidate_OtlpWithoutEndpoint(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Telemetry.Enabled = true
	cfg.Telemetry.Exporter = "otlp"
	cfg.Telemetry.Endpoint = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for otlp without endpoint")
	}
}

func TestValidate_DomainSections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{name: "unknown driver", mutate: func(c *config.Config) { c.Storage.Driver = "mongo" }},
		{name: "sqlite without dsn", mutate: func(c *config.Config) { c.Storage.DSN = " " }},
		{name: "empty signed stage", mutate: func(c *config.Config) { c.Pipeline.SignedStage = "" }},
		{name: "zero bulk workers", mutate: func(c *config.Config) { c.Pipeline.BulkWorkers = 0 }},
		{name: "bad income rate", mutate: func(c *config.Config) { c.Reports.IncomeRate = "one percent" }},
		{name: "negative income rate", mutate: func(c *config.Config) { c.Reports.IncomeRate = "-0.01" }},
		{name: "relative base url", mutate: func(c *config.Config) { c.Client.BaseURL = "localhost:8081" }},
		{name: "negative shutdown timeout", mutate: func(c *config.Config) { c.Server.ShutdownTimeout = -time.Second }},
		{name: "rate limit without burst", mutate: func(c *config.Config) {
			c.Client.RateLimit = config.RateLimitConfig{RequestsPerSecond: 5}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validBaseConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("Validate() returned nil, want error")
			}
		})
	}
}

func TestValidate_MemoryStoreNeedsNoDSN(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Storage = config.StorageConfig{Driver: "memory"}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error for valid config: %v", err)
	}
}

// validBaseConfig returns a Config with all fields set to valid values.
func validBaseConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Log: config.LogConfig{
			Level:  "info",
			Format: "json",
		},
		Client: config.ClientConfig{
			BaseURL: "http://localhost:8081",
			Timeout: 30 * time.Second,
			Retry: config.RetryConfig{
				MaxAttempts:     3,
				InitialInterval: 100 * time.Millisecond,
				MaxInterval:     10 * time.Second,
				Multiplier:      2.0,
			},
			CircuitBreaker: config.CircuitBreakerConfig{
				MaxFailures:   5,
				Timeout:       30 * time.Second,
				HalfOpenLimit: 1,
			},
		},
		Telemetry: config.TelemetryConfig{
			Enabled:  false,
			Exporter: "stdout",
		},
		Storage: config.StorageConfig{
			Driver: "sqlite",
			DSN:    "referral-pipeline.db",
		},
		Pipeline: config.PipelineConfig{
			SignedStage: "WON_REFERRING",
			BulkWorkers: 4,
		},
		Reports: config.ReportsConfig{
			IncomeRate: "0.01265",
		},
	}
}
