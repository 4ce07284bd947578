package main

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseConfig(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	cmd := &cobra.Command{Use: "bench"}
	v := bindConfig(cmd)
	require.NoError(t, cmd.Flags().Parse(args))
	return loadConfig(v)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ADVISOR_DB_DSN", "")
	t.Setenv("ADVISOR_REDIS_ADDR", "")

	cfg, err := parseConfig(t)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.Empty(t, cfg.DSN)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, "migrations/0001_consultations.sql", cfg.MigrationPath)
	assert.False(t, cfg.Strict)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Equal(t, 20, cfg.Concurrency)
	assert.Equal(t, 10*time.Second, cfg.Duration)
}

func TestLoadConfigEnvAndFlags(t *testing.T) {
	t.Setenv("ADVISOR_BENCH_BASE_URL", "http://bench.local:9000/")
	t.Setenv("ADVISOR_BENCH_STRICT", "true")
	t.Setenv("ADVISOR_BENCH_DURATION", "2s")
	t.Setenv("ADVISOR_DB_DSN", "postgres://advisor@db/advisor")
	t.Setenv("ADVISOR_REDIS_ADDR", "cache:6379")

	cfg, err := parseConfig(t, "--concurrency", "4", "--redis", "other:6379")
	require.NoError(t, err)
	assert.Equal(t, "http://bench.local:9000", cfg.BaseURL)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 2*time.Second, cfg.Duration)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "postgres://advisor@db/advisor", cfg.DSN, "falls back to the API DSN")
	assert.Equal(t, "other:6379", cfg.RedisAddr, "flag wins over env")
}

func TestLoadConfigBenchEnvWinsOverAPIEnv(t *testing.T) {
	t.Setenv("ADVISOR_BENCH_DSN", "postgres://bench")
	t.Setenv("ADVISOR_DB_DSN", "postgres://api")

	cfg, err := parseConfig(t)
	require.NoError(t, err)
	assert.Equal(t, "postgres://bench", cfg.DSN)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	for name, args := range map[string][]string{
		"zero concurrency":  {"--concurrency", "0"},
		"zero timeout":      {"--timeout", "0s"},
		"negative duration": {"--duration", "-1s"},
		"empty base url":    {"--base-url", "/"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parseConfig(t, args...)
			assert.Error(t, err)
		})
	}
}

func TestSummary(t *testing.T) {
	sum := summarize([]Result{
		{Status: StatusPass}, {Status: StatusPass}, {Status: StatusPending}, {Status: StatusSkip},
	})
	assert.Equal(t, Summary{Pass: 2, Pending: 1, Skip: 1}, sum)
	assert.Equal(t, "PASS=2 FAIL=0 PENDING=1 SKIP=1", sum.String())
	assert.False(t, sum.Failed(false))
	assert.True(t, sum.Failed(true))

	assert.True(t, summarize([]Result{{Status: StatusFail}}).Failed(false))
}
