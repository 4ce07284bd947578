// README: Benchmark runner for the advisory API; executes HTTP/DB/Redis checks and prints results.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errBenchFailed = errors.New("bench: failing or pending checks")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type Config struct {
	BaseURL       string
	DSN           string
	RedisAddr     string
	MigrationPath string
	Strict        bool
	Timeout       time.Duration
	Concurrency   int
	Duration      time.Duration
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "bench",
		Short:        "Run black-box checks against a running advisor API",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}
	v := bindConfig(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(v)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
		defer cancel()

		results := NewRunner(cfg, cmd.OutOrStdout()).RunAll(ctx)
		sum := summarize(results)
		fmt.Fprintf(cmd.OutOrStdout(), "\n== Summary ==\n%s\n", sum)
		if sum.Failed(cfg.Strict) {
			return errBenchFailed
		}
		return nil
	}
	return cmd
}

// bindConfig registers the bench flags and binds them to ADVISOR_BENCH_*
// env vars. Flags win over env, env over defaults.
func bindConfig(cmd *cobra.Command) *viper.Viper {
	f := cmd.Flags()
	f.String("base-url", "http://localhost:8000", "API base URL")
	f.String("dsn", "", "Postgres DSN (empty skips DB checks)")
	f.String("redis", "", "Redis address (empty skips Redis checks)")
	f.String("migration", "migrations/0001_consultations.sql", "Migration SQL path")
	f.Bool("strict", false, "Fail on pending tests")
	f.Duration("timeout", 60*time.Second, "Total timeout")
	f.Int("concurrency", 20, "Concurrency for perf tests")
	f.Duration("duration", 10*time.Second, "Duration for perf tests")

	v := viper.New()
	v.SetEnvPrefix("ADVISOR_BENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// The API's own settings are reused when the bench ones are absent.
	_ = v.BindEnv("dsn", "ADVISOR_BENCH_DSN", "ADVISOR_DB_DSN")
	_ = v.BindEnv("redis", "ADVISOR_BENCH_REDIS", "ADVISOR_REDIS_ADDR")
	_ = v.BindPFlags(f)
	return v
}

func loadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		BaseURL:       strings.TrimRight(v.GetString("base-url"), "/"),
		DSN:           v.GetString("dsn"),
		RedisAddr:     v.GetString("redis"),
		MigrationPath: v.GetString("migration"),
		Strict:        v.GetBool("strict"),
		Timeout:       v.GetDuration("timeout"),
		Concurrency:   v.GetInt("concurrency"),
		Duration:      v.GetDuration("duration"),
	}
	switch {
	case cfg.BaseURL == "":
		return Config{}, errors.New("bench: base-url is required")
	case cfg.Timeout <= 0:
		return Config{}, fmt.Errorf("bench: timeout must be positive, got %s", cfg.Timeout)
	case cfg.Concurrency < 1:
		return Config{}, fmt.Errorf("bench: concurrency must be at least 1, got %d", cfg.Concurrency)
	case cfg.Duration <= 0:
		return Config{}, fmt.Errorf("bench: duration must be positive, got %s", cfg.Duration)
	}
	return cfg, nil
}

type Summary struct {
	Pass, Fail, Pending, Skip int
}

func summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			s.Pass++
		case StatusFail:
			s.Fail++
		case StatusPending:
			s.Pending++
		case StatusSkip:
			s.Skip++
		}
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("PASS=%d FAIL=%d PENDING=%d SKIP=%d", s.Pass, s.Fail, s.Pending, s.Skip)
}

// Failed reports whether the run should exit non-zero. Pending checks only
// count under strict mode.
func (s Summary) Failed(strict bool) bool {
	return s.Fail > 0 || (strict && s.Pending > 0)
}
