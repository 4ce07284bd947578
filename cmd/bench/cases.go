// README: Benchmark cases: environment, chat topics, prediction contract, history and load.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	StatusPass    = "PASS"
	StatusFail    = "FAIL"
	StatusPending = "PENDING"
	StatusSkip    = "SKIP"
)

type Runner struct {
	cfg   Config
	out   io.Writer
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name  string
	Focus string
	Run   func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config, out io.Writer) *Runner {
	return &Runner{
		cfg:   cfg,
		out:   out,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Fprintf(r.out, "%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Fprintf(r.out, " (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Fprintf(r.out, " - %s", res.Note)
		}
		fmt.Fprintln(r.out)
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}
	return results
}

var riceReading = map[string]any{
	"Soil_N": 45, "Soil_P": 55, "Soil_K": 60, "Soil_pH": 7.2, "Soil_Moisture": 35,
	"Crop_Name": "Rice", "Season": "Kharif", "landArea": 5,
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name:  "Env: Postgres connect",
			Focus: "consultation log reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name:  "Env: Redis connect",
			Focus: "prediction cache reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: StatusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name:  "Migration: tables exist",
			Focus: "tables from the migration file exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "db not configured"}
				}
				tables, err := extractTables(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: StatusFail, Note: err.Error()}
					}
					if !exists {
						return Result{Status: StatusFail, Note: "missing table: " + t}
					}
				}
				return Result{Status: StatusPass}
			},
		},
		httpCase("API: root banner", http.MethodGet, base+"/", nil, []int{200}, nil, nil),
		httpCase("API: health", http.MethodGet, base+"/health", nil, []int{200}, nil, nil),

		chatCase(base, "Chat: greeting", "Hello", "en", "greeting"),
		chatCase(base, "Chat: greeting (te)", "నమస్కారం", "te", "greeting"),
		chatCase(base, "Chat: thanks", "thank you so much", "en", "thanks"),
		chatCase(base, "Chat: fertilizer beats soil", "best fertilizer for my soil", "en", "fertilizer"),
		chatCase(base, "Chat: irrigation", "how often should I water", "en", "irrigation"),
		chatCase(base, "Chat: catch-all", "tell me about tractors", "en", "general"),
		chatCase(base, "Chat: soil", "how to improve clay", "en", "soil"),
		chatCase(base, "Chat: rainfall is irrigation", "heavy rainfall expected", "en", "irrigation"),
		httpCase("Chat: invalid json -> 400", http.MethodPost, base+"/chat", "{", []int{400}, nil, nil),

		httpCase("Predict: rice overlay", http.MethodPost, base+"/predict", riceReading, []int{200}, []int{503},
			func(body map[string]any) error {
				if body["fertilizer_type"] != "DAP" {
					return fmt.Errorf("fertilizer_type=%v", body["fertilizer_type"])
				}
				qpa, _ := body["quantity_per_acre"].(float64)
				total, _ := body["total_quantity"].(float64)
				if diff := total - qpa*5; diff > 0.01 || diff < -0.01 {
					return fmt.Errorf("total=%v qpa=%v", total, qpa)
				}
				return nil
			}),
		httpCase("Predict: missing field -> 400", http.MethodPost, base+"/predict", map[string]any{"Crop_Name": "Rice"}, []int{400}, nil, nil),
		httpCase("Predict: soil preset", http.MethodPost, base+"/predict", map[string]any{
			"soilType": "red", "Crop_Name": "Groundnut", "Season": "Rabi",
		}, []int{200}, []int{503}, nil),
		httpCase("Predict: pH out of range -> 400", http.MethodPost, base+"/predict", map[string]any{
			"Soil_N": 45, "Soil_P": 55, "Soil_K": 60, "Soil_pH": 15, "Soil_Moisture": 35, "Crop_Name": "Rice", "Season": "Kharif",
		}, []int{400}, nil, nil),

		httpCase("History: topic counts", http.MethodGet, base+"/api/history/topics", nil, []int{200}, []int{503}, nil),

		{
			Name:  "Perf: /chat load",
			Focus: "throughput under concurrency",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/chat", map[string]any{"query": "how much water for rice", "language": "en"})
			},
		},
		{
			Name:  "Perf: /predict load",
			Focus: "throughput under concurrency",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/predict", riceReading)
			},
		},
	}
}

// httpCase sends body (JSON-encoded unless it is a string) and grades the status.
// check, when set, inspects the decoded body of a passing response.
func httpCase(name, method, url string, body any, okStatuses, pendingStatuses []int, check func(map[string]any) error) TestCase {
	return TestCase{
		Name:  name,
		Focus: "HTTP API",
		Run: func(ctx context.Context, r *Runner) Result {
			var reader io.Reader
			switch b := body.(type) {
			case nil:
			case string:
				reader = strings.NewReader(b)
			default:
				enc, _ := json.Marshal(b)
				reader = bytes.NewReader(enc)
			}
			req, _ := http.NewRequestWithContext(ctx, method, url, reader)
			req.Header.Set("Content-Type", "application/json")
			start := time.Now()
			resp, err := r.httpc.Do(req)
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			raw, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			latency := time.Since(start)
			note := fmt.Sprintf("status=%d", resp.StatusCode)

			switch {
			case contains(okStatuses, resp.StatusCode):
				if check != nil {
					var decoded map[string]any
					if err := json.Unmarshal(raw, &decoded); err != nil {
						return Result{Status: StatusFail, Latency: latency, Note: "bad json: " + err.Error()}
					}
					if err := check(decoded); err != nil {
						return Result{Status: StatusFail, Latency: latency, Note: err.Error()}
					}
				}
				return Result{Status: StatusPass, Latency: latency, Note: note}
			case contains(pendingStatuses, resp.StatusCode):
				return Result{Status: StatusPending, Latency: latency, Note: note}
			}
			return Result{Status: StatusFail, Latency: latency, Note: note}
		},
	}
}

func chatCase(base, name, query, lang, wantTopic string) TestCase {
	return httpCase(name, http.MethodPost, base+"/chat", map[string]any{"query": query, "language": lang}, []int{200}, nil,
		func(body map[string]any) error {
			if body["topic"] != wantTopic {
				return fmt.Errorf("topic=%v want %s", body["topic"], wantTopic)
			}
			if s, _ := body["reply"].(string); s == "" {
				return fmt.Errorf("empty reply")
			}
			return nil
		})
}

func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	b, _ := json.Marshal(payload)
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount, notReady atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < r.cfg.Concurrency; i++ {
		g.Go(func() error {
			for time.Now().Before(end) && gctx.Err() == nil {
				req, _ := http.NewRequestWithContext(gctx, http.MethodPost, url, bytes.NewReader(b))
				req.Header.Set("Content-Type", "application/json")
				resp, err := r.httpc.Do(req)
				if err != nil {
					errCount.Add(1)
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				switch {
				case resp.StatusCode == http.StatusServiceUnavailable:
					notReady.Add(1)
				case resp.StatusCode >= 400:
					errCount.Add(1)
				default:
					count.Add(1)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	if count.Load() == 0 {
		if notReady.Load() > 0 {
			return Result{Status: StatusPending, Note: "model not ready"}
		}
		return Result{Status: StatusFail, Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	return Result{Status: StatusPass, Note: fmt.Sprintf("rps=%.1f errors=%d not_ready=%d", rps, errCount.Load(), notReady.Load())}
}

func contains(list []int, v int) bool {
	for _, i := range list {
		if i == v {
			return true
		}
	}
	return false
}

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	matches := re.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}
