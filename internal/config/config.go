// README: Config loader (viper) with env/YAML overrides for HTTP, DB, Redis, predictor and limits.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Predictor backends.
const (
	BackendHTTP   = "http"
	BackendGemini = "gemini"
	BackendNone   = "none"
)

type PredictorConfig struct {
	Backend  string        `mapstructure:"backend"`
	URL      string        `mapstructure:"url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type Config struct {
	Env string `mapstructure:"env"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	HTTP struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"http"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"redis"`
	Predictor PredictorConfig `mapstructure:"predictor"`
	AI        struct {
		GeminiKey string `mapstructure:"gemini_key"`
		Model     string `mapstructure:"model"`
	} `mapstructure:"ai"`
	RateLimit struct {
		PerMinute int `mapstructure:"per_minute"`
		Burst     int `mapstructure:"burst"`
	} `mapstructure:"ratelimit"`
	CORS struct {
		AllowOrigins []string `mapstructure:"allow_origins"`
	} `mapstructure:"cors"`
}

// IsProduction reports whether env is "production".
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads config.yaml from . or ./config when present, then applies
// ADVISOR_* environment overrides (ADVISOR_DB_DSN, ADVISOR_PREDICTOR_URL, ...).
// Empty DB DSN or Redis address disables that store.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	return load(v)
}

func load(v *viper.Viper) (Config, error) {
	v.SetEnvPrefix("ADVISOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("http.addr", ":8000")
	v.SetDefault("db.dsn", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("predictor.backend", BackendHTTP)
	v.SetDefault("predictor.url", "http://localhost:8501/predict")
	v.SetDefault("predictor.timeout", 5*time.Second)
	v.SetDefault("predictor.cache_ttl", 10*time.Minute)
	v.SetDefault("ai.gemini_key", "")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ratelimit.per_minute", 120)
	v.SetDefault("ratelimit.burst", 20)
	v.SetDefault("cors.allow_origins", []string{"*"})
	// The plain Gemini variable is honoured as well.
	_ = v.BindEnv("ai.gemini_key", "ADVISOR_AI_GEMINI_KEY", "GEMINI_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.CORS.AllowOrigins = splitList(cfg.CORS.AllowOrigins)
	cfg.Predictor.Backend = strings.ToLower(strings.TrimSpace(cfg.Predictor.Backend))
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Predictor.Backend {
	case BackendHTTP:
		if c.Predictor.URL == "" {
			return errors.New("predictor.url is required for the http backend")
		}
	case BackendGemini:
		if c.AI.GeminiKey == "" {
			return errors.New("ai.gemini_key (or GEMINI_API_KEY) is required for the gemini backend")
		}
	case BackendNone:
	default:
		return fmt.Errorf("unknown predictor.backend %q", c.Predictor.Backend)
	}
	if c.Predictor.Timeout <= 0 {
		return errors.New("predictor.timeout must be positive")
	}
	if c.RateLimit.PerMinute < 0 || c.RateLimit.Burst < 0 {
		return errors.New("ratelimit values must be >= 0")
	}
	return nil
}

// splitList accepts both YAML lists and a single comma-separated env value.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
