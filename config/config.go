// Package config loads service settings from an optional .env file, an optional config
// file and CAREER_ROI_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "CAREER_ROI"

// Viper keys.
const (
	KeyServerAddr         = "server.addr"
	KeyReadTimeout        = "server.read_timeout"
	KeyWriteTimeout       = "server.write_timeout"
	KeyIdleTimeout        = "server.idle_timeout"
	KeyShutdownTimeout    = "server.shutdown_timeout"
	KeyRateLimitCapacity  = "rate_limit.capacity"
	KeyRateLimitRefill    = "rate_limit.refill"
	KeyLogLevel           = "log.level"
	KeyLogDevelopment     = "log.development"
	KeyRedisAddr          = "cache.redis_addr"
	KeyCacheTTL           = "cache.ttl"
	KeyPostgresDSN        = "postgres.dsn"
	KeyCatalogPath        = "catalog.path"
	KeyOpenAIKey          = "openai.api_key"
	KeyOpenAIURL          = "openai.api_url"
	KeyOpenAIModel        = "openai.model"
	KeyOpenAITimeout      = "openai.timeout"
	KeyDefaultSalary      = "engine.default_current_salary"
	KeyDefaultLocation    = "engine.default_location"
	KeyDefaultHorizon     = "engine.default_time_horizon_years"
	KeyHistoryLimit       = "engine.history_limit"
	KeyDefaultLanguageTag = "engine.default_language"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Engine    EngineConfig    `mapstructure:"engine"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type RateLimitConfig struct {
	Capacity int           `mapstructure:"capacity"`
	Refill   time.Duration `mapstructure:"refill"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// CacheConfig selects redis when RedisAddr is set and an in-process cache otherwise.
type CacheConfig struct {
	RedisAddr string        `mapstructure:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// PostgresConfig enables the postgres store when DSN is set.
type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

// CatalogConfig points at a YAML catalog. Empty means the built-in catalog.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

type OpenAIConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	APIURL  string        `mapstructure:"api_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type EngineConfig struct {
	DefaultCurrentSalary    float64 `mapstructure:"default_current_salary"`
	DefaultLocation         string  `mapstructure:"default_location"`
	DefaultTimeHorizonYears int     `mapstructure:"default_time_horizon_years"`
	HistoryLimit            int     `mapstructure:"history_limit"`
	DefaultLanguage         string  `mapstructure:"default_language"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyServerAddr, ":8080")
	v.SetDefault(KeyReadTimeout, 15*time.Second)
	v.SetDefault(KeyWriteTimeout, 15*time.Second)
	v.SetDefault(KeyIdleTimeout, 60*time.Second)
	v.SetDefault(KeyShutdownTimeout, 10*time.Second)
	v.SetDefault(KeyRateLimitCapacity, 30)
	v.SetDefault(KeyRateLimitRefill, time.Minute)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogDevelopment, false)
	v.SetDefault(KeyRedisAddr, "")
	v.SetDefault(KeyCacheTTL, time.Hour)
	v.SetDefault(KeyPostgresDSN, "")
	v.SetDefault(KeyCatalogPath, "")
	v.SetDefault(KeyOpenAIKey, "")
	v.SetDefault(KeyOpenAIURL, "https://api.openai.com/v1/chat/completions")
	v.SetDefault(KeyOpenAIModel, "gpt-4o-mini")
	v.SetDefault(KeyOpenAITimeout, 30*time.Second)
	v.SetDefault(KeyDefaultSalary, 35000.0)
	v.SetDefault(KeyDefaultLocation, "National Average")
	v.SetDefault(KeyDefaultHorizon, 20)
	v.SetDefault(KeyHistoryLimit, 20)
	v.SetDefault(KeyDefaultLanguageTag, "en")
}

// Load reads configuration. configFile may be empty; a missing .env file is ignored.
// OPENAI_API_KEY is honored when CAREER_ROI_OPENAI_API_KEY is not set.
func Load(configFile string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(KeyOpenAIKey, envPrefix+"_OPENAI_API_KEY", "OPENAI_API_KEY"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.Server.Addr == "":
		return errors.New("config: server.addr is empty")
	case c.RateLimit.Capacity <= 0:
		return fmt.Errorf("config: rate_limit.capacity must be positive, got %d", c.RateLimit.Capacity)
	case c.RateLimit.Refill <= 0:
		return fmt.Errorf("config: rate_limit.refill must be positive, got %s", c.RateLimit.Refill)
	case c.Engine.DefaultCurrentSalary < 0:
		return fmt.Errorf("config: engine.default_current_salary must not be negative")
	case c.Engine.DefaultTimeHorizonYears < 0 || c.Engine.DefaultTimeHorizonYears > 40:
		return fmt.Errorf("config: engine.default_time_horizon_years must be between 0 and 40, got %d", c.Engine.DefaultTimeHorizonYears)
	case c.Engine.HistoryLimit <= 0:
		return fmt.Errorf("config: engine.history_limit must be positive, got %d", c.Engine.HistoryLimit)
	}
	return nil
}
