package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode        string `mapstructure:"mode"`
	ServiceName string `mapstructure:"serviceName"`
	Handlers    struct {
		Prometheus struct {
			Enabled bool   `mapstructure:"enabled"`
			Port    string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Server struct {
		HTTPPort        string        `mapstructure:"HTTPPort"`
		Timeout         time.Duration `mapstructure:"HTTPTimeout"`
		ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
		AllowedOrigins  []string      `mapstructure:"allowedOrigins"`
	} `mapstructure:"server"`
	Catalog struct {
		// Source is "file" or "postgres".
		Source         string `mapstructure:"source"`
		HistoricalPath string `mapstructure:"historicalPath"`
		MuseumPath     string `mapstructure:"museumPath"`
		RestaurantPath string `mapstructure:"restaurantPath"`
		// Seed fills empty postgres catalog tables from the JSON documents.
		Seed bool `mapstructure:"seed"`
	} `mapstructure:"catalog"`
	Ranking struct {
		DistanceWeight           float64 `mapstructure:"distanceWeight"`
		RelevanceWeight          float64 `mapstructure:"relevanceWeight"`
		RelevanceDivisor         float64 `mapstructure:"relevanceDivisor"`
		MaxDistanceKm            float64 `mapstructure:"maxDistanceKm"`
		MaxCandidatesPerCategory int     `mapstructure:"maxCandidatesPerCategory"`
		MaxCombinations          int     `mapstructure:"maxCombinations"`
		PartialCoverage          bool    `mapstructure:"partialCoverage"`
	} `mapstructure:"ranking"`
	LLM struct {
		Enabled         bool    `mapstructure:"enabled"`
		Model           string  `mapstructure:"model"`
		APIKey          string  `mapstructure:"apiKey"`
		Temperature     float32 `mapstructure:"temperature"`
		MaxOutputTokens int32   `mapstructure:"maxOutputTokens"`
		// RateLimitPerMinute caps prompt requests per client IP.
		RateLimitPerMinute int `mapstructure:"rateLimitPerMinute"`
	} `mapstructure:"llm"`
	Sessions struct {
		TTL             time.Duration `mapstructure:"ttl"`
		CleanupInterval time.Duration `mapstructure:"cleanupInterval"`
	} `mapstructure:"sessions"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
}

func InitConfig() (Config, error) {
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// ITINERARY_RANKING_MAXCOMBINATIONS overrides ranking.maxCombinations
	v.SetEnvPrefix("itinerary")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("llm.apiKey", "GOOGLE_GEMINI_API_KEY")

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	return decode(v)
}

// Load reads configuration from raw YAML only, without file lookup or
// environment overrides.
func Load(raw []byte) (Config, error) {
	v := viper.New()
	v.SetConfigType("yml")
	if err := v.ReadConfig(bytes.NewReader(raw)); err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks the settings the process cannot start without. Ranking
// weights are checked again when the ranker is built.
func (c Config) Validate() error {
	var errs []error
	if c.Server.HTTPPort == "" {
		errs = append(errs, errors.New("server.HTTPPort is required"))
	}
	switch c.Catalog.Source {
	case "file":
		if c.Catalog.HistoricalPath == "" || c.Catalog.MuseumPath == "" || c.Catalog.RestaurantPath == "" {
			errs = append(errs, errors.New("catalog paths are required for the file source"))
		}
	case "postgres":
		if c.Repositories.Postgres.Host == "" {
			errs = append(errs, errors.New("repositories.postgres.host is required for the postgres source"))
		}
		if c.Catalog.Seed && (c.Catalog.HistoricalPath == "" || c.Catalog.MuseumPath == "" || c.Catalog.RestaurantPath == "") {
			errs = append(errs, errors.New("catalog paths are required to seed the postgres source"))
		}
	default:
		errs = append(errs, fmt.Errorf("catalog.source must be file or postgres, got %q", c.Catalog.Source))
	}
	if c.Sessions.TTL <= 0 {
		errs = append(errs, errors.New("sessions.ttl must be positive"))
	}
	if c.Handlers.Prometheus.Enabled && c.Handlers.Prometheus.Port == "" {
		errs = append(errs, errors.New("handlers.prometheus.port is required when enabled"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
