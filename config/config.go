package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is shared by every service binary. Each binary only reads the
// sections it needs.
type Config struct {
	Environment string         `toml:"environment"`
	Logging     LoggingConfig  `toml:"logging"`
	Ports       PortsConfig    `toml:"ports"`
	Google      GoogleConfig   `toml:"google"`
	Redis       RedisConfig    `toml:"redis"`
	Postgres    PostgresConfig `toml:"postgres"`
	Kafka       KafkaConfig    `toml:"kafka"`
	Index       IndexConfig    `toml:"index"`
	Users       UsersConfig    `toml:"users"`
	Gateway     GatewayConfig  `toml:"gateway"`
}

type LoggingConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}

type PortsConfig struct {
	Gateway int `toml:"gateway"`
	Maps    int `toml:"maps"`
	Users   int `toml:"users"`
	Notify  int `toml:"notify"`
}

type GoogleConfig struct {
	APIKey         string  `toml:"api_key"`
	BaseURL        string  `toml:"base_url"`
	RequestTimeout string  `toml:"request_timeout"` // e.g. "10s"
	RateLimit      float64 `toml:"rate_limit"`      // requests per second, 0 disables
}

type RedisConfig struct {
	Host         string `toml:"host"`
	Port         string `toml:"port"`
	Password     string `toml:"password"`
	DB           int    `toml:"db"`
	DialTimeout  string `toml:"dial_timeout"`
	ReadTimeout  string `toml:"read_timeout"`
	WriteTimeout string `toml:"write_timeout"`
}

type PostgresConfig struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Name     string `toml:"name"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	SSLMode  string `toml:"ssl_mode"`
}

type KafkaConfig struct {
	Broker      string `toml:"broker"`
	SignupTopic string `toml:"signup_topic"`
	NotifyGroup string `toml:"notify_group"`
}

// IndexConfig names the document collections kept in the Redis index.
type IndexConfig struct {
	Prefix        string `toml:"prefix"`
	Restaurants   string `toml:"restaurants"`
	Details       string `toml:"details"`
	Interactions  string `toml:"interactions"`
	UserReviews   string `toml:"user_reviews"`
	UserFavorites string `toml:"user_favorites"`
	ProbeTimeout  string `toml:"probe_timeout"`
	WriteTimeout  string `toml:"write_timeout"`
}

type UsersConfig struct {
	Store      string `toml:"store"` // "postgres" or "memory"
	SessionTTL string `toml:"session_ttl"`
}

type GatewayConfig struct {
	MapsSvcURL   string `toml:"maps_svc_url"`
	UserSvcURL   string `toml:"user_svc_url"`
	NotifySvcURL string `toml:"notify_svc_url"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Logging:     LoggingConfig{Level: "info"},
		Ports: PortsConfig{
			Gateway: 8080,
			Maps:    8081,
			Users:   8082,
			Notify:  8083,
		},
		Google: GoogleConfig{
			BaseURL:        "https://maps.googleapis.com/maps/api",
			RequestTimeout: "10s",
			RateLimit:      10,
		},
		Redis: RedisConfig{
			Host:         "localhost",
			Port:         "6379",
			DialTimeout:  "5s",
			ReadTimeout:  "2s",
			WriteTimeout: "2s",
		},
		Postgres: PostgresConfig{
			Host:    "localhost",
			Port:    "5432",
			Name:    "restaurants",
			User:    "postgres",
			SSLMode: "disable",
		},
		Kafka: KafkaConfig{
			Broker:      "localhost:9092",
			SignupTopic: "user_signups",
			NotifyGroup: "notify-svc",
		},
		Index: IndexConfig{
			Prefix:        "idx",
			Restaurants:   "restaurants",
			Details:       "restaurants_details",
			Interactions:  "interaction_history",
			UserReviews:   "user_reviews",
			UserFavorites: "user_favorites",
			ProbeTimeout:  "2s",
			WriteTimeout:  "5s",
		},
		Users: UsersConfig{
			Store:      "postgres",
			SessionTTL: "24h",
		},
		Gateway: GatewayConfig{
			MapsSvcURL:   "http://localhost:8081",
			UserSvcURL:   "http://localhost:8082",
			NotifySvcURL: "http://localhost:8083",
		},
	}
}

// Load builds the configuration with priority: defaults -> files (in order) -> env.
func Load(paths ...string) (*Config, error) {
	cfg := NewDefaultConfig()

	for _, path := range paths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if env := os.Getenv("LOOKUP_ENV"); env != "" {
		cfg.Environment = env
	}
	if level := os.Getenv("LOOKUP_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		cfg.Google.APIKey = key
	}
	if baseURL := os.Getenv("GOOGLE_MAPS_BASE_URL"); baseURL != "" {
		cfg.Google.BaseURL = baseURL
	}

	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.Redis.Host = host
	}
	if port := os.Getenv("REDIS_PORT"); port != "" {
		cfg.Redis.Port = port
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}

	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Postgres.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		cfg.Postgres.Port = port
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Postgres.Name = name
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Postgres.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Postgres.Password = password
	}

	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		cfg.Kafka.Broker = broker
	}

	if store := os.Getenv("USER_STORE"); store != "" {
		cfg.Users.Store = store
	}

	if url := os.Getenv("MAPS_SVC_URL"); url != "" {
		cfg.Gateway.MapsSvcURL = url
	}
	if url := os.Getenv("USER_SVC_URL"); url != "" {
		cfg.Gateway.UserSvcURL = url
	}
	if url := os.Getenv("NOTIFY_SVC_URL"); url != "" {
		cfg.Gateway.NotifySvcURL = url
	}

	for env, target := range map[string]*int{
		"GATEWAY_PORT": &cfg.Ports.Gateway,
		"MAPS_PORT":    &cfg.Ports.Maps,
		"USERS_PORT":   &cfg.Ports.Users,
		"NOTIFY_PORT":  &cfg.Ports.Notify,
	} {
		if value := os.Getenv(env); value != "" {
			if port, err := strconv.Atoi(value); err == nil {
				*target = port
			}
		}
	}
}

// Duration parses a config duration string, returning fallback when the
// value is empty, malformed or not positive.
func Duration(value string, fallback time.Duration) time.Duration {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
