package config

import (
	"time"

	"github.com/spf13/viper"

	pkgconfig "github.com/jason-czar/Sportstreams/pkg/config"
	"github.com/jason-czar/Sportstreams/pkg/database"
	"github.com/jason-czar/Sportstreams/pkg/log"
)

type Config struct {
	Server    ServerConfig
	WebSocket WebSocketConfig
	Database  database.Config
	Redis     RedisConfig
	Streaming StreamingConfig
	Auth      AuthConfig
	Viewers   ViewersConfig
	Log       log.Config
}

type ServerConfig struct {
	Host string
	Port int
}

type WebSocketConfig struct {
	PingInterval   time.Duration `mapstructure:"ping_interval"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
	WriteWait      time.Duration `mapstructure:"write_wait"`
	MaxMessageSize int64         `mapstructure:"max_message_size"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type StreamingConfig struct {
	BaseURL         string `mapstructure:"base_url"`
	TokenID         string `mapstructure:"token_id"`
	TokenSecret     string `mapstructure:"token_secret"`
	PlaybackBaseURL string `mapstructure:"playback_base_url"`
}

type AuthConfig struct {
	SessionTTL   time.Duration `mapstructure:"session_ttl"`
	CookieName   string        `mapstructure:"cookie_name"`
	CookieSecure bool          `mapstructure:"cookie_secure"`
}

type ViewersConfig struct {
	PublishInterval time.Duration `mapstructure:"publish_interval"`
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("websocket.ping_interval", "30s")
	v.SetDefault("websocket.pong_wait", "60s")
	v.SetDefault("websocket.write_wait", "10s")
	v.SetDefault("websocket.max_message_size", 4096)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.file_path", "sportstreams.db")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("streaming.base_url", "https://api.mux.com")
	v.SetDefault("streaming.playback_base_url", "https://stream.mux.com")
	v.SetDefault("auth.session_ttl", "720h")
	v.SetDefault("auth.cookie_name", "sportstreams_session")
	v.SetDefault("auth.cookie_secure", false)
	v.SetDefault("viewers.publish_interval", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// Override from environment
	v.BindEnv("server.port", "PORT")
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("redis.address", "REDIS_ADDRESS")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("streaming.token_id", "STREAMING_TOKEN_ID")
	v.BindEnv("streaming.token_secret", "STREAMING_TOKEN_SECRET")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Parse durations
	cfg.WebSocket.PingInterval = parseDuration(v, "websocket.ping_interval", 30*time.Second)
	cfg.WebSocket.PongWait = parseDuration(v, "websocket.pong_wait", 60*time.Second)
	cfg.WebSocket.WriteWait = parseDuration(v, "websocket.write_wait", 10*time.Second)
	cfg.Auth.SessionTTL = parseDuration(v, "auth.session_ttl", 720*time.Hour)
	cfg.Viewers.PublishInterval = parseDuration(v, "viewers.publish_interval", 10*time.Second)

	return &cfg, nil
}

func parseDuration(v *viper.Viper, key string, defaultVal time.Duration) time.Duration {
	str := v.GetString(key)
	d, err := time.ParseDuration(str)
	if err != nil {
		return defaultVal
	}
	return d
}
