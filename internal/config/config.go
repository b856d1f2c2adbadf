package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server     ServerConfig
	Worker     WorkerConfig
	Database   DatabaseConfig
	MinIO      MinIOConfig
	RabbitMQ   RabbitMQConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Upload     UploadConfig
	Background BackgroundConfig
	Stats      StatsConfig
	Log        LogConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"API_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"10s"`
}

type WorkerConfig struct {
	MaxRetries      int           `envconfig:"WORKER_MAX_RETRIES" default:"3"`
	ShutdownTimeout time.Duration `envconfig:"WORKER_SHUTDOWN_TIMEOUT" default:"30s"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" default:"vidshare"`
	Password string `envconfig:"POSTGRES_PASSWORD" default:"vidshare"`
	DBName   string `envconfig:"POSTGRES_DB" default:"vidshare"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

type MinIOConfig struct {
	Endpoint  string `envconfig:"MINIO_ENDPOINT" default:"localhost:9000"`
	AccessKey string `envconfig:"MINIO_ACCESS_KEY" default:"minioadmin"`
	SecretKey string `envconfig:"MINIO_SECRET_KEY" default:"minioadmin"`
	Bucket    string `envconfig:"MINIO_BUCKET" default:"media"`
	UseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false"`
	// PublicURL is the externally reachable base for asset URLs.
	// Defaults to the endpoint when empty.
	PublicURL string `envconfig:"MINIO_PUBLIC_URL"`
}

type RabbitMQConfig struct {
	Host     string `envconfig:"RABBITMQ_HOST" default:"localhost"`
	Port     int    `envconfig:"RABBITMQ_PORT" default:"5672"`
	User     string `envconfig:"RABBITMQ_USER" default:"vidshare"`
	Password string `envconfig:"RABBITMQ_PASSWORD" default:"vidshare"`
	VHost    string `envconfig:"RABBITMQ_VHOST" default:"/"`
}

func (c RabbitMQConfig) URL() string {
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%d%s",
		c.User, c.Password, c.Host, c.Port, c.VHost,
	)
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type AuthConfig struct {
	AccessTokenSecret string `envconfig:"ACCESS_TOKEN_SECRET" required:"true"`
	Issuer            string `envconfig:"ACCESS_TOKEN_ISSUER" default:""`
	CookieName        string `envconfig:"ACCESS_TOKEN_COOKIE" default:"accessToken"`
}

type UploadConfig struct {
	TempDir           string `envconfig:"UPLOAD_TEMP_DIR" default:"/tmp/vidshare"`
	MaxVideoBytes     int64  `envconfig:"UPLOAD_MAX_VIDEO_BYTES" default:"524288000"`
	MaxThumbnailBytes int64  `envconfig:"UPLOAD_MAX_THUMBNAIL_BYTES" default:"5242880"`
	FFprobePath       string `envconfig:"FFPROBE_PATH" default:"ffprobe"`
}

type BackgroundConfig struct {
	Workers     int           `envconfig:"BACKGROUND_WORKERS" default:"4"`
	QueueSize   int           `envconfig:"BACKGROUND_QUEUE_SIZE" default:"256"`
	MaxAttempts int           `envconfig:"BACKGROUND_MAX_ATTEMPTS" default:"3"`
	Backoff     time.Duration `envconfig:"BACKGROUND_BACKOFF" default:"200ms"`
	TaskTimeout time.Duration `envconfig:"BACKGROUND_TASK_TIMEOUT" default:"30s"`
}

type StatsConfig struct {
	CacheTTL time.Duration `envconfig:"STATS_CACHE_TTL" default:"1m"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// SlogLevel maps the configured level name to a slog.Level. Unknown names map to info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
