package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/SeakMengs/certgen/internal/env"
)

type Config struct {
	Port              string
	ENV               string
	DB                DatabaseConfig
	RateLimiter       RateLimiterConfig
	Redis             RedisConfig
	RabbitMQ          RabbitMQConfig
	Minio             MinioConfig
	Mail              MailConfig
	Auth              AuthConfig
	Upload            UploadConfig
	Certificate       CertificateConfig
	SEED_DEFAULT_DATA bool
}

type RateLimiterConfig struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

type RedisConfig struct {
	// Empty address keeps the rate limiter in memory.
	ADDR     string
	PASSWORD string
	DB       int
}

type RabbitMQConfig struct {
	HOST     string
	PORT     string
	USERNAME string
	PASSWORD string
}

func (r RabbitMQConfig) GetConnectionString() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", r.USERNAME, r.PASSWORD, r.HOST, r.PORT)
}

type MinioConfig struct {
	ENDPOINT   string
	ACCESS_KEY string
	SECRET_KEY string
	BUCKET     string
	USE_SSL    bool
}

type AuthConfig struct {
	JWT_SECRET string
	TOKEN_TTL  time.Duration
}

type DatabaseConfig struct {
	DB_HOST      string
	DB_PORT      string
	DB_DATABASE  string
	DB_USERNAME  string
	DB_PASSWORD  string
	DB_SSLMODE   string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  string
}

type MailConfig struct {
	PROVIDER           string
	SEND_GRID          SendGridConfig
	GMAIL_USERNAME     string
	GMAIL_APP_PASSWORD string
	FROM_EMAIL         string
}

type SendGridConfig struct {
	API_KEY string
}

type UploadConfig struct {
	DIR       string
	RETENTION time.Duration
	// cron spec for the temp upload reaper
	REAPER_SCHEDULE string
	MAX_SIZE_MB     int
}

type CertificateConfig struct {
	VERIFY_URL_PATTERN string
	FONT_METADATA_PATH string
	FONT_NAME          string
	WORKERS            int
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.ENV, "production")
}

func GetConfig() Config {
	return Config{
		Port: env.GetString("PORT", "8080"),
		ENV:  env.GetString("ENV", "development"),
		DB: DatabaseConfig{
			DB_HOST:      env.GetString("DB_HOST", "127.0.0.1"),
			DB_PORT:      env.GetString("DB_PORT", "5432"),
			DB_USERNAME:  env.GetString("DB_USERNAME", "postgres"),
			DB_PASSWORD:  env.GetString("DB_PASSWORD", ""),
			DB_DATABASE:  env.GetString("DB_DATABASE", "certgen"),
			DB_SSLMODE:   env.GetString("DB_SSLMODE", "disable"),
			MaxOpenConns: env.GetInt("DB_MAX_OPEN_CONNS", 30),
			MaxIdleConns: env.GetInt("DB_MAX_IDLE_CONNS", 30),
			MaxIdleTime:  env.GetString("DB_MAX_IDLE_TIME", "15m"),
		},
		// By default if not specified, we allow 5000 requests per minute on all routes
		RateLimiter: RateLimiterConfig{
			RequestsPerTimeFrame: env.GetInt("RATE_LIMIT_REQUESTS_PER_TIME_FRAME", 5000),
			TimeFrame:            env.GetDuration("RATE_LIMIT_TIME_FRAME", time.Minute),
			Enabled:              env.GetBool("RATE_LIMIT_ENABLED", true),
		},
		Redis: RedisConfig{
			ADDR:     env.GetString("REDIS_ADDR", ""),
			PASSWORD: env.GetString("REDIS_PASSWORD", ""),
			DB:       env.GetInt("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			HOST:     env.GetString("RABBITMQ_HOST", "127.0.0.1"),
			PORT:     env.GetString("RABBITMQ_PORT", "5672"),
			USERNAME: env.GetString("RABBITMQ_USERNAME", "guest"),
			PASSWORD: env.GetString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: MinioConfig{
			ENDPOINT:   env.GetString("MINIO_ENDPOINT", "127.0.0.1:9000"),
			ACCESS_KEY: env.GetString("MINIO_ACCESS_KEY", ""),
			SECRET_KEY: env.GetString("MINIO_SECRET_KEY", ""),
			BUCKET:     env.GetString("MINIO_BUCKET", "certgen"),
			USE_SSL:    env.GetBool("MINIO_USE_SSL", false),
		},
		Mail: MailConfig{
			PROVIDER:           env.GetString("MAIL_PROVIDER", "gmail"),
			FROM_EMAIL:         env.GetString("MAIL_FROM_MAIL", ""),
			GMAIL_USERNAME:     env.GetString("MAIL_GMAIL_USERNAME", ""),
			GMAIL_APP_PASSWORD: env.GetString("MAIL_GMAIL_APP_PASSWORD", ""),
			SEND_GRID: SendGridConfig{
				API_KEY: env.GetString("MAIL_SEND_GRID_API_KEY", ""),
			},
		},
		Auth: AuthConfig{
			JWT_SECRET: env.GetString("AUTH_JWT_SECRET", ""),
			TOKEN_TTL:  env.GetDuration("AUTH_TOKEN_TTL", 24*time.Hour),
		},
		Upload: UploadConfig{
			DIR:             env.GetString("UPLOAD_DIR", "uploads"),
			RETENTION:       env.GetDuration("UPLOAD_RETENTION", time.Hour),
			REAPER_SCHEDULE: env.GetString("UPLOAD_REAPER_SCHEDULE", "@every 15m"),
			MAX_SIZE_MB:     env.GetInt("UPLOAD_MAX_SIZE_MB", 10),
		},
		Certificate: CertificateConfig{
			VERIFY_URL_PATTERN: env.GetString("CERT_VERIFY_URL_PATTERN", ""),
			FONT_METADATA_PATH: env.GetString("FONT_METADATA_PATH", ""),
			FONT_NAME:          env.GetString("CERT_FONT_NAME", ""),
			WORKERS:            env.GetInt("CERT_WORKERS", 0),
		},
		SEED_DEFAULT_DATA: env.GetBool("SEED_DEFAULT_DATA", true),
	}
}
