package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

// Config holds application configuration values.
type Config struct {
	Port       string `env:"PORT" envDefault:"8080"`
	GinMode    string `env:"GIN_MODE" envDefault:"release"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	AppBaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	MongoURI      string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017/?replicaSet=rs0"`
	MongoDatabase string `env:"MONGODB_DB_NAME" envDefault:"workmatch"`

	RedisURL    string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	JobCacheTTL time.Duration `env:"JOB_CACHE_TTL" envDefault:"2m"`

	JWTSecret          string        `env:"JWT_SECRET_KEY"`
	JWTRefreshSecret   string        `env:"JWT_REFRESH_SECRET_KEY"`
	AccessTokenExpiry  time.Duration `env:"ACCESS_TOKEN_EXPIRY" envDefault:"15m"`
	RefreshTokenExpiry time.Duration `env:"REFRESH_TOKEN_EXPIRY" envDefault:"168h"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL" envDefault:"http://localhost:8080/api/v1/auth/google/callback"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM" envDefault:"no-reply@workmatch.local"`

	AMQPURL       string `env:"AMQP_URL"`
	PushQueueName string `env:"PUSH_QUEUE" envDefault:"workmatch.push"`

	PushWorkers     int           `env:"PUSH_WORKERS" envDefault:"4"`
	PushQueueSize   int           `env:"PUSH_QUEUE_SIZE" envDefault:"1024"`
	PushSendTimeout time.Duration `env:"PUSH_SEND_TIMEOUT" envDefault:"30s"`

	MinioEndpoint  string `env:"MINIO_ENDPOINT"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioBucket    string `env:"MINIO_BUCKET" envDefault:"archived-users"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`

	BatchSize          int           `env:"BATCH_SIZE" envDefault:"500"`
	BatchRetries       int           `env:"BATCH_RETRIES" envDefault:"3"`
	InboxLimit         int           `env:"INBOX_LIMIT" envDefault:"100"`
	DeletionResumeCron string        `env:"DELETION_RESUME_CRON" envDefault:"@every 5m"`
	DeletionStaleAfter time.Duration `env:"DELETION_STALE_AFTER" envDefault:"10m"`

	RateLimitPerSecond float64  `env:"RATE_LIMIT_PER_SECOND" envDefault:"10"`
	CORSOrigins        []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

// Load reads .env when present and parses the environment into a Config.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" || c.JWTRefreshSecret == "" {
		return fmt.Errorf("missing JWT_SECRET_KEY or JWT_REFRESH_SECRET_KEY environment variable")
	}
	if c.BatchSize < 1 || c.BatchSize > 500 {
		return fmt.Errorf("BATCH_SIZE must be between 1 and 500, got %d", c.BatchSize)
	}
	if c.InboxLimit < 1 {
		return fmt.Errorf("INBOX_LIMIT must be positive, got %d", c.InboxLimit)
	}
	return nil
}

var _ usecasecontract.IConfigProvider = (*Config)(nil)

// GetAppBaseURL returns the base URL of the application.
func (c *Config) GetAppBaseURL() string {
	return c.AppBaseURL
}

// GetRefreshTokenExpiry returns the expiry duration for refresh tokens.
func (c *Config) GetRefreshTokenExpiry() time.Duration {
	return c.RefreshTokenExpiry
}

func (c *Config) GetInboxLimit() int {
	return c.InboxLimit
}

// GetDeletionStaleAfter is how long an unfinished deletion workflow sits
// untouched before the resumer picks it up.
func (c *Config) GetDeletionStaleAfter() time.Duration {
	return c.DeletionStaleAfter
}
