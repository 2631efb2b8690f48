package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=5001"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// ServerURL is the externally reachable base URL embedded in the
	// activation links mailed to the administrator.
	ServerURL string `env:"SERVER_URL, default=http://localhost:5001"`

	JWTSecret          string        `env:"JWT_SECRET"`
	JWTTTL             time.Duration `env:"JWT_TTL,              default=24h"`
	ActivationTokenTTL time.Duration `env:"ACTIVATION_TOKEN_TTL, default=24h"`

	Mongo MongoConfig
	Redis RedisConfig
	RAG   RAGConfig
	SMTP  SMTPConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=asksource_admin"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type RAGConfig struct {
	// BaseURL points at the upstream API root, e.g. http://rag-host/api/v1.
	BaseURL string `env:"RAG_BASE_URL, default=http://localhost:8000/api/v1"`
	// Timeout bounds every per-project upstream call.
	Timeout time.Duration `env:"RAG_TIMEOUT, default=5s"`
	// ProjectsTimeout bounds the initial project-list call, which the
	// upstream serves noticeably slower than single-project lookups.
	ProjectsTimeout time.Duration `env:"RAG_PROJECTS_TIMEOUT, default=10s"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST, default=localhost"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM, default=noreply@asksource.local"`
	// AdminEmail is the fixed address that receives activation requests.
	AdminEmail string `env:"ADMIN_EMAIL"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
