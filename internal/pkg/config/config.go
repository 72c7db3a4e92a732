package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// UsersFile is the credential store document; CredentialsFile is the
	// human-readable document holding the generated super-admin pair.
	UsersFile       string `env:"USERS_FILE,       default=data/users.json"`
	CredentialsFile string `env:"CREDENTIALS_FILE, default=README.me"`

	// BcryptCost is tuned for roughly 100ms verification latency.
	BcryptCost int `env:"BCRYPT_COST, default=12"`

	Session SessionConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	// Backend selects the session store: "memory" (default) or "redis".
	Backend    string        `env:"SESSION_BACKEND, default=memory"`
	TTL        time.Duration `env:"SESSION_TTL,     default=6h"`
	CookieName string        `env:"SESSION_COOKIE,  default=futtest_session"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
