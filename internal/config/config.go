package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int           `env:"PORT" env-default:"8080"`
	DatabasePath string        `env:"DATABASE_PATH" env-default:"./tasks.db"`
	JWTSecret    string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" env-default:"1h"`
	BcryptCost   int           `env:"BCRYPT_COST" env-default:"10"`
	AppEnv       string        `env:"APP_ENV" env-default:"dev"`
	LogLevel     string        `env:"LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from the environment, after loading a .env file if
// one exists. JWT_SECRET has no default: a process that issues tokens must not
// start without it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
