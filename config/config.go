package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	ProviderLocal    = "local"
	ProviderFirebase = "firebase"
)

type Config struct {
	Env             string        `env:"ENV" env-default:"local"`
	Port            string        `env:"PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	Timezone        string        `env:"TIMEZONE" env-default:"America/Sao_Paulo"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" env-separator:","`
	CloudinaryURL   string        `env:"CLOUDINARY_URL"`
	DB              DBConfig
	Redis           RedisConfig
	Auth            AuthConfig
}

type DBConfig struct {
	Driver   string `env:"DB_DRIVER" env-default:"postgres"`
	DSN      string `env:"DB_DSN"`
	Host     string `env:"DB_HOST" env-default:"localhost"`
	Port     int    `env:"DB_PORT" env-default:"5432"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" env-default:"restaurante360"`
	SSLMode  string `env:"DB_SSL_MODE" env-default:"disable"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	User     string `env:"REDIS_USER"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

type AuthConfig struct {
	Provider            string        `env:"AUTH_PROVIDER" env-default:"local"`
	JWTSecret           string        `env:"JWT_SECRET"`
	JWTTTL              time.Duration `env:"JWT_TTL" env-default:"24h"`
	FirebaseCredentials string        `env:"FIREBASE_CREDENTIALS"`
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown env: %s", c.Env)
	}

	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown DB_DRIVER: %s", c.DB.Driver)
	}

	switch c.Auth.Provider {
	case ProviderLocal:
		if c.Auth.JWTSecret == "" {
			return errors.New("JWT_SECRET is required for the local auth provider")
		}
	case ProviderFirebase:
		if c.Auth.FirebaseCredentials == "" {
			return errors.New("FIREBASE_CREDENTIALS is required for the firebase auth provider")
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER: %s", c.Auth.Provider)
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	return nil
}

// Location is the business timezone used for dates, shifts and cron.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c DBConfig) dsn() string {
	if c.DSN != "" {
		return c.DSN
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}
