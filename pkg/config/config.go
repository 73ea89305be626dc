package config

import (
	"errors"
	"io/fs"
	"log"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DefaultEnvPath = "./configs/.env"

	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageMemory   = "memory"
)

var (
	once     sync.Once
	instance *Config
)

type Config struct {
	APIAddress         string        `env:"API_ADDRESS" envDefault:":8080"`
	JWTSecret          string        `env:"JWT_SECRET,required,notEmpty"`
	JWTTTL             time.Duration `env:"JWT_TTL" envDefault:"24h"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"120"`

	StorageDriver  string `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	SQLitePath     string `env:"SQLITE_PATH" envDefault:"./data/habitflow.db"`
	Postgres       Postgres
	MigrateOnStart bool `env:"MIGRATE_ON_START" envDefault:"false"`

	Redis Redis
	Kafka Kafka
}

type Postgres struct {
	Address  string `env:"POSTGRES_DB_ADDRESS" envDefault:"localhost:5432"`
	User     string `env:"POSTGRES_USER"`
	Password string `env:"POSTGRES_PASSWORD"`
	DB       string `env:"POSTGRES_DB"`
}

// Redis address left empty keeps sessions in process memory.
type Redis struct {
	Address    string        `env:"REDIS_ADDRESS"`
	Password   string        `env:"REDIS_PASSWORD"`
	DB         int           `env:"REDIS_DB" envDefault:"0"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"168h"`
}

// No brokers means achievement events are not published.
type Kafka struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"KAFKA_TOPIC" envDefault:"habitflow-achievements"`
}

// New loads the config once per process and exits if it is invalid.
func New() *Config {
	once.Do(func() {
		cfg, err := Load(DefaultEnvPath)
		if err != nil {
			log.Fatal("loading config error: ", err)
		}
		instance = cfg
	})
	return instance
}

// Load reads the optional env file at path, then the process environment.
// Variables already set in the environment win over the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.New("loading env file error: " + err.Error())
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("parsing env error: " + err.Error())
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case StoragePostgres:
		if c.Postgres.User == "" || c.Postgres.DB == "" {
			return errors.New("postgres storage requires POSTGRES_USER and POSTGRES_DB")
		}
	case StorageSQLite:
		if c.SQLitePath == "" {
			return errors.New("sqlite storage requires SQLITE_PATH")
		}
	case StorageMemory:
	default:
		return errors.New("unknown STORAGE_DRIVER: " + c.StorageDriver)
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	return nil
}
