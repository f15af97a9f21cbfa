package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Word store backends
const (
	WordStoreRedis  = "redis"
	WordStoreSQLite = "sqlite"
)

// HTTP holds the listener settings
type HTTP struct {
	Addr           string   `env:"HTTP_ADDR" envDefault:":4000"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// Log holds logger settings
type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
}

// Redis holds the connection settings for the Redis word store
type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	WordsKey string `env:"WORDS_KEY" envDefault:"words"`
}

// Words holds the word supplier settings
type Words struct {
	Store        string        `env:"WORD_STORE" envDefault:"redis"`
	SQLitePath   string        `env:"SQLITE_PATH" envDefault:"words.db"`
	Seed         bool          `env:"SEED_WORDS" envDefault:"true"`
	FetchTimeout time.Duration `env:"WORD_FETCH_TIMEOUT" envDefault:"5s"`
}

// Game holds the round policy
type Game struct {
	RoundDuration     time.Duration `env:"ROUND_DURATION" envDefault:"60s"`
	NextRoundDelay    time.Duration `env:"NEXT_ROUND_DELAY" envDefault:"3s"`
	WordOptions       int           `env:"WORD_OPTIONS" envDefault:"3"`
	GuessPoints       int           `env:"GUESS_POINTS" envDefault:"10"`
	DrawerPoints      int           `env:"DRAWER_POINTS" envDefault:"5"`
	DefaultMaxRounds  int           `env:"DEFAULT_MAX_ROUNDS" envDefault:"3"`
	DefaultMaxPlayers int           `env:"DEFAULT_MAX_PLAYERS" envDefault:"5"`
	AutoCreateOnJoin  bool          `env:"AUTO_CREATE_ON_JOIN" envDefault:"true"`
}

// Client holds per-connection limits
type Client struct {
	MessagesPerSecond float64 `env:"MESSAGES_PER_SECOND" envDefault:"10"`
	MessageBurst      int     `env:"MESSAGE_BURST" envDefault:"20"`
}

// Config is the full server configuration
type Config struct {
	HTTP   HTTP
	Log    Log
	Redis  Redis
	Words  Words
	Game   Game
	Client Client
}

// Load reads an optional env file and then the environment. An empty path
// loads .env when present.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	return Parse()
}

// Parse builds the config from the environment only
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values env tags can't express
func (c *Config) Validate() error {
	switch c.Words.Store {
	case WordStoreRedis, WordStoreSQLite:
	default:
		return fmt.Errorf("unknown WORD_STORE %q", c.Words.Store)
	}

	if c.Game.RoundDuration <= 0 {
		return errors.New("ROUND_DURATION must be positive")
	}
	if c.Game.NextRoundDelay < 0 {
		return errors.New("NEXT_ROUND_DELAY cannot be negative")
	}
	if c.Game.WordOptions < 1 {
		return errors.New("WORD_OPTIONS must be at least 1")
	}
	if c.Game.DefaultMaxRounds < 1 || c.Game.DefaultMaxPlayers < 1 {
		return errors.New("DEFAULT_MAX_ROUNDS and DEFAULT_MAX_PLAYERS must be at least 1")
	}
	if c.Game.GuessPoints < 0 || c.Game.DrawerPoints < 0 {
		return errors.New("points cannot be negative")
	}
	if c.Words.FetchTimeout <= 0 {
		return errors.New("WORD_FETCH_TIMEOUT must be positive")
	}
	if c.Client.MessagesPerSecond <= 0 || c.Client.MessageBurst < 1 {
		return errors.New("MESSAGES_PER_SECOND and MESSAGE_BURST must be positive")
	}
	return nil
}
