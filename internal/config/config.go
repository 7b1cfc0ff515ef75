package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the sync-side settings. Statistics commands only need
// the database path, which lives on the CLI flag instead.
type Config struct {
	// APIToken is the Clash Royale developer token. Required by the
	// sync commands; never needed for local statistics.
	APIToken string `env:"ROYALE_API_TOKEN"`
	// ClanTag is the default clan to walk when --clan is not given.
	ClanTag string `env:"ROYALE_CLAN_TAG"`
	// RequestDelay is the minimum interval between consecutive API
	// requests issued through one client.
	RequestDelay time.Duration `env:"ROYALE_REQUEST_DELAY" envDefault:"1s"`
	// BattleLimit caps how many recent battles are ingested per member
	// and per run.
	BattleLimit int `env:"ROYALE_BATTLE_LIMIT" envDefault:"3"`
	LogLevel    string `env:"ROYALE_LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load() // absent .env is fine

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
