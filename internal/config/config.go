package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	TelegramBot TelegramBot
	ESPNAPI     ESPNAPI
	Store       Store
	Web         Web
	Recap       Recap
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	ChatID int64  `envconfig:"CHAT_ID" required:"true"`
}

type ESPNAPI struct {
	BaseURL      string        `envconfig:"ESPN_BASE_URL" default:"https://site.api.espn.com/apis/site/v2/sports/soccer"`
	ProbeURL     string        `envconfig:"ESPN_PROBE_URL" default:"https://site.api.espn.com"`
	Leagues      []string      `envconfig:"LEAGUES" default:"eng.1,esp.1,ger.1,ita.1,fra.1"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"60s"`
}

type Store struct {
	// Path of the SQLite archive database. Empty means in-memory.
	Path string `envconfig:"DB_PATH" default:"golazo.db"`
}

type Web struct {
	Addr string `envconfig:"WEB_ADDR" default:":8080"`
}

type Recap struct {
	// Cron expression for the scheduled leaderboard recap. Empty disables it.
	Cron string `envconfig:"RECAP_CRON"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
