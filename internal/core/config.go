package core

import (
	"context"
	"time"

	"github.com/kelseyhightower/envconfig"

	"blogdeck/internal/config"
)

type Config struct {
	Flags *config.Config `ignored:"true"`

	APIURL       string `envconfig:"API_URL" default:"http://localhost:8080/api"`
	WebsocketURL string `envconfig:"WS_URL" default:"ws://localhost:8080/ws/notifications"`

	PageSize         int           `envconfig:"PAGE_SIZE" default:"10"`
	NotificationSeed int           `envconfig:"NOTIFICATION_SEED" default:"50"`
	ReconnectDelay   time.Duration `envconfig:"RECONNECT_DELAY" default:"3s"`
	PopupTTL         time.Duration `envconfig:"POPUP_TTL" default:"5s"`
	PopupLimit       int           `envconfig:"POPUP_LIMIT" default:"3"`
}

func (c *Config) Init(_ context.Context) error {
	if err := envconfig.Process("blogdeck", c); err != nil {
		return err
	}

	// Command-line flags win over the environment.
	if c.Flags != nil {
		if c.Flags.APIURL != "" {
			c.APIURL = c.Flags.APIURL
		}
		if c.Flags.WSURL != "" {
			c.WebsocketURL = c.Flags.WSURL
		}
	}
	return nil
}
