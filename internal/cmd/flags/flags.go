package flags

import (
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

var APIURL = &cli.StringFlag{
	Name:    "api-url",
	Usage:   "Base URL of the blog API",
	Sources: cli.EnvVars("BLOGDECK_API_URL"),
}

var WSURL = &cli.StringFlag{
	Name:    "ws-url",
	Usage:   "URL of the notification push channel",
	Sources: cli.EnvVars("BLOGDECK_WS_URL"),
}

var Username = &cli.StringFlag{
	Name:    "username",
	Aliases: []string{"u"},
	Usage:   "Username to log in with at startup",
	Sources: cli.EnvVars("BLOGDECK_USERNAME"),
}

var Password = &cli.StringFlag{
	Name:    "password",
	Aliases: []string{"p"},
	Usage:   "Password to log in with at startup",
	Sources: cli.EnvVars("BLOGDECK_PASSWORD"),
}

var Token = &cli.StringFlag{
	Name:    "token",
	Usage:   "Reuse an existing bearer token instead of logging in",
	Sources: cli.EnvVars("BLOGDECK_TOKEN"),
}

var MetricsAddr = &cli.StringFlag{
	Name:    "metrics-addr",
	Usage:   "Listen address for /metrics and /health",
	Value:   ":9090",
	Sources: cli.EnvVars("BLOGDECK_METRICS_ADDR"),
}

var Debug = &cli.BoolFlag{
	Name:    "debug",
	Usage:   "Dump raw notification records",
	Value:   false,
	Sources: cli.EnvVars("BLOGDECK_DEBUG"),
}

var LogLevel = &cli.StringFlag{
	Name:    "log-level",
	Aliases: []string{"l"},
	Usage:   "The level of the logs",
	Value:   "info",
	Validator: func(value string) error {
		if !slices.Contains(validLogLevels, value) {
			return fmt.Errorf("invalid log level: %s, allowed values are: %s", value, validLogLevels)
		}
		return nil
	},
	Sources: cli.EnvVars("BLOGDECK_LOG_LEVEL"),
}
