package config

type Config struct {
	APIURL   string `flag:"api-url"`
	WSURL    string `flag:"ws-url"`
	LogLevel string `flag:"log-level"`

	Username string `flag:"username"`
	Password string `flag:"password"`
	Token    string `flag:"token"`

	MetricsAddr string `flag:"metrics-addr"`
	Debug       bool   `flag:"debug"`
}
