package main

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the defaults the flags start from.
type Config struct {
	ServiceManagerAddr string        `envconfig:"SERVICEMANAGER_ADDR" default:"127.0.0.1:7040"`
	Domain             string        `envconfig:"SELINUX_DOMAIN" default:"platform_app"`
	Message            string        `envconfig:"HELLO_MESSAGE" default:"Hello from Android app!"`
	Timeout            time.Duration `envconfig:"HELLO_TIMEOUT" default:"5s"`
	Colours            bool          `envconfig:"HELLO_COLOURS" default:"true"`
	LogLevel           string        `envconfig:"LOG_LEVEL" default:"WARN"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
