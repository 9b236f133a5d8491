package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Empty skips the suites: they need a running servicemanager and HAL.
	ServiceManagerAddr string `envconfig:"SERVICEMANAGER_ADDR"`
	Domain             string `envconfig:"E2E_DOMAIN" default:"platform_app"`
	// E2E_DEBUG_JSON dumps full gRPC request/response bodies as JSON
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	Colours   bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
