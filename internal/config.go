package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
)

// ServiceManagerConfig configures cmd/servicemanager.
type ServiceManagerConfig struct {
	Address         string        `env:"SERVICEMANAGER_ADDR,default=127.0.0.1:7040" validate:"required"`
	Network         string        `env:"SERVICEMANAGER_NETWORK,default=tcp" validate:"oneof=tcp unix"`
	ManifestPath    string        `env:"MANIFEST_PATH"`
	PolicyPath      string        `env:"POLICY_PATH"`
	LookupTimeout   time.Duration `env:"LOOKUP_TIMEOUT,default=5s" validate:"gte=0"`
	ReapInterval    time.Duration `env:"REAP_INTERVAL,default=1s" validate:"gt=0"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms" validate:"gt=0"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR"`
}

// HALConfig configures cmd/helloworld-hal.
type HALConfig struct {
	ServiceManagerAddr string `env:"SERVICEMANAGER_ADDR,default=127.0.0.1:7040" validate:"required"`
	Network            string `env:"HAL_NETWORK,default=tcp" validate:"oneof=tcp unix"`
	ListenAddress      string `env:"HAL_LISTEN_ADDR,default=127.0.0.1:0" validate:"required"`
	SysfsPath          string `env:"SYSFS_PATH,default=/sys/kernel/hello_world/hello" validate:"required"`
	Domain             string `env:"SELINUX_DOMAIN,default=hal_brcm_helloworldservice" validate:"required"`
	LogLevel           string `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR"`
}

// KmodConfig configures cmd/hellokmod.
type KmodConfig struct {
	Mountpoint     string `env:"SYSFS_MOUNTPOINT,required=true" validate:"required"`
	BadgerFilepath string `env:"BADGER_FILEPATH,required=true" validate:"required"`
	AllowOther     bool   `env:"FUSE_ALLOW_OTHER,default=false"`
	DebugPort      int    `env:"DEBUG_PORT,default=8081" validate:"gt=0,lt=65536"`
	LogLevel       string `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR"`
}

// Load decodes the environment into config and validates it.
func Load(config any) error {
	if _, err := env.UnmarshalFromEnviron(config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Listen opens the listener a daemon serves on. A stale unix socket is
// replaced.
func Listen(network, address string) (net.Listener, error) {
	if network == "unix" {
		if err := os.Remove(address); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("removing stale socket %s: %w", address, err)
		}
	}
	lis, err := net.Listen(network, address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s %s: %w", network, address, err)
	}
	return lis, nil
}
