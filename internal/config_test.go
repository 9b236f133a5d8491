package internal

import (
	"net"
	"path/filepath"
	"testing"
	"time"

	"helloworld/domain"

	"github.com/stretchr/testify/require"
)

func TestLoad_HALDefaults(t *testing.T) {
	req := require.New(t)
	t.Setenv("LOG_LEVEL", "INFO")
	t.Setenv("SERVICEMANAGER_ADDR", "127.0.0.1:9999")

	var config HALConfig
	req.NoError(Load(&config))

	req.Equal("127.0.0.1:9999", config.ServiceManagerAddr)
	req.Equal(domain.DefaultSysfsPath, config.SysfsPath)
	req.Equal("hal_brcm_helloworldservice", config.Domain)
	req.Equal("tcp", config.Network)
}

func TestLoad_ServiceManagerDurations(t *testing.T) {
	req := require.New(t)
	t.Setenv("LOG_LEVEL", "INFO")
	t.Setenv("LOOKUP_TIMEOUT", "250ms")

	var config ServiceManagerConfig
	req.NoError(Load(&config))

	req.Equal(250*time.Millisecond, config.LookupTimeout)
	req.Equal(time.Second, config.ReapInterval)
}

func TestLoad_Invalid(t *testing.T) {
	req := require.New(t)

	// Given an unsupported log level
	t.Setenv("LOG_LEVEL", "VERBOSE")
	var hal HALConfig
	req.Error(Load(&hal))

	// Given a missing required variable
	t.Setenv("LOG_LEVEL", "INFO")
	t.Setenv("BADGER_FILEPATH", "")
	var kmod KmodConfig
	req.Error(Load(&kmod))
}

func TestListen_ReplacesStaleSocket(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "hal.sock")

	first, err := Listen("unix", path)
	req.NoError(err)
	// Leaves the socket file behind
	first.(*net.UnixListener).SetUnlinkOnClose(false)
	req.NoError(first.Close())

	second, err := Listen("unix", path)
	req.NoError(err)
	req.NoError(second.Close())
}
