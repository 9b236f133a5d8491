// Command helloworld-hal is the bridge daemon. It takes no arguments: it
// serves the remote interface, registers it and writes every sayHello to
// the kernel attribute.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	herrors "helloworld/errors"
	"helloworld/hal"
	"helloworld/internal"
	"helloworld/servicemanager"

	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
	// A bridge that cannot register is fatal for init, which restarts it.
	exitRegistration = -1
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "helloworld-hal terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.HALConfig
	if err := internal.Load(&config); err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Directory
	directory, err := servicemanager.Dial(config.ServiceManagerAddr, config.Domain)
	if err != nil {
		return exitRuntime, err
	}
	defer func() { _ = directory.Close() }()

	// 3. Serve and register
	listener, err := internal.Listen(config.Network, config.ListenAddress)
	if err != nil {
		return exitRuntime, err
	}
	service := hal.NewHelloWorld(logger, config.SysfsPath, hal.OpenSysfs)
	daemon := hal.NewDaemon(logger, service, directory, hal.DaemonOptions{})

	logger.Info("Starting helloworld HAL", "sysfs", config.SysfsPath, "address", listener.Addr().String())
	if err := daemon.Run(ctx, listener); err != nil {
		if errors.Is(err, herrors.ErrRegistrationFailure) {
			return exitRegistration, err
		}
		return exitRuntime, err
	}
	logger.Info("helloworld HAL stopped")
	return exitOK, nil
}
