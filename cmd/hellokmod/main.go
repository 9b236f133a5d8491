// Command hellokmod loads the hello_world driver in user space: it mounts
// the write-only attribute and keeps the kernel log in BadgerDB.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"helloworld/internal"
	"helloworld/kernel"
	"helloworld/klog"

	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hellokmod terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.KmodConfig
	if err := internal.Load(&config); err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Kernel log (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()
	journal, err := klog.NewJournal(db, logger)
	if err != nil {
		return exitRuntime, err
	}
	defer func() { _ = journal.Close() }()

	if logger.Enabled(ctx, slog.LevelDebug) {
		endpoint := "/inspect"
		url := fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint)
		logger.Info("Debug Badger inspector available", "url", url)
		database.StartDebugServer(db, config.DebugPort, endpoint, EntryMapper)
	}

	// 3. Attribute
	server, err := kernel.Init(kernel.Options{
		Mountpoint: config.Mountpoint,
		Publisher:  kernel.NewPublisher(journal),
		AllowOther: config.AllowOther,
		Logger:     logger,
	})
	if err != nil {
		return exitRuntime, err
	}
	logger.Info("Attribute mounted", "path", kernel.AttributePath(config.Mountpoint))

	// 4. Wait for Stop or unmount
	serverDone := make(chan struct{})
	go func() {
		server.Wait()
		close(serverDone)
	}()
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case <-serverDone:
		logger.Warn("Attribute unmounted externally")
		return exitRuntime, fmt.Errorf("%s unmounted", config.Mountpoint)
	}

	// 5. Unload
	if err := unmount(server, logger); err != nil {
		return exitRuntime, err
	}
	logger.Info("hellokmod stopped")
	return exitOK, nil
}

type unmounter interface {
	Unmount() error
}

// unmount retries while a writer still holds the attribute open.
func unmount(server unmounter, logger *slog.Logger) error {
	var err error
	for range 5 {
		if err = server.Unmount(); err == nil {
			return nil
		}
		logger.Warn("Unmount failed, retrying", "error", err)
		time.Sleep(200 * time.Millisecond)
	}
	return fmt.Errorf("unmount failed: %w", err)
}

func buildBadgerOpts(config internal.KmodConfig, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)
	if logger.Enabled(ctx, slog.LevelDebug) {
		return options.WithLoggingLevel(badger.DEBUG).WithBypassLockGuard(true)
	}
	return options.WithLoggingLevel(badger.WARNING)
}

// EntryMapper renders a journal line in the Badger inspector.
func EntryMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	entry, err := klog.DecodeEntry(val)
	if err != nil {
		row.Detail = "Error: unmarshal failed"
		return row
	}
	row.Type = string(entry.Level)
	row.Detail = fmt.Sprintf("[%s] %s", entry.Time().Format(time.RFC3339Nano), entry.Text)
	return row
}
