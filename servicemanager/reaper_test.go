package servicemanager

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"helloworld/domain"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestReaper_SweepDropsDeadOwners(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(nil)
	reaper := NewReaper(logs.GetLoggerFromLevel(slog.LevelDebug), registry, time.Hour)
	reaper.alive = func(pid int32) bool { return pid == 1 }
	req.NoError(registry.Add(domain.Registration{Name: "a/default", Address: "a", PID: 1}))
	req.NoError(registry.Add(domain.Registration{Name: "b/default", Address: "b", PID: 2}))

	removed := reaper.Sweep()

	req.Equal([]string{"b/default"}, removed)
	req.Len(registry.List(), 1)
}

func TestReaper_KeepsLiveProcess(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(nil)
	reaper := NewReaper(slog.Default(), registry, time.Hour)

	// Given a registration owned by the test process itself
	req.NoError(registry.Add(domain.Registration{Name: domain.ServiceName, Address: "a", PID: int32(os.Getpid())}))

	req.Empty(reaper.Sweep())
}

func TestReaper_RunStopsOnCancel(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(nil)
	reaper := NewReaper(slog.Default(), registry, 5*time.Millisecond)
	reaper.alive = func(int32) bool { return false }
	req.NoError(registry.Add(domain.Registration{Name: "a/default", Address: "a", PID: 99}))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- reaper.Run(ctx) }()

	req.Eventually(func() bool { return len(registry.List()) == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	req.NoError(<-done)
}
