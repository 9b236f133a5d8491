package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"helloworld/contract"
	"helloworld/internal"
	pb "helloworld/proto/servicemanager"
	"helloworld/runtime/workers"
	"helloworld/servicemanager"

	"github.com/joho/godotenv"
	grpc3 "github.com/mama165/sdk-go/grpc"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "servicemanager terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.ServiceManagerConfig
	if err := internal.Load(&config); err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	var manifest *servicemanager.Manifest
	if config.ManifestPath != "" {
		m, err := servicemanager.LoadManifest(config.ManifestPath)
		if err != nil {
			return exitConfig, err
		}
		manifest = m
		logger.Info("Manifest loaded", "path", config.ManifestPath, "declared", manifest.Declared())
	}
	var policy *servicemanager.Policy
	if config.PolicyPath != "" {
		p, err := servicemanager.LoadPolicy(config.PolicyPath)
		if err != nil {
			return exitConfig, err
		}
		policy = p
		logger.Info("Policy loaded", "path", config.PolicyPath, "rules", len(policy.Rules), "permissive", policy.Permissive)
	}

	// 2. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Directory and reaper
	registry := servicemanager.NewRegistry(servicemanager.ProcessAlive)
	stopReaper := superviseReaper(ctx,
		workers.NewSupervisor(logger, config.RestartInterval),
		servicemanager.NewReaper(logger, registry, config.ReapInterval))

	// 4. gRPC Server Setup
	listener, err := internal.Listen(config.Network, config.Address)
	if err != nil {
		stopReaper()
		return exitRuntime, err
	}
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc3.UnaryLoggingInterceptor(logger),
			policy.UnaryInterceptor(logger),
		))
	pb.RegisterIServiceManagerServer(s, servicemanager.NewServer(logger, registry, manifest, config.LookupTimeout))

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting servicemanager", "network", config.Network, "address", listener.Addr().String())
		if err := s.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	// 5. Wait for Stop or Error
	code, runErr := exitOK, error(nil)
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		code, runErr = exitRuntime, err
	}

	// 6. Graceful Shutdown
	s.GracefulStop()
	stopReaper()
	logger.Info("servicemanager stopped")
	return code, runErr
}

// superviseReaper runs the reaper under the supervisor. The returned func
// stops the supervisor and waits for it.
func superviseReaper(ctx context.Context, supervisor contract.ISupervisor, reaper contract.Worker) func() {
	supervisor.Add(reaper)
	done := make(chan struct{})
	go func() {
		supervisor.Run(ctx)
		close(done)
	}()
	return func() {
		supervisor.Stop()
		<-done
	}
}
