//go:generate go run go.uber.org/mock/mockgen -source=daemon.go -destination=../mocks/mock_daemon.go -package=mocks
package hal

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync/atomic"
	"time"

	"helloworld/domain"
	"helloworld/errors"
	pb "helloworld/proto/helloworld"

	grpc3 "github.com/mama165/sdk-go/grpc"
	"google.golang.org/grpc"
)

const unregisterTimeout = 2 * time.Second

// Registrar is the part of the service directory the bridge needs.
type Registrar interface {
	AddService(ctx context.Context, reg domain.Registration) error
	RemoveService(ctx context.Context, name string) error
}

type DaemonOptions struct {
	// Name defaults to domain.ServiceName.
	Name string
	// AdvertiseAddress overrides the address derived from the listener.
	AdvertiseAddress string
	PID              int32
}

// Daemon hosts the bridge: it serves the remote interface and registers
// it with the directory. It moves from Unregistered to Serving once, and
// never back.
type Daemon struct {
	log       *slog.Logger
	service   IHelloWorldService
	registrar Registrar
	options   DaemonOptions
	state     atomic.Int32
}

func NewDaemon(log *slog.Logger, service IHelloWorldService, registrar Registrar, options DaemonOptions) *Daemon {
	if options.Name == "" {
		options.Name = domain.ServiceName
	}
	if options.PID == 0 {
		options.PID = int32(os.Getpid())
	}
	return &Daemon{log: log, service: service, registrar: registrar, options: options}
}

func (d *Daemon) State() domain.BridgeState {
	return domain.BridgeState(d.state.Load())
}

// Run serves on lis, registers, and blocks until ctx is done or the server
// fails. Registration is not retried: a rejected registration stops the
// server and returns ErrRegistrationFailure. On shutdown the name is
// removed from the directory before the server drains.
func (d *Daemon) Run(ctx context.Context, lis net.Listener) error {
	server := grpc.NewServer(grpc.ChainUnaryInterceptor(grpc3.UnaryLoggingInterceptor(d.log)))
	pb.RegisterIHelloWorldServer(server, NewServer(d.log, d.service))

	errChan := make(chan error, 1)
	go func() {
		if err := server.Serve(lis); err != nil && !stderrors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
		close(errChan)
	}()

	reg := domain.Registration{
		Name:    d.options.Name,
		Address: d.advertiseAddress(lis),
		PID:     d.options.PID,
	}
	if err := d.registrar.AddService(ctx, reg); err != nil {
		d.log.Error("Could not register service", "name", reg.Name, "error", err)
		server.Stop()
		return fmt.Errorf("%w: %s: %w", errors.ErrRegistrationFailure, reg.Name, err)
	}
	d.state.Store(int32(domain.Serving))
	d.log.Info("Service registered, serving", "name", reg.Name, "address", reg.Address, "state", d.State())

	var runErr error
	select {
	case <-ctx.Done():
		d.log.Info("Shutdown signal received")
	case err, ok := <-errChan:
		if ok {
			runErr = err
		}
	}

	unregisterCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), unregisterTimeout)
	defer cancel()
	if err := d.registrar.RemoveService(unregisterCtx, reg.Name); err != nil {
		d.log.Warn("Could not unregister service", "name", reg.Name, "error", err)
	}
	server.GracefulStop()
	return runErr
}

func (d *Daemon) advertiseAddress(lis net.Listener) string {
	if d.options.AdvertiseAddress != "" {
		return d.options.AdvertiseAddress
	}
	return domain.Endpoint(lis.Addr())
}
