//go:generate go run go.uber.org/mock/mockgen -source=client.go -destination=../mocks/mock_client.go -package=mocks
package client

import (
	"context"
	"fmt"
	"log/slog"

	"helloworld/domain"
	"helloworld/errors"
	pb "helloworld/proto/helloworld"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Directory resolves service names. servicemanager.Client satisfies it.
type Directory interface {
	IsDeclared(ctx context.Context, name string) (bool, error)
	GetService(ctx context.Context, name string) (string, error)
}

// Dialer opens a connection to a resolved address.
type Dialer func(target string) (*grpc.ClientConn, error)

func DefaultDialer(target string) (*grpc.ClientConn, error) {
	return grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
}

// Result is the outcome of an asynchronous SayHello.
type Result struct {
	Message domain.Message
	Err     error
}

// HelloWorld is the app side stub of IHelloWorld. It resolves the service
// on every call and keeps no connection between calls.
type HelloWorld struct {
	log       *slog.Logger
	directory Directory
	dial      Dialer
	name      string
}

func NewHelloWorld(log *slog.Logger, directory Directory, dial Dialer) *HelloWorld {
	if dial == nil {
		dial = DefaultDialer
	}
	return &HelloWorld{log: log, directory: directory, dial: dial, name: domain.ServiceName}
}

// SayHello resolves the bridge and forwards message. An undeclared, absent
// or unreachable service is ErrServiceUnavailable; remote failures come
// back as their sentinels.
func (h *HelloWorld) SayHello(ctx context.Context, message domain.Message) error {
	return h.call(ctx, func(rpc pb.IHelloWorldClient) error {
		_, err := rpc.SayHello(ctx, wrapperspb.String(message.Text))
		return err
	})
}

// Send reports success as a bool, for callers that only display it.
func (h *HelloWorld) Send(ctx context.Context, message domain.Message) bool {
	if err := h.SayHello(ctx, message); err != nil {
		h.log.Error("Failed to call sayHello", "error", err)
		return false
	}
	h.log.Info("Called sayHello successfully", "message", message.Text)
	return true
}

// SayHelloAsync runs SayHello in the background. The channel receives
// exactly one Result and is then closed.
func (h *HelloWorld) SayHelloAsync(ctx context.Context, message domain.Message) <-chan Result {
	results := make(chan Result, 1)
	go func() {
		defer close(results)
		results <- Result{Message: message, Err: h.SayHello(ctx, message)}
	}()
	return results
}

// CheckInterface compares the remote version and hash with the frozen
// interface this stub was built against.
func (h *HelloWorld) CheckInterface(ctx context.Context) error {
	return h.call(ctx, func(rpc pb.IHelloWorldClient) error {
		version, err := rpc.GetInterfaceVersion(ctx, &emptypb.Empty{})
		if err != nil {
			return err
		}
		hash, err := rpc.GetInterfaceHash(ctx, &emptypb.Empty{})
		if err != nil {
			return err
		}
		if version.GetValue() != domain.InterfaceVersion || hash.GetValue() != domain.InterfaceHash() {
			return fmt.Errorf("%w: remote v%d %s, local v%d %s", errors.ErrInterfaceMismatch,
				version.GetValue(), hash.GetValue(), domain.InterfaceVersion, domain.InterfaceHash())
		}
		return nil
	})
}

func (h *HelloWorld) call(ctx context.Context, fn func(pb.IHelloWorldClient) error) error {
	declared, err := h.directory.IsDeclared(ctx, h.name)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", errors.ErrServiceUnavailable, h.name, err)
	}
	if !declared {
		return fmt.Errorf("%w: %s is not declared", errors.ErrServiceUnavailable, h.name)
	}
	address, err := h.directory.GetService(ctx, h.name)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", errors.ErrServiceUnavailable, h.name, err)
	}
	conn, err := h.dial(address)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %w", errors.ErrServiceUnavailable, address, err)
	}
	defer func() { _ = conn.Close() }()

	// Transport failures reaching the bridge come back as
	// ErrServiceUnavailable.
	return errors.FromGRPCError(fn(pb.NewIHelloWorldClient(conn)))
}
