package hal

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"testing"
	"time"

	"helloworld/domain"
	"helloworld/errors"
	"helloworld/mocks"
	pb "helloworld/proto/helloworld"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestDaemon_Registration_Failure_Is_Fatal(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	registrar := mocks.NewMockRegistrar(ctrl)
	service := mocks.NewMockIHelloWorldService(ctrl)
	daemon := NewDaemon(slog.Default(), service, registrar, DaemonOptions{AdvertiseAddress: "bufnet", PID: 7})

	// Given the directory rejects the name, once
	registrar.EXPECT().AddService(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("%w: %s", errors.ErrPermissionDenied, domain.ServiceName)).
		Times(1)

	// When the daemon starts
	err := daemon.Run(context.Background(), bufconn.Listen(1024))

	// Then it gives up without retry and never serves
	req.ErrorIs(err, errors.ErrRegistrationFailure)
	req.ErrorIs(err, errors.ErrPermissionDenied)
	req.Equal(domain.Unregistered, daemon.State())
}

func TestDaemon_Serves_Then_Unregisters(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	registrar := mocks.NewMockRegistrar(ctrl)
	service := mocks.NewMockIHelloWorldService(ctrl)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	daemon := NewDaemon(log, service, registrar, DaemonOptions{AdvertiseAddress: "bufnet", PID: 7})
	lis := bufconn.Listen(1024 * 1024)

	// Given the directory accepts the registration
	registered := make(chan struct{})
	registrar.EXPECT().
		AddService(gomock.Any(), domain.Registration{Name: domain.ServiceName, Address: "bufnet", PID: 7}).
		DoAndReturn(func(context.Context, domain.Registration) error {
			close(registered)
			return nil
		})
	registrar.EXPECT().RemoveService(gomock.Any(), domain.ServiceName).Return(nil)
	service.EXPECT().SayHello(gomock.Any(), domain.NewMessage("Hello")).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- daemon.Run(ctx, lis) }()
	<-registered
	req.Eventually(func() bool { return daemon.State() == domain.Serving }, time.Second, 5*time.Millisecond)

	// When a client calls sayHello through the transport
	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	req.NoError(err)
	defer func() { _ = conn.Close() }()
	_, err = pb.NewIHelloWorldClient(conn).SayHello(context.Background(), wrapperspb.String("Hello"))
	req.NoError(err)

	// Then shutting down unregisters and returns cleanly
	cancel()
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(3 * time.Second):
		req.Fail("daemon did not stop")
	}
	req.Equal(domain.Serving, daemon.State())
}

func TestNewDaemon_Defaults(t *testing.T) {
	req := require.New(t)

	daemon := NewDaemon(slog.Default(), nil, nil, DaemonOptions{})

	req.Equal(domain.ServiceName, daemon.options.Name)
	req.NotZero(daemon.options.PID)
	req.Equal(domain.Unregistered, daemon.State())
}
