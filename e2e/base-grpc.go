package e2e

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"helloworld/domain"
	pbhw "helloworld/proto/helloworld"
	pbsm "helloworld/proto/servicemanager"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type BaseGrpcSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseGrpcSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.ServiceManagerAddr == "" {
		s.T().Skip("SERVICEMANAGER_ADDR not set, no running stack to test against")
	}
}

// GrpcConn initializes a gRPC connection with logging, colors, and JSON debugging
func (s *BaseGrpcSuite) GrpcConn(t *testing.T, name string, addr string) *grpc.ClientConn {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)

	marshaler := protojson.MarshalOptions{
		UseProtoNames:   true,
		Multiline:       true,
		EmitUnpopulated: true,
	}

	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
			start := time.Now()
			err := invoker(ctx, method, req, reply, cc, opts...)

			logBuilder := strings.Builder{}
			fmt.Fprintf(&logBuilder, "GRPC %s [%s] in %v", method, status.Code(err), time.Since(start))

			if s.Config.DebugJSON {
				fmt.Fprintln(&logBuilder, "\nREQUEST:")
				fmt.Fprintln(&logBuilder, marshaler.Format(req.(proto.Message)))
				if err != nil {
					fmt.Fprintln(&logBuilder, "ERROR:", err)
				} else {
					fmt.Fprintln(&logBuilder, "RESPONSE:")
					fmt.Fprintln(&logBuilder, marshaler.Format(reply.(proto.Message)))
				}
			}
			t.Log(logBuilder.String())
			return err
		}),
	)
	s.Require().NoError(err, "Failed to connect to gRPC server at "+addr)
	return conn
}

// callerContext labels outgoing calls with the configured domain.
func (s *BaseGrpcSuite) callerContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	return metadata.AppendToOutgoingContext(ctx, pbsm.DomainMetadataKey, s.Config.Domain), cancel
}

// WithServiceManager provides a directory client within a contextual test step
func (s *BaseGrpcSuite) WithServiceManager(name string, fn func(ctx context.Context, client pbsm.IServiceManagerClient)) {
	conn := s.GrpcConn(s.T(), name, s.Config.ServiceManagerAddr)
	defer conn.Close()

	ctx, cancel := s.callerContext()
	defer cancel()
	fn(ctx, pbsm.NewIServiceManagerClient(conn))
}

// WithHelloWorld resolves the bridge and provides its client
func (s *BaseGrpcSuite) WithHelloWorld(name string, fn func(ctx context.Context, client pbhw.IHelloWorldClient)) {
	var address string
	s.WithServiceManager("Resolve "+domain.ServiceName, func(ctx context.Context, client pbsm.IServiceManagerClient) {
		resp, err := client.GetService(ctx, wrapperspb.String(domain.ServiceName))
		s.Require().NoError(err)
		address = resp.GetValue()
	})

	conn := s.GrpcConn(s.T(), name, address)
	defer conn.Close()

	ctx, cancel := s.callerContext()
	defer cancel()
	fn(ctx, pbhw.NewIHelloWorldClient(conn))
}
