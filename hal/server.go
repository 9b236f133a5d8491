package hal

import (
	"context"
	"log/slog"

	"helloworld/domain"
	"helloworld/errors"
	pb "helloworld/proto/helloworld"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Server exposes the bridge over the frozen remote interface.
type Server struct {
	pb.UnimplementedIHelloWorldServer
	log     *slog.Logger
	service IHelloWorldService
}

func NewServer(log *slog.Logger, service IHelloWorldService) *Server {
	return &Server{log: log, service: service}
}

func (s *Server) SayHello(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if err := s.service.SayHello(ctx, domain.NewMessage(req.GetValue())); err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *Server) GetInterfaceVersion(context.Context, *emptypb.Empty) (*wrapperspb.Int32Value, error) {
	return wrapperspb.Int32(domain.InterfaceVersion), nil
}

func (s *Server) GetInterfaceHash(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(domain.InterfaceHash()), nil
}
