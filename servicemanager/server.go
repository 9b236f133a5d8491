package servicemanager

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"helloworld/domain"
	"helloworld/errors"
	pb "helloworld/proto/servicemanager"

	"github.com/samber/lo"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Server is the gRPC face of the directory. Every method answers with a
// status produced by errors.MapToGRPCError.
type Server struct {
	pb.UnimplementedIServiceManagerServer
	log           *slog.Logger
	registry      *Registry
	manifest      *Manifest
	lookupTimeout time.Duration
	now           func() time.Time
}

// NewServer builds a directory server. A nil manifest accepts any name and
// reports every registered name as declared. With a positive
// lookupTimeout, GetService of a declared but not yet registered name waits
// up to that long.
func NewServer(log *slog.Logger, registry *Registry, manifest *Manifest, lookupTimeout time.Duration) *Server {
	return &Server{
		log:           log,
		registry:      registry,
		manifest:      manifest,
		lookupTimeout: lookupTimeout,
		now:           time.Now,
	}
}

func (s *Server) AddService(_ context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	info, err := fromStruct(req)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	if info.Name == "" || info.Address == "" {
		return nil, errors.MapToGRPCError(fmt.Errorf("%w: name and address are required", errors.ErrInvalidArgument))
	}
	if s.manifest != nil && !s.manifest.IsDeclared(info.Name) {
		s.log.Warn("Refusing undeclared service", "name", info.Name, "pid", info.PID)
		return nil, errors.MapToGRPCError(fmt.Errorf("%w: %s", errors.ErrNotDeclared, info.Name))
	}
	reg := info.Registration
	reg.RegisteredAt = s.now()
	if err := s.registry.Add(reg); err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	s.log.Info("Service registered", "name", reg.Name, "address", reg.Address, "pid", reg.PID)
	return &emptypb.Empty{}, nil
}

func (s *Server) GetService(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	name := req.GetValue()
	reg, err := s.registry.Get(name)
	if err == nil {
		return wrapperspb.String(reg.Address), nil
	}
	if s.lookupTimeout <= 0 || !s.declared(name) {
		return nil, errors.MapToGRPCError(err)
	}
	waitCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()
	reg, err = s.registry.Wait(waitCtx, name)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return wrapperspb.String(reg.Address), nil
}

// declared falls back to the registry when no manifest is loaded, so that
// whatever AddService accepted can be resolved.
func (s *Server) declared(name string) bool {
	if s.manifest == nil {
		_, err := s.registry.Get(name)
		return err == nil
	}
	return s.manifest.IsDeclared(name)
}

func (s *Server) CheckService(_ context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	reg, err := s.registry.Get(req.GetValue())
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return wrapperspb.String(reg.Address), nil
}

func (s *Server) WaitForService(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	reg, err := s.registry.Wait(ctx, req.GetValue())
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return wrapperspb.String(reg.Address), nil
}

func (s *Server) IsDeclared(_ context.Context, req *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	return wrapperspb.Bool(s.declared(req.GetValue())), nil
}

func (s *Server) ListServices(_ context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	values := lo.Map(s.registry.List(), func(reg domain.Registration, _ int) *structpb.Value {
		return structpb.NewStructValue(toStruct(ServiceInfo{
			Registration: reg,
			Declared:     s.declared(reg.Name),
		}))
	})
	return &structpb.ListValue{Values: values}, nil
}

func (s *Server) RemoveService(_ context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	name := req.GetValue()
	if !s.registry.Remove(name) {
		return nil, errors.MapToGRPCError(fmt.Errorf("%w: %s", errors.ErrServiceNotFound, name))
	}
	s.log.Info("Service removed", "name", name)
	return &emptypb.Empty{}, nil
}
