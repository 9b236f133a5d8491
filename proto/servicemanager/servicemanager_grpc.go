// Package servicemanager holds the gRPC binding of the service directory.
//
// Registrations travel as a Struct with the fields below; listings as a
// ListValue of such Structs.
package servicemanager

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "android.os.IServiceManager"

// Registration struct fields.
const (
	FieldName         = "name"
	FieldAddress      = "address"
	FieldPID          = "pid"
	FieldRegisteredAt = "registered_at"
	FieldDeclared     = "declared"
)

// DomainMetadataKey carries the caller's security domain.
const DomainMetadataKey = "x-selinux-domain"

const (
	IServiceManager_AddService_FullMethodName     = "/android.os.IServiceManager/AddService"
	IServiceManager_GetService_FullMethodName     = "/android.os.IServiceManager/GetService"
	IServiceManager_CheckService_FullMethodName   = "/android.os.IServiceManager/CheckService"
	IServiceManager_WaitForService_FullMethodName = "/android.os.IServiceManager/WaitForService"
	IServiceManager_IsDeclared_FullMethodName     = "/android.os.IServiceManager/IsDeclared"
	IServiceManager_ListServices_FullMethodName   = "/android.os.IServiceManager/ListServices"
	IServiceManager_RemoveService_FullMethodName  = "/android.os.IServiceManager/RemoveService"
)

// IServiceManagerClient is the client API for IServiceManager.
type IServiceManagerClient interface {
	AddService(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	GetService(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	CheckService(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	WaitForService(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	IsDeclared(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	ListServices(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error)
	RemoveService(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type iServiceManagerClient struct {
	cc grpc.ClientConnInterface
}

func NewIServiceManagerClient(cc grpc.ClientConnInterface) IServiceManagerClient {
	return &iServiceManagerClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *iServiceManagerClient) AddService(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, IServiceManager_AddService_FullMethodName, in, opts)
}

func (c *iServiceManagerClient) GetService(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	return invoke[wrapperspb.StringValue](ctx, c.cc, IServiceManager_GetService_FullMethodName, in, opts)
}

func (c *iServiceManagerClient) CheckService(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	return invoke[wrapperspb.StringValue](ctx, c.cc, IServiceManager_CheckService_FullMethodName, in, opts)
}

func (c *iServiceManagerClient) WaitForService(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	return invoke[wrapperspb.StringValue](ctx, c.cc, IServiceManager_WaitForService_FullMethodName, in, opts)
}

func (c *iServiceManagerClient) IsDeclared(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	return invoke[wrapperspb.BoolValue](ctx, c.cc, IServiceManager_IsDeclared_FullMethodName, in, opts)
}

func (c *iServiceManagerClient) ListServices(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	return invoke[structpb.ListValue](ctx, c.cc, IServiceManager_ListServices_FullMethodName, in, opts)
}

func (c *iServiceManagerClient) RemoveService(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, IServiceManager_RemoveService_FullMethodName, in, opts)
}

// IServiceManagerServer is the server API for IServiceManager.
// Implementations must embed UnimplementedIServiceManagerServer.
type IServiceManagerServer interface {
	AddService(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	GetService(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	CheckService(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	WaitForService(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	IsDeclared(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error)
	ListServices(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	RemoveService(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	mustEmbedUnimplementedIServiceManagerServer()
}

type UnimplementedIServiceManagerServer struct{}

func (UnimplementedIServiceManagerServer) AddService(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method AddService not implemented")
}
func (UnimplementedIServiceManagerServer) GetService(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method GetService not implemented")
}
func (UnimplementedIServiceManagerServer) CheckService(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method CheckService not implemented")
}
func (UnimplementedIServiceManagerServer) WaitForService(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method WaitForService not implemented")
}
func (UnimplementedIServiceManagerServer) IsDeclared(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method IsDeclared not implemented")
}
func (UnimplementedIServiceManagerServer) ListServices(context.Context, *emptypb.Empty) (*structpb.ListValue, error) {
	return nil, status.Error(codes.Unimplemented, "method ListServices not implemented")
}
func (UnimplementedIServiceManagerServer) RemoveService(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method RemoveService not implemented")
}
func (UnimplementedIServiceManagerServer) mustEmbedUnimplementedIServiceManagerServer() {}

func RegisterIServiceManagerServer(s grpc.ServiceRegistrar, srv IServiceManagerServer) {
	s.RegisterService(&IServiceManager_ServiceDesc, srv)
}

func handler[Req any, Resp any](fullMethod string, call func(IServiceManagerServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(IServiceManagerServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(srv.(IServiceManagerServer), ctx, req.(*Req))
		})
	}
}

// IServiceManager_ServiceDesc is the grpc.ServiceDesc for IServiceManager.
var IServiceManager_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IServiceManagerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AddService", Handler: handler(IServiceManager_AddService_FullMethodName, IServiceManagerServer.AddService)},
		{MethodName: "GetService", Handler: handler(IServiceManager_GetService_FullMethodName, IServiceManagerServer.GetService)},
		{MethodName: "CheckService", Handler: handler(IServiceManager_CheckService_FullMethodName, IServiceManagerServer.CheckService)},
		{MethodName: "WaitForService", Handler: handler(IServiceManager_WaitForService_FullMethodName, IServiceManagerServer.WaitForService)},
		{MethodName: "IsDeclared", Handler: handler(IServiceManager_IsDeclared_FullMethodName, IServiceManagerServer.IsDeclared)},
		{MethodName: "ListServices", Handler: handler(IServiceManager_ListServices_FullMethodName, IServiceManagerServer.ListServices)},
		{MethodName: "RemoveService", Handler: handler(IServiceManager_RemoveService_FullMethodName, IServiceManagerServer.RemoveService)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "android/os/IServiceManager.aidl",
}
