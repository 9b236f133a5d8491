// Package helloworld holds the gRPC binding of the frozen
// vendor.brcm.helloworld.IHelloWorld interface, version 1.
//
// Payloads are protobuf well-known types so the binding needs no generated
// message code: sayHello(in String message) carries a StringValue and
// returns Empty. Failures travel as gRPC statuses.
package helloworld

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "vendor.brcm.helloworld.IHelloWorld"

const (
	IHelloWorld_SayHello_FullMethodName            = "/vendor.brcm.helloworld.IHelloWorld/SayHello"
	IHelloWorld_GetInterfaceVersion_FullMethodName = "/vendor.brcm.helloworld.IHelloWorld/GetInterfaceVersion"
	IHelloWorld_GetInterfaceHash_FullMethodName    = "/vendor.brcm.helloworld.IHelloWorld/GetInterfaceHash"
)

// IHelloWorldClient is the client API for IHelloWorld.
type IHelloWorldClient interface {
	SayHello(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
	GetInterfaceVersion(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.Int32Value, error)
	GetInterfaceHash(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type iHelloWorldClient struct {
	cc grpc.ClientConnInterface
}

func NewIHelloWorldClient(cc grpc.ClientConnInterface) IHelloWorldClient {
	return &iHelloWorldClient{cc}
}

func (c *iHelloWorldClient) SayHello(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, IHelloWorld_SayHello_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *iHelloWorldClient) GetInterfaceVersion(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.Int32Value, error) {
	out := new(wrapperspb.Int32Value)
	if err := c.cc.Invoke(ctx, IHelloWorld_GetInterfaceVersion_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *iHelloWorldClient) GetInterfaceHash(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, IHelloWorld_GetInterfaceHash_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// IHelloWorldServer is the server API for IHelloWorld.
// Implementations must embed UnimplementedIHelloWorldServer.
type IHelloWorldServer interface {
	SayHello(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	GetInterfaceVersion(context.Context, *emptypb.Empty) (*wrapperspb.Int32Value, error)
	GetInterfaceHash(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	mustEmbedUnimplementedIHelloWorldServer()
}

type UnimplementedIHelloWorldServer struct{}

func (UnimplementedIHelloWorldServer) SayHello(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method SayHello not implemented")
}
func (UnimplementedIHelloWorldServer) GetInterfaceVersion(context.Context, *emptypb.Empty) (*wrapperspb.Int32Value, error) {
	return nil, status.Error(codes.Unimplemented, "method GetInterfaceVersion not implemented")
}
func (UnimplementedIHelloWorldServer) GetInterfaceHash(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method GetInterfaceHash not implemented")
}
func (UnimplementedIHelloWorldServer) mustEmbedUnimplementedIHelloWorldServer() {}

func RegisterIHelloWorldServer(s grpc.ServiceRegistrar, srv IHelloWorldServer) {
	s.RegisterService(&IHelloWorld_ServiceDesc, srv)
}

func _IHelloWorld_SayHello_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IHelloWorldServer).SayHello(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: IHelloWorld_SayHello_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IHelloWorldServer).SayHello(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _IHelloWorld_GetInterfaceVersion_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IHelloWorldServer).GetInterfaceVersion(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: IHelloWorld_GetInterfaceVersion_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IHelloWorldServer).GetInterfaceVersion(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _IHelloWorld_GetInterfaceHash_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IHelloWorldServer).GetInterfaceHash(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: IHelloWorld_GetInterfaceHash_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IHelloWorldServer).GetInterfaceHash(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// IHelloWorld_ServiceDesc is the grpc.ServiceDesc for IHelloWorld.
var IHelloWorld_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IHelloWorldServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SayHello", Handler: _IHelloWorld_SayHello_Handler},
		{MethodName: "GetInterfaceVersion", Handler: _IHelloWorld_GetInterfaceVersion_Handler},
		{MethodName: "GetInterfaceHash", Handler: _IHelloWorld_GetInterfaceHash_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "vendor/brcm/helloworld/IHelloWorld.aidl",
}
