package servicemanager

import (
	"context"
	"log/slog"
	"testing"

	"helloworld/domain"
	"helloworld/errors"
	pb "helloworld/proto/servicemanager"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const helloPolicy = `
permissive: false
rules:
  - domain: hal_brcm_helloworldservice
    services: [vendor.brcm.helloworld.IHelloWorld/default]
    permissions: [add]
  - domain: platform_app
    services: [vendor.brcm.helloworld.IHelloWorld/default]
    permissions: [find]
  - domain: shell
    services: ["*"]
    permissions: [find, list]
`

func TestPolicy_Allows(t *testing.T) {
	req := require.New(t)
	policy, err := ParsePolicy([]byte(helloPolicy))
	req.NoError(err)

	req.True(policy.Allows("hal_brcm_helloworldservice", PermAdd, domain.ServiceName))
	req.False(policy.Allows("hal_brcm_helloworldservice", PermFind, domain.ServiceName))
	req.True(policy.Allows("platform_app", PermFind, domain.ServiceName))
	req.False(policy.Allows("platform_app", PermAdd, domain.ServiceName))
	req.False(policy.Allows("platform_app", PermFind, "other/default"))
	req.True(policy.Allows("shell", PermFind, "other/default"))
	req.True(policy.Allows("shell", PermList, ""))
	req.False(policy.Allows("untrusted_app", PermFind, domain.ServiceName))
}

func TestPolicy_UnknownPermissionRejected(t *testing.T) {
	req := require.New(t)

	_, err := ParsePolicy([]byte("rules:\n  - domain: x\n    services: ['*']\n    permissions: [delete]\n"))

	req.Error(err)
}

func TestPolicy_CheckPermissive(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	enforcing := &Policy{}
	permissive := &Policy{Permissive: true}

	req.ErrorIs(enforcing.Check(log, "untrusted_app", PermFind, domain.ServiceName), errors.ErrPermissionDenied)
	req.NoError(permissive.Check(log, "untrusted_app", PermFind, domain.ServiceName))
}

func TestPolicy_UnaryInterceptor(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	policy, err := ParsePolicy([]byte(helloPolicy))
	req.NoError(err)
	interceptor := policy.UnaryInterceptor(log)
	info := &grpc.UnaryServerInfo{FullMethod: pb.IServiceManager_GetService_FullMethodName}
	called := false
	handler := func(ctx context.Context, req any) (any, error) {
		called = true
		return wrapperspb.String("addr"), nil
	}

	// Given an app domain allowed to find the service
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(pb.DomainMetadataKey, "platform_app"))
	_, err = interceptor(ctx, wrapperspb.String(domain.ServiceName), info, handler)
	req.NoError(err)
	req.True(called)

	// Given a caller without label
	called = false
	_, err = interceptor(context.Background(), wrapperspb.String(domain.ServiceName), info, handler)
	req.False(called)
	req.Equal(codes.PermissionDenied, status.Code(err))
}

func TestPolicy_NilInterceptorAllowsAll(t *testing.T) {
	req := require.New(t)
	var policy *Policy
	interceptor := policy.UnaryInterceptor(slog.Default())
	info := &grpc.UnaryServerInfo{FullMethod: pb.IServiceManager_AddService_FullMethodName}

	_, err := interceptor(context.Background(), wrapperspb.String("x"), info, func(ctx context.Context, req any) (any, error) {
		return nil, nil
	})

	req.NoError(err)
}
