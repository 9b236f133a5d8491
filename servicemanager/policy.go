package servicemanager

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"helloworld/errors"
	pb "helloworld/proto/servicemanager"

	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
	"gopkg.in/yaml.v3"
)

type Permission string

const (
	PermAdd  Permission = "add"
	PermFind Permission = "find"
	PermList Permission = "list"
)

const (
	anyDomain       = "*"
	anyService      = "*"
	unlabeledCaller = "unlabeled"
)

// Rule grants permissions on services to a caller domain.
type Rule struct {
	Domain      string       `yaml:"domain" validate:"required"`
	Services    []string     `yaml:"services"`
	Permissions []Permission `yaml:"permissions" validate:"required,min=1,dive,oneof=add find list"`
}

// Policy is the service_manager access table. Anything not allowed by a
// rule is denied. A permissive policy logs denials and lets them through.
//
//	permissive: false
//	rules:
//	  - domain: hal_brcm_helloworldservice
//	    services: [vendor.brcm.helloworld.IHelloWorld/default]
//	    permissions: [add]
//	  - domain: platform_app
//	    services: [vendor.brcm.helloworld.IHelloWorld/default]
//	    permissions: [find]
type Policy struct {
	Permissive bool   `yaml:"permissive"`
	Rules      []Rule `yaml:"rules" validate:"dive"`
}

func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy %s: %w", path, err)
	}
	return ParsePolicy(data)
}

func ParsePolicy(data []byte) (*Policy, error) {
	var policy Policy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("parsing policy: %w", err)
	}
	if err := validator.New().Struct(policy); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}
	return &policy, nil
}

// Allows reports whether a rule grants perm on service to callerDomain.
// List is not bound to a service.
func (p *Policy) Allows(callerDomain string, perm Permission, service string) bool {
	for _, rule := range p.Rules {
		if rule.Domain != anyDomain && rule.Domain != callerDomain {
			continue
		}
		if !slices.Contains(rule.Permissions, perm) {
			continue
		}
		if perm == PermList || slices.Contains(rule.Services, anyService) || slices.Contains(rule.Services, service) {
			return true
		}
	}
	return false
}

// Check returns ErrPermissionDenied for a denied access, unless the policy
// is permissive. Every denial is logged.
func (p *Policy) Check(log *slog.Logger, callerDomain string, perm Permission, service string) error {
	if p.Allows(callerDomain, perm, service) {
		return nil
	}
	log.Warn(fmt.Sprintf("avc: denied { %s } for service=%s scontext=%s tclass=service_manager permissive=%d",
		perm, service, callerDomain, boolToInt(p.Permissive)))
	if p.Permissive {
		return nil
	}
	return fmt.Errorf("%w: %s cannot %s %s", errors.ErrPermissionDenied, callerDomain, perm, service)
}

var methodPermissions = map[string]Permission{
	pb.IServiceManager_AddService_FullMethodName:     PermAdd,
	pb.IServiceManager_RemoveService_FullMethodName:  PermAdd,
	pb.IServiceManager_GetService_FullMethodName:     PermFind,
	pb.IServiceManager_CheckService_FullMethodName:   PermFind,
	pb.IServiceManager_WaitForService_FullMethodName: PermFind,
	pb.IServiceManager_IsDeclared_FullMethodName:     PermFind,
	pb.IServiceManager_ListServices_FullMethodName:   PermList,
}

// UnaryInterceptor enforces the policy on directory calls. A nil policy
// enforces nothing.
func (p *Policy) UnaryInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		perm, ok := methodPermissions[info.FullMethod]
		if p == nil || !ok {
			return handler(ctx, req)
		}
		if err := p.Check(log, CallerDomain(ctx), perm, requestedService(req)); err != nil {
			return nil, errors.MapToGRPCError(err)
		}
		return handler(ctx, req)
	}
}

// CallerDomain reads the caller's domain from the incoming metadata.
func CallerDomain(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return unlabeledCaller
	}
	values := md.Get(pb.DomainMetadataKey)
	if len(values) == 0 || values[0] == "" {
		return unlabeledCaller
	}
	return values[0]
}

func requestedService(req any) string {
	switch r := req.(type) {
	case *wrapperspb.StringValue:
		return r.GetValue()
	case *structpb.Struct:
		return r.GetFields()[pb.FieldName].GetStringValue()
	default:
		return ""
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
