package servicemanager

import (
	"context"
	"fmt"

	"helloworld/domain"
	"helloworld/errors"
	pb "helloworld/proto/servicemanager"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client talks to a remote directory on behalf of one caller domain.
// Errors are domain sentinels restored by errors.FromGRPCError.
type Client struct {
	conn   *grpc.ClientConn
	rpc    pb.IServiceManagerClient
	domain string
}

// Dial connects to the directory at address. It does not block: the
// connection is established on the first call.
func Dial(address, callerDomain string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not connect to servicemanager at %s: %w", address, err)
	}
	c := NewClient(conn, callerDomain)
	c.conn = conn
	return c, nil
}

// NewClient wraps an existing connection. Close does not close it.
func NewClient(cc grpc.ClientConnInterface, callerDomain string) *Client {
	return &Client{rpc: pb.NewIServiceManagerClient(cc), domain: callerDomain}
}

func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *Client) outgoing(ctx context.Context) context.Context {
	if c.domain == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, pb.DomainMetadataKey, c.domain)
}

func (c *Client) AddService(ctx context.Context, reg domain.Registration) error {
	_, err := c.rpc.AddService(c.outgoing(ctx), toStruct(ServiceInfo{Registration: reg}))
	return errors.FromGRPCError(err)
}

// GetService resolves name to a dial target.
func (c *Client) GetService(ctx context.Context, name string) (string, error) {
	resp, err := c.rpc.GetService(c.outgoing(ctx), wrapperspb.String(name))
	if err != nil {
		return "", errors.FromGRPCError(err)
	}
	return resp.GetValue(), nil
}

// CheckService resolves name without waiting.
func (c *Client) CheckService(ctx context.Context, name string) (string, error) {
	resp, err := c.rpc.CheckService(c.outgoing(ctx), wrapperspb.String(name))
	if err != nil {
		return "", errors.FromGRPCError(err)
	}
	return resp.GetValue(), nil
}

// WaitForService blocks until name is registered or ctx is done.
func (c *Client) WaitForService(ctx context.Context, name string) (string, error) {
	resp, err := c.rpc.WaitForService(c.outgoing(ctx), wrapperspb.String(name))
	if err != nil {
		return "", errors.FromGRPCError(err)
	}
	return resp.GetValue(), nil
}

func (c *Client) IsDeclared(ctx context.Context, name string) (bool, error) {
	resp, err := c.rpc.IsDeclared(c.outgoing(ctx), wrapperspb.String(name))
	if err != nil {
		return false, errors.FromGRPCError(err)
	}
	return resp.GetValue(), nil
}

func (c *Client) ListServices(ctx context.Context) ([]ServiceInfo, error) {
	resp, err := c.rpc.ListServices(c.outgoing(ctx), &emptypb.Empty{})
	if err != nil {
		return nil, errors.FromGRPCError(err)
	}
	infos := make([]ServiceInfo, 0, len(resp.GetValues()))
	for _, value := range resp.GetValues() {
		info, err := fromStruct(value.GetStructValue())
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (c *Client) RemoveService(ctx context.Context, name string) error {
	_, err := c.rpc.RemoveService(c.outgoing(ctx), wrapperspb.String(name))
	return errors.FromGRPCError(err)
}
