package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestMapToGRPCError_IllegalStateKeepsSentinel(t *testing.T) {
	req := require.New(t)

	// Given a failed write reported by the bridge
	err := fmt.Errorf("%w: short write", ErrWriteFailure)

	// When it crosses the wire
	grpcErr := MapToGRPCError(err)

	// Then the caller sees FailedPrecondition
	st, ok := status.FromError(grpcErr)
	req.True(ok)
	req.Equal(codes.FailedPrecondition, st.Code())

	// And the client restores the exact sentinel
	restored := FromGRPCError(grpcErr)
	req.ErrorIs(restored, ErrWriteFailure)
	req.False(errors.Is(restored, ErrResourceUnavailable))
}

func TestMapToGRPCError_UnknownErrorIsInternal(t *testing.T) {
	req := require.New(t)
	grpcErr := MapToGRPCError(errors.New("boom"))
	req.Equal(codes.Internal, status.Code(grpcErr))
	req.Nil(MapToGRPCError(nil))
}

func TestFromGRPCError_PlainStatusCodes(t *testing.T) {
	req := require.New(t)
	req.ErrorIs(FromGRPCError(status.Error(codes.NotFound, "gone")), ErrServiceNotFound)
	req.ErrorIs(FromGRPCError(status.Error(codes.Unavailable, "down")), ErrServiceUnavailable)
	req.ErrorIs(FromGRPCError(status.Error(codes.PermissionDenied, "avc")), ErrPermissionDenied)
}
