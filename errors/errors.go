package errors

import (
	"errors"
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const errorDomain = "vendor.brcm.helloworld"

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	// Kernel publisher
	ErrInvalidArgument = fmt.Errorf("invalid argument")

	// Bridge service, IllegalState class
	ErrResourceUnavailable = fmt.Errorf("resource unavailable")
	ErrWriteFailure        = fmt.Errorf("write failure")
	ErrRegistrationFailure = fmt.Errorf("registration failure")

	// Directory
	ErrServiceNotFound   = fmt.Errorf("service not found")
	ErrAlreadyRegistered = fmt.Errorf("service already registered")
	ErrNotDeclared       = fmt.Errorf("service not declared in manifest")
	ErrPermissionDenied  = fmt.Errorf("permission denied")

	// Client stub
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrInterfaceMismatch  = fmt.Errorf("interface mismatch")
)

type mapping struct {
	err    error
	code   codes.Code
	reason string
}

var mappings = []mapping{
	{ErrResourceUnavailable, codes.FailedPrecondition, "RESOURCE_UNAVAILABLE"},
	{ErrWriteFailure, codes.FailedPrecondition, "WRITE_FAILURE"},
	{ErrNotDeclared, codes.FailedPrecondition, "NOT_DECLARED"},
	{ErrInvalidArgument, codes.InvalidArgument, "INVALID_ARGUMENT"},
	{ErrServiceNotFound, codes.NotFound, "SERVICE_NOT_FOUND"},
	{ErrAlreadyRegistered, codes.AlreadyExists, "ALREADY_REGISTERED"},
	{ErrPermissionDenied, codes.PermissionDenied, "PERMISSION_DENIED"},
	{ErrServiceUnavailable, codes.Unavailable, "SERVICE_UNAVAILABLE"},
	{ErrInterfaceMismatch, codes.FailedPrecondition, "INTERFACE_MISMATCH"},
}

// MapToGRPCError converts a domain error into a gRPC status. The matched
// sentinel travels as the ErrorInfo reason so FromGRPCError can restore it.
// ResourceUnavailable and WriteFailure both surface as FailedPrecondition,
// the IllegalState class of the remote interface.
func MapToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	for _, m := range mappings {
		if !errors.Is(err, m.err) {
			continue
		}
		st, detailErr := status.New(m.code, err.Error()).WithDetails(&errdetails.ErrorInfo{
			Reason: m.reason,
			Domain: errorDomain,
		})
		if detailErr != nil {
			return status.Error(m.code, err.Error())
		}
		return st.Err()
	}
	return status.Error(codes.Internal, err.Error())
}

// FromGRPCError restores the domain sentinel carried by a gRPC status.
// Statuses without a known reason are returned unchanged.
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	for _, detail := range st.Details() {
		info, ok := detail.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != errorDomain {
			continue
		}
		for _, m := range mappings {
			if m.reason == info.GetReason() {
				return fmt.Errorf("%w: %s", m.err, st.Message())
			}
		}
	}
	switch st.Code() {
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrServiceNotFound, st.Message())
	case codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrPermissionDenied, st.Message())
	case codes.Unavailable:
		return fmt.Errorf("%w: %s", ErrServiceUnavailable, st.Message())
	}
	return err
}
