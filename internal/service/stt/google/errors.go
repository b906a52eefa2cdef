package google

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"interview-analysis-service/internal/service/stt"
)

// classifyInline maps a gRPC status from a synchronous recognize call to a
// structured code. Inline payload limits surface as InvalidArgument or
// OutOfRange from both API generations.
func classifyInline(backend string, err error) *stt.Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return stt.NewError(stt.CodeTimeout, backend, err)
	}
	switch status.Code(err) {
	case codes.InvalidArgument, codes.OutOfRange:
		return stt.NewError(stt.CodePayloadTooLong, backend, err)
	case codes.DeadlineExceeded, codes.Canceled:
		return stt.NewError(stt.CodeTimeout, backend, err)
	case codes.Unavailable, codes.Unauthenticated, codes.PermissionDenied, codes.ResourceExhausted:
		return stt.NewError(stt.CodeUnavailable, backend, err)
	}
	return stt.NewError(stt.CodeInternal, backend, err)
}

// classifyStaged maps a failure from a long-running job. Size never
// invalidates the staged path, so InvalidArgument stays internal here.
func classifyStaged(backend string, err error) *stt.Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return stt.NewError(stt.CodeTimeout, backend, err)
	}
	switch status.Code(err) {
	case codes.DeadlineExceeded, codes.Canceled:
		return stt.NewError(stt.CodeTimeout, backend, err)
	case codes.Unavailable, codes.Unauthenticated, codes.PermissionDenied, codes.ResourceExhausted:
		return stt.NewError(stt.CodeUnavailable, backend, err)
	}
	return stt.NewError(stt.CodeInternal, backend, err)
}
