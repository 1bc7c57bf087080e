package interceptors

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	appErrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/validation"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func httpToGrpcCode(s int) codes.Code {
	switch s {
	case http.StatusBadRequest:
		return codes.InvalidArgument
	case http.StatusUnauthorized:
		return codes.Unauthenticated
	case http.StatusForbidden:
		return codes.PermissionDenied
	case http.StatusNotFound:
		return codes.NotFound
	default:
		return codes.Internal
	}
}

func grpcCode(err error) codes.Code {
	var notFoundErr *appErrors.EntryNotFoundErr
	if errors.As(err, &notFoundErr) {
		return codes.NotFound
	}

	var pldErr *validation.PayloadError
	var fieldErr *model.UnknownFieldErr
	var businessErr *appErrors.BusinessErr
	if errors.As(err, &pldErr) || errors.As(err, &fieldErr) || errors.As(err, &businessErr) {
		return codes.InvalidArgument
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return httpToGrpcCode(echoErr.Code)
	}

	return codes.Internal
}

// ErrorUnaryInterceptor converts error retrieved from handler to gRPC error with corresponding code
func ErrorUnaryInterceptor(logger logrus.FieldLogger, applicables ...UnaryInterceptorApplicable) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, h grpc.UnaryHandler) (any, error) {
		if !isUnaryInterceptorApplicable(info, applicables...) {
			return h(ctx, req)
		}

		res, err := h(ctx, req)
		if err == nil {
			return res, nil
		}

		if _, ok := status.FromError(err); ok { // it is already grpc status error
			return nil, err
		}

		code := grpcCode(err)
		logger.WithFields(logrus.Fields{"method": info.FullMethod, "code": code.String()}).Errorf("error occurred on grpc request processing - %v", err)

		if code == codes.Internal {
			return nil, status.Error(code, "Internal server error")
		}

		var pldErr *validation.PayloadError
		if errors.As(err, &pldErr) {
			return nil, status.Error(code, strings.Join(pldErr.Messages(), "; "))
		}
		return nil, status.Error(code, err.Error())
	}
}
