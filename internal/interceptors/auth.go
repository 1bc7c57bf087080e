package interceptors

import (
	"context"

	"github.com/umalmyha/crm/internal/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const accessTokenHeader = "accessToken"

// AuthUnaryInterceptor verifies that jwt is provided in metadata, valid and its holder has any of roles
func AuthUnaryInterceptor(validator *auth.Verifier, roles []string, applicables ...UnaryInterceptorApplicable) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, h grpc.UnaryHandler) (any, error) {
		if !isUnaryInterceptorApplicable(info, applicables...) {
			return h(ctx, req)
		}

		headers, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "no auth info provided")
		}

		tokenHdr := headers.Get(accessTokenHeader)
		if len(tokenHdr) == 0 {
			return nil, status.Error(codes.Unauthenticated, "accessToken header is missing")
		}

		claims, err := validator.Verify(tokenHdr[0])
		if err != nil {
			return nil, status.Errorf(codes.Unauthenticated, "invalid access token provided - %v", err)
		}

		if len(roles) > 0 && !claims.HasAnyRole(roles...) {
			return nil, status.Error(codes.PermissionDenied, "not enough permissions to perform the action")
		}

		return h(ctx, req)
	}
}
