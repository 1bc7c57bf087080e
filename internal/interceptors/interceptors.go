package interceptors

import (
	"strings"

	"google.golang.org/grpc"
)

// UnaryInterceptorApplicable decides whether interceptor must run for the call
type UnaryInterceptorApplicable func(*grpc.UnaryServerInfo) bool

func isUnaryInterceptorApplicable(info *grpc.UnaryServerInfo, fns ...UnaryInterceptorApplicable) bool {
	if len(fns) == 0 {
		return true
	}

	for _, fn := range fns {
		if !fn(info) {
			return false
		}
	}
	return true
}

// UnaryApplicableForService limits interceptor to methods of svc
func UnaryApplicableForService(svc string) UnaryInterceptorApplicable {
	return func(info *grpc.UnaryServerInfo) bool {
		// FullMethod is the full RPC method string, i.e., /package.service/method.
		return strings.HasPrefix(info.FullMethod, "/"+svc+"/")
	}
}

// UnaryApplicableForMethods limits interceptor to listed methods of svc
func UnaryApplicableForMethods(svc string, methods ...string) UnaryInterceptorApplicable {
	fullMethods := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		fullMethods["/"+svc+"/"+m] = struct{}{}
	}

	return func(info *grpc.UnaryServerInfo) bool {
		_, ok := fullMethods[info.FullMethod]
		return ok
	}
}
