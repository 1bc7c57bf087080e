package interceptors

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/umalmyha/crm/internal/auth"
	appErrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/validation"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var customersInfo = &grpc.UnaryServerInfo{FullMethod: "/customers.CustomerService/FindOne"}

func failingHandler(err error) grpc.UnaryHandler {
	return func(context.Context, any) (any, error) {
		return nil, err
	}
}

func TestErrorUnaryInterceptor(t *testing.T) {
	logger, _ := test.NewNullLogger()
	interceptor := ErrorUnaryInterceptor(logger, UnaryApplicableForService("customers.CustomerService"))

	pldErr := &validation.PayloadError{}
	pldErr.Violation("email", "email must be a maximum of 256 characters in length")

	cases := []struct {
		name string
		err  error
		code codes.Code
	}{
		{name: "not found", err: appErrors.NewEntryNotFoundErr(map[string]string{"id": "1"}), code: codes.NotFound},
		{name: "payload", err: pldErr, code: codes.InvalidArgument},
		{name: "bad request", err: echo.NewHTTPError(http.StatusBadRequest, "bad"), code: codes.InvalidArgument},
		{name: "unauthorized", err: echo.ErrUnauthorized, code: codes.Unauthenticated},
		{name: "unknown", err: errors.New("connection reset"), code: codes.Internal},
		{name: "status", err: status.Error(codes.Aborted, "aborted"), code: codes.Aborted},
	}

	for _, tc := range cases {
		t.Log(tc.name)
		{
			_, err := interceptor(context.Background(), nil, customersInfo, failingHandler(tc.err))
			require.Equal(t, tc.code, status.Code(err))
		}
	}

	t.Log("internal error details are hidden")
	{
		_, err := interceptor(context.Background(), nil, customersInfo, failingHandler(errors.New("password=secret")))
		st, _ := status.FromError(err)
		require.Equal(t, "Internal server error", st.Message())
	}

	t.Log("other services are not affected")
	{
		plain := errors.New("plain")
		_, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/auth.AuthService/Login"}, failingHandler(plain))
		require.ErrorIs(t, err, plain)
	}
}

func TestAuthUnaryInterceptor(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	method := jwt.GetSigningMethod("EdDSA")
	issuer := auth.NewSigner("test-issuer", method, time.Minute, priv)
	interceptor := AuthUnaryInterceptor(auth.NewVerifier("test-issuer", method, pub), []string{"admin"})

	ok := func(context.Context, any) (any, error) {
		return "ok", nil
	}

	withToken := func(token string) context.Context {
		return metadata.NewIncomingContext(context.Background(), metadata.Pairs("accessToken", token))
	}

	t.Log("no metadata")
	{
		_, err := interceptor(context.Background(), nil, customersInfo, ok)
		require.Equal(t, codes.Unauthenticated, status.Code(err))
	}

	t.Log("invalid token")
	{
		_, err := interceptor(withToken("garbage"), nil, customersInfo, ok)
		require.Equal(t, codes.Unauthenticated, status.Code(err))
	}

	t.Log("missing role")
	{
		user, err := issuer.Sign("user-id", []string{"user"}, time.Now())
		require.NoError(t, err)

		_, err = interceptor(withToken(user.Signed), nil, customersInfo, ok)
		require.Equal(t, codes.PermissionDenied, status.Code(err))
	}

	t.Log("valid token with role")
	{
		admin, err := issuer.Sign("admin-id", []string{"admin"}, time.Now())
		require.NoError(t, err)

		res, err := interceptor(withToken(admin.Signed), nil, customersInfo, ok)
		require.NoError(t, err)
		require.Equal(t, "ok", res)
	}
}

func TestUnaryApplicable(t *testing.T) {
	forService := UnaryApplicableForService("customers.CustomerService")
	forReads := UnaryApplicableForMethods("customers.CustomerService", "FindOne", "FindMany")

	require.True(t, forService(customersInfo))
	require.False(t, forService(&grpc.UnaryServerInfo{FullMethod: "/customers.CustomerServiceV2/FindOne"}))
	require.True(t, forReads(customersInfo))
	require.False(t, forReads(&grpc.UnaryServerInfo{FullMethod: "/customers.CustomerService/Delete"}))
}
