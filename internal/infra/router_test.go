package infra

import (
	"crypto/ed25519"
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/umalmyha/crm/internal/config"
	"github.com/umalmyha/crm/internal/event"
)

func testApp(t *testing.T) *App {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()

	var cfg config.Config
	cfg.StorageDriver = config.StorageDriverPostgres
	cfg.HTTPCfg.CorsOrigins = []string{"*"}
	cfg.AuthCfg.JwtCfg.SigningMethod = jwt.GetSigningMethod("EdDSA")
	cfg.AuthCfg.JwtCfg.PrivateKey = priv
	cfg.AuthCfg.JwtCfg.PublicKey = pub
	cfg.AuthCfg.AccessCfg.ReadRoles = []string{"user"}
	cfg.AuthCfg.AccessCfg.WriteRoles = []string{"admin"}

	app, err := Build(Deps{
		Config:    cfg,
		Logger:    logger,
		Publisher: event.NewLogPublisher(logger),
		Registry:  prometheus.NewRegistry(),
	})
	require.NoError(t, err, "application must be built")
	return app
}

func TestRouter(t *testing.T) {
	e := testApp(t).Router()

	serve := func(method, target string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
		return rec
	}

	t.Log("all entity routes are registered")
	{
		registered := make(map[string]bool)
		for _, r := range e.Routes() {
			registered[r.Method+" "+r.Path] = true
		}

		for _, route := range []string{
			"POST /api/customers",
			"GET /api/customers",
			"GET /api/customers/:id",
			"PATCH /api/customers/:id",
			"DELETE /api/customers/:id",
			"POST /api/addresses",
			"GET /api/addresses",
			"GET /api/addresses/:id",
			"PATCH /api/addresses/:id",
			"DELETE /api/addresses/:id",
			"GET /api/addresses/:id/customers",
			"POST /api/auth/login",
		} {
			require.True(t, registered[route], "route %s must be registered", route)
		}
	}

	t.Log("entity routes are guarded")
	{
		rec := serve(http.MethodGet, "/api/customers")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.JSONEq(t, `{"statusCode":401,"message":"invalid Authorization header format","error":"Unauthorized"}`, rec.Body.String())
	}

	t.Log("liveness and metrics are public")
	{
		require.Equal(t, http.StatusOK, serve(http.MethodGet, "/health/live").Code)
		require.Equal(t, http.StatusOK, serve(http.MethodGet, "/metrics").Code)
	}

	t.Log("unknown route renders structured error")
	{
		rec := serve(http.MethodGet, "/unknown")
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.JSONEq(t, `{"statusCode":404,"message":"Not Found","error":"Not Found"}`, rec.Body.String())
	}
}

func TestChain(t *testing.T) {
	var order []string
	mw := func(name string) echo.MiddlewareFunc {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				order = append(order, name)
				return next(c)
			}
		}
	}

	h := chain(mw("first"), mw("second"))(func(c echo.Context) error {
		order = append(order, "handler")
		return nil
	})

	require.NoError(t, h(echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())))
	require.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestGrpcServer(t *testing.T) {
	server := testApp(t).GrpcServer()

	info, ok := server.GetServiceInfo()["customers.CustomerService"]
	require.True(t, ok, "customers service must be registered")
	require.Len(t, info.Methods, 5)
}
