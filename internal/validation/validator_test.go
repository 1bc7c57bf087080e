package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/umalmyha/crm/internal/model"
)

func TestValidateNullableFields(t *testing.T) {
	v, err := New()
	require.NoError(t, err, "validator must be built")

	t.Log("unset and null fields are not validated")
	{
		err := v.Validate(&model.CustomerUpdateInput{Email: model.Null[string]()})
		require.NoError(t, err)
	}

	t.Log("set fields are validated against declared rules")
	{
		err := v.Validate(&model.CustomerUpdateInput{FirstName: model.Value(strings.Repeat("a", 257))})
		require.Error(t, err, "first name exceeds max length")

		pldErr, ok := err.(*PayloadError)
		require.True(t, ok, "validation failure must be reported as PayloadError")
		require.Len(t, pldErr.Messages(), 1)
		require.Contains(t, pldErr.Messages()[0], "firstName", "violation must name json field")
	}

	t.Log("nested unique reference requires id")
	{
		err := v.Validate(&model.CustomerUpdateInput{Address: model.Value(model.WhereUniqueInput{})})
		require.Error(t, err, "address reference without id is invalid")
	}

	t.Log("zip range is checked")
	{
		zip := 100000
		err := v.Validate(&model.AddressCreateInput{Zip: &zip})
		require.Error(t, err, "zip must not exceed 99999")
	}
}

func TestBindStrict(t *testing.T) {
	e := echo.New()

	bind := func(body string) (model.CustomerUpdateInput, error) {
		req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		c := e.NewContext(req, httptest.NewRecorder())

		var upd model.CustomerUpdateInput
		err := BindStrict(c, &upd)
		return upd, err
	}

	t.Log("declared fields are accepted")
	{
		upd, err := bind(`{"firstName":"John","lastName":"Doe"}`)
		require.NoError(t, err)
		require.True(t, upd.FirstName.Set)
		require.Equal(t, "Doe", upd.LastName.Value)
	}

	t.Log("server-managed fields are rejected")
	{
		_, err := bind(`{"id":"another-id","firstName":"John"}`)
		require.Error(t, err, "id is not part of update contract")
	}

	t.Log("empty body is an empty patch")
	{
		upd, err := bind(``)
		require.NoError(t, err)
		require.False(t, upd.FirstName.Set)
	}

	t.Log("malformed json is rejected")
	{
		_, err := bind(`{"firstName":`)
		require.Error(t, err)
	}
}
