package handlers

import (
	"errors"
	"fmt"
	"net/http"

	gojson "github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
)

// JSONSerializer is echo serializer backed by goccy/go-json
type JSONSerializer struct{}

// Serialize writes i as JSON to the response
func (JSONSerializer) Serialize(c echo.Context, i any, indent string) error {
	enc := gojson.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

// Deserialize reads JSON from request body into i
func (JSONSerializer) Deserialize(c echo.Context, i any) error {
	err := gojson.NewDecoder(c.Request().Body).Decode(i)
	if err == nil {
		return nil
	}

	var typeErr *gojson.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		msg := fmt.Sprintf("Unmarshal type error: expected=%v, got=%v, field=%v, offset=%v", typeErr.Type, typeErr.Value, typeErr.Field, typeErr.Offset)
		return echo.NewHTTPError(http.StatusBadRequest, msg).SetInternal(err)
	}

	var syntaxErr *gojson.SyntaxError
	if errors.As(err, &syntaxErr) {
		msg := fmt.Sprintf("Syntax error: offset=%v, error=%v", syntaxErr.Offset, syntaxErr.Error())
		return echo.NewHTTPError(http.StatusBadRequest, msg).SetInternal(err)
	}

	return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
}
