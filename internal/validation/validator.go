package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	gojson "github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/umalmyha/crm/internal/model"
)

type violation struct {
	Field   string
	Message string
}

// PayloadError holds all violations found in payload
type PayloadError struct {
	violations []violation
}

func (e *PayloadError) Error() string {
	buff := bytes.NewBufferString("")

	for _, err := range e.violations {
		buff.WriteString(err.Message)
		buff.WriteString("\n")
	}

	return buff.String()
}

// Violation adds violation to the error
func (e *PayloadError) Violation(field, message string) {
	e.violations = append(e.violations, violation{Field: field, Message: message})
}

// Messages returns violation messages in the order they were found
func (e *PayloadError) Messages() []string {
	messages := make([]string, 0, len(e.violations))
	for _, v := range e.violations {
		messages = append(messages, v.Message)
	}
	return messages
}

// EchoValidator is validator compatible with echo
type EchoValidator struct {
	validator  *validator.Validate
	translator ut.Translator
}

// Echo builds EchoValidator
func Echo(validator *validator.Validate, translator ut.Translator) *EchoValidator {
	return &EchoValidator{
		validator:  validator,
		translator: translator,
	}
}

// New builds EchoValidator with english translations, JSON field names and support of nullable patch fields
func New() (*EchoValidator, error) {
	enLocale := en.New()
	unvTranslator := ut.New(enLocale, enLocale)
	trans, ok := unvTranslator.GetTranslator("en")
	if !ok {
		return nil, errors.New("failed to build validator because of missing en translations")
	}

	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterCustomTypeFunc(
		nullableValue,
		model.Nullable[string]{},
		model.Nullable[int]{},
		model.Nullable[time.Time]{},
		model.Nullable[model.WhereUniqueInput]{},
	)

	if err := enTranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, fmt.Errorf("failed to register en translations - %w", err)
	}

	return Echo(v, trans), nil
}

// Validate validates struct and returns PayloadError in case of violations
func (v *EchoValidator) Validate(i any) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return v.payloadError(ve)
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (v *EchoValidator) payloadError(ve validator.ValidationErrors) error {
	pldErr := &PayloadError{violations: make([]violation, 0)}
	for _, e := range ve {
		pldErr.Violation(e.Field(), e.Translate(v.translator))
	}
	return pldErr
}

// BindStrict decodes JSON body rejecting any field which is not declared by destination
func BindStrict(c echo.Context, dst any) error {
	body := c.Request().Body
	if body == nil {
		return nil
	}
	return DecodeStrict(body, dst)
}

// DecodeStrict decodes JSON rejecting unknown fields with PayloadError, empty input leaves dst untouched
func DecodeStrict(r io.Reader, dst any) error {
	dec := gojson.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}

		if strings.HasPrefix(err.Error(), "json: unknown field ") {
			field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
			pldErr := &PayloadError{}
			pldErr.Violation(field, fmt.Sprintf("property %s should not exist", field))
			return pldErr
		}

		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func nullableValue(field reflect.Value) any {
	if v, ok := field.Interface().(interface{ ValidationValue() any }); ok {
		return v.ValidationValue()
	}
	return nil
}
