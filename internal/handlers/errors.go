package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	appErrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/validation"
)

const internalErrMessage = "Internal server error"

// errorResponse is the body rendered for every failed request
type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    any    `json:"message"`
	Error      string `json:"error"`
}

// HTTPErrorHandler logs error and renders it as errorResponse
func HTTPErrorHandler(logger logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		res := errorResponseOf(err)

		entry := logger.WithFields(logrus.Fields{
			"method": c.Request().Method,
			"uri":    c.Request().RequestURI,
			"status": res.StatusCode,
		})
		if res.StatusCode >= http.StatusInternalServerError {
			entry.Errorf("request failed - %v", err)
		} else {
			entry.Debugf("request rejected - %v", err)
		}

		var rErr error
		if c.Request().Method == http.MethodHead {
			rErr = c.NoContent(res.StatusCode)
		} else {
			rErr = c.JSON(res.StatusCode, res)
		}

		if rErr != nil {
			logger.Errorf("failed to send error response - %v", rErr)
		}
	}
}

func errorResponseOf(err error) *errorResponse {
	code, msg := statusOf(err)
	return &errorResponse{
		StatusCode: code,
		Message:    msg,
		Error:      http.StatusText(code),
	}
}

func statusOf(err error) (int, any) {
	var notFoundErr *appErrors.EntryNotFoundErr
	if errors.As(err, &notFoundErr) {
		return http.StatusNotFound, notFoundErr.Error()
	}

	var pldErr *validation.PayloadError
	if errors.As(err, &pldErr) {
		return http.StatusBadRequest, pldErr.Messages()
	}

	var fieldErr *model.UnknownFieldErr
	if errors.As(err, &fieldErr) {
		return http.StatusBadRequest, fieldErr.Error()
	}

	var businessErr *appErrors.BusinessErr
	if errors.As(err, &businessErr) {
		return http.StatusBadRequest, businessErr.Error()
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code >= http.StatusInternalServerError {
			return echoErr.Code, internalErrMessage
		}

		switch m := echoErr.Message.(type) {
		case string:
			return echoErr.Code, m
		case error:
			return echoErr.Code, m.Error()
		default:
			return echoErr.Code, fmt.Sprint(m)
		}
	}

	return http.StatusInternalServerError, internalErrMessage
}
