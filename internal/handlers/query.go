package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/crm/internal/model"
)

type queryPair struct {
	field string
	value string
}

// listQuery is listing request parsed from query string, orderBy keeps the order parameters were sent in
type listQuery struct {
	where   []queryPair
	orderBy []queryPair
	skip    int
	take    int
}

func parseListQuery(rawQuery string) (*listQuery, error) {
	q := &listQuery{}

	for _, part := range strings.Split(rawQuery, "&") {
		if part == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("malformed query parameter %s", rawKey))
		}

		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("malformed value of query parameter %s", key))
		}

		switch {
		case key == "skip":
			if q.skip, err = nonNegative(key, value); err != nil {
				return nil, err
			}
		case key == "take":
			if q.take, err = nonNegative(key, value); err != nil {
				return nil, err
			}
		case strings.HasPrefix(key, "where[") && strings.HasSuffix(key, "]"):
			field, err := bracketField(key, "where[")
			if err != nil {
				return nil, err
			}
			q.where = append(q.where, queryPair{field: field, value: value})
		case strings.HasPrefix(key, "orderBy[") && strings.HasSuffix(key, "]"):
			field, err := bracketField(key, "orderBy[")
			if err != nil {
				return nil, err
			}
			q.orderBy = append(q.orderBy, queryPair{field: field, value: value})
		}
	}

	return q, nil
}

// bracketField extracts field from where[field], where[address][id] refers to address
func bracketField(key, prefix string) (string, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(key, prefix), "]")
	field, sub, nested := strings.Cut(inner, "][")
	if field == "" || (nested && sub != "id") {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unsupported query parameter %s", key))
	}
	return field, nil
}

func nonNegative(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s must be a non-negative integer", key))
	}
	return n, nil
}

func sortOrder(p queryPair) (model.SortOrder, error) {
	order, err := model.ParseSortOrder(p.value)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("orderBy[%s]: %v", p.field, err))
	}
	return order, nil
}

// filterErr keeps UnknownFieldErr as is and turns value parsing failure into bad request
func filterErr(field string, err error) error {
	var fieldErr *model.UnknownFieldErr
	if errors.As(err, &fieldErr) {
		return err
	}
	return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid value of where[%s] - %v", field, err))
}

func customerFindManyArgs(c echo.Context) (model.CustomerFindManyArgs, error) {
	var args model.CustomerFindManyArgs

	q, err := parseListQuery(c.QueryString())
	if err != nil {
		return args, err
	}

	for _, p := range q.where {
		if err := args.Where.Set(p.field, p.value); err != nil {
			return args, filterErr(p.field, err)
		}
	}

	for _, p := range q.orderBy {
		order, err := sortOrder(p)
		if err != nil {
			return args, err
		}

		var o model.CustomerOrderByInput
		if err := o.Set(p.field, order); err != nil {
			return args, err
		}
		args.OrderBy = append(args.OrderBy, o)
	}

	args.Skip = q.skip
	args.Take = q.take
	return args, nil
}

func addressFindManyArgs(c echo.Context) (model.AddressFindManyArgs, error) {
	var args model.AddressFindManyArgs

	q, err := parseListQuery(c.QueryString())
	if err != nil {
		return args, err
	}

	for _, p := range q.where {
		if err := args.Where.Set(p.field, p.value); err != nil {
			return args, filterErr(p.field, err)
		}
	}

	for _, p := range q.orderBy {
		order, err := sortOrder(p)
		if err != nil {
			return args, err
		}

		var o model.AddressOrderByInput
		if err := o.Set(p.field, order); err != nil {
			return args, err
		}
		args.OrderBy = append(args.OrderBy, o)
	}

	args.Skip = q.skip
	args.Take = q.take
	return args, nil
}
