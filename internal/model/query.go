package model

import (
	"fmt"
	"strings"
)

// SortOrder is sort direction for a single field
type SortOrder string

const (
	// SortOrderAsc sorts ascending
	SortOrderAsc SortOrder = "asc"
	// SortOrderDesc sorts descending
	SortOrderDesc SortOrder = "desc"
)

// ParseSortOrder parses sort direction, case-insensitive
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(s)) {
	case SortOrderAsc:
		return SortOrderAsc, nil
	case SortOrderDesc:
		return SortOrderDesc, nil
	default:
		return "", fmt.Errorf("invalid sort order %q, must be one of asc, desc", s)
	}
}

// OrderField is single field sort directive
type OrderField struct {
	Field string
	Order SortOrder
}

// WhereUniqueInput identifies single entity
type WhereUniqueInput struct {
	ID string `json:"id" validate:"required"`
}

// UnknownFieldErr is raised when filter or sort field doesn't belong to entity contract
type UnknownFieldErr struct {
	Entity string
	Field  string
}

func (e *UnknownFieldErr) Error() string {
	return fmt.Sprintf("%s has no field %q", e.Entity, e.Field)
}

func orderFields(pairs ...orderPair) []OrderField {
	fields := make([]OrderField, 0)
	for _, p := range pairs {
		if p.order != nil {
			fields = append(fields, OrderField{Field: p.field, Order: *p.order})
		}
	}
	return fields
}

type orderPair struct {
	field string
	order *SortOrder
}
