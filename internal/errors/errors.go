package errors

import (
	"fmt"

	gojson "github.com/goccy/go-json"
)

// BusinessErr is raised when request breaks some business rule, target names the offending input
type BusinessErr struct {
	target  string
	message string
}

func (e *BusinessErr) Error() string {
	return e.message
}

func (e *BusinessErr) Target() string {
	return e.target
}

func NewBusinessErr(target string, msg string) error {
	return &BusinessErr{
		target:  target,
		message: msg,
	}
}

// EntryNotFoundErr is raised when no entry matches lookup criteria
type EntryNotFoundErr struct {
	message string
}

func (e *EntryNotFoundErr) Error() string {
	return e.message
}

// NewEntryNotFoundErr builds EntryNotFoundErr naming lookup criteria in machine-readable form
func NewEntryNotFoundErr(where any) *EntryNotFoundErr {
	encoded, err := gojson.Marshal(where)
	if err != nil {
		encoded = []byte(fmt.Sprintf("%v", where))
	}
	return &EntryNotFoundErr{
		message: fmt.Sprintf("No resource was found for %s", encoded),
	}
}
