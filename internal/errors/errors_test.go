package errors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntryNotFoundErr(t *testing.T) {
	where := struct {
		ID string `json:"id"`
	}{ID: "nonExistingId"}

	err := NewEntryNotFoundErr(where)
	require.Equal(t, `No resource was found for {"id":"nonExistingId"}`, err.Error())
}

func TestEntryNotFoundErrUnencodable(t *testing.T) {
	err := NewEntryNotFoundErr(make(chan int))
	require.Contains(t, err.Error(), "No resource was found for 0x", "criteria must fall back to its printed form")
}

func TestBusinessErr(t *testing.T) {
	err := NewBusinessErr("email", "user with email john@somemail.com already exists")

	var businessErr *BusinessErr
	require.ErrorAs(t, err, &businessErr)
	require.Equal(t, "email", businessErr.Target())
	require.Equal(t, "user with email john@somemail.com already exists", err.Error())
}
