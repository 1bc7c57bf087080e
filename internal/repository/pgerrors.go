package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	appErrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/model"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// customerWriteErr reports address removed concurrently with customer write as missing entry
func customerWriteErr(err error, c *model.Customer) error {
	if pgErrCode(err) == pgForeignKeyViolation && c.Address != nil {
		return appErrors.NewEntryNotFoundErr(c.Address)
	}
	return err
}

func userWriteErr(err error, u *model.User) error {
	if pgErrCode(err) == pgUniqueViolation {
		return appErrors.NewBusinessErr("email", fmt.Sprintf("user with email %s already exists", u.Email))
	}
	return err
}
