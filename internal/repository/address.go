package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/pkg/db/transactor"
)

const addressColumns = "id, address_1, address_2, city, state, zip, created_at, updated_at"

var addressSortColumns = map[string]string{
	"address_1": "address_1",
	"address_2": "address_2",
	"city":      "city",
	"createdAt": "created_at",
	"id":        "id",
	"state":     "state",
	"updatedAt": "updated_at",
	"zip":       "zip",
}

type AddressRepository interface {
	FindMany(context.Context, model.AddressFindManyArgs) ([]*model.Address, error)
	FindByID(context.Context, string) (*model.Address, error)
	Create(context.Context, *model.Address) error
	Update(context.Context, *model.Address) error
	DeleteByID(context.Context, string) error
}

type postgresAddressRepository struct {
	trx transactor.PgxWithinTransactionExecutor
}

func NewPostgresAddressRepository(trx transactor.PgxWithinTransactionExecutor) AddressRepository {
	return &postgresAddressRepository{trx: trx}
}

func (r *postgresAddressRepository) FindMany(ctx context.Context, args model.AddressFindManyArgs) ([]*model.Address, error) {
	q := newSelectQuery("addresses", addressColumns)

	w := args.Where
	if w.ID != nil {
		q.where("id", *w.ID)
	}
	if w.Address1 != nil {
		q.where("address_1", *w.Address1)
	}
	if w.Address2 != nil {
		q.where("address_2", *w.Address2)
	}
	if w.City != nil {
		q.where("city", *w.City)
	}
	if w.State != nil {
		q.where("state", *w.State)
	}
	if w.Zip != nil {
		q.where("zip", *w.Zip)
	}

	if err := q.order(args.OrderFields(), addressSortColumns); err != nil {
		return nil, err
	}
	q.paginate(args.Skip, args.Take)

	sql, sqlArgs := q.build()
	rows, err := r.trx.Executor(ctx).Query(ctx, sql, sqlArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	addresses := make([]*model.Address, 0)
	for rows.Next() {
		a, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *postgresAddressRepository) FindByID(ctx context.Context, id string) (*model.Address, error) {
	q := "SELECT " + addressColumns + " FROM addresses WHERE id = $1"

	a, err := r.scanRow(r.trx.Executor(ctx).QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

func (r *postgresAddressRepository) Create(ctx context.Context, a *model.Address) error {
	q := `INSERT INTO addresses(id, address_1, address_2, city, state, zip, created_at, updated_at)
		  VALUES($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.trx.Executor(ctx).Exec(ctx, q, a.ID, a.Address1, a.Address2, a.City, a.State, a.Zip, a.CreatedAt, a.UpdatedAt)
	return err
}

func (r *postgresAddressRepository) Update(ctx context.Context, a *model.Address) error {
	q := `UPDATE addresses SET address_1 = $1, address_2 = $2, city = $3, state = $4, zip = $5, updated_at = $6
		  WHERE id = $7`
	_, err := r.trx.Executor(ctx).Exec(ctx, q, a.Address1, a.Address2, a.City, a.State, a.Zip, a.UpdatedAt, a.ID)
	return err
}

// DeleteByID removes address, customers referencing it are detached by foreign key rule
func (r *postgresAddressRepository) DeleteByID(ctx context.Context, id string) error {
	q := "DELETE FROM addresses WHERE id = $1"
	_, err := r.trx.Executor(ctx).Exec(ctx, q, id)
	return err
}

func (r *postgresAddressRepository) scanRow(row pgx.Row) (*model.Address, error) {
	var a model.Address
	if err := row.Scan(&a.ID, &a.Address1, &a.Address2, &a.City, &a.State, &a.Zip, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}

	a.InUTC()
	return &a, nil
}
