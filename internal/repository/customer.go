package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/pkg/db/transactor"
)

const customerColumns = "id, first_name, last_name, email, phone, birthday, address_id, created_at, updated_at"

var customerSortColumns = map[string]string{
	"addressId": "address_id",
	"birthday":  "birthday",
	"createdAt": "created_at",
	"email":     "email",
	"firstName": "first_name",
	"id":        "id",
	"lastName":  "last_name",
	"phone":     "phone",
	"updatedAt": "updated_at",
}

type CustomerRepository interface {
	FindMany(context.Context, model.CustomerFindManyArgs) ([]*model.Customer, error)
	FindByID(context.Context, string) (*model.Customer, error)
	Create(context.Context, *model.Customer) error
	Update(context.Context, *model.Customer) error
	DeleteByID(context.Context, string) error
}

type postgresCustomerRepository struct {
	trx transactor.PgxWithinTransactionExecutor
}

func NewPostgresCustomerRepository(trx transactor.PgxWithinTransactionExecutor) CustomerRepository {
	return &postgresCustomerRepository{trx: trx}
}

func (r *postgresCustomerRepository) FindMany(ctx context.Context, args model.CustomerFindManyArgs) ([]*model.Customer, error) {
	q := newSelectQuery("customers", customerColumns)

	w := args.Where
	if w.ID != nil {
		q.where("id", *w.ID)
	}
	if w.FirstName != nil {
		q.where("first_name", *w.FirstName)
	}
	if w.LastName != nil {
		q.where("last_name", *w.LastName)
	}
	if w.Email != nil {
		q.where("email", *w.Email)
	}
	if w.Phone != nil {
		q.where("phone", *w.Phone)
	}
	if w.Birthday != nil {
		q.where("birthday", *w.Birthday)
	}
	if w.Address != nil {
		q.where("address_id", w.Address.ID)
	}

	if err := q.order(args.OrderFields(), customerSortColumns); err != nil {
		return nil, err
	}
	q.paginate(args.Skip, args.Take)

	sql, sqlArgs := q.build()
	rows, err := r.trx.Executor(ctx).Query(ctx, sql, sqlArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]*model.Customer, 0)
	for rows.Next() {
		c, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *postgresCustomerRepository) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	q := "SELECT " + customerColumns + " FROM customers WHERE id = $1"

	c, err := r.scanRow(r.trx.Executor(ctx).QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	q := `INSERT INTO customers(id, first_name, last_name, email, phone, birthday, address_id, created_at, updated_at)
		  VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.trx.Executor(ctx).Exec(ctx, q, c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Birthday, c.AddressID(), c.CreatedAt, c.UpdatedAt)
	return customerWriteErr(err, c)
}

func (r *postgresCustomerRepository) Update(ctx context.Context, c *model.Customer) error {
	q := `UPDATE customers SET first_name = $1, last_name = $2, email = $3, phone = $4, birthday = $5, address_id = $6, updated_at = $7
		  WHERE id = $8`
	_, err := r.trx.Executor(ctx).Exec(ctx, q, c.FirstName, c.LastName, c.Email, c.Phone, c.Birthday, c.AddressID(), c.UpdatedAt, c.ID)
	return customerWriteErr(err, c)
}

func (r *postgresCustomerRepository) DeleteByID(ctx context.Context, id string) error {
	q := "DELETE FROM customers WHERE id = $1"
	_, err := r.trx.Executor(ctx).Exec(ctx, q, id)
	return err
}

func (r *postgresCustomerRepository) scanRow(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	var addressID *string
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Birthday, &addressID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	if addressID != nil {
		c.Address = &model.WhereUniqueInput{ID: *addressID}
	}
	c.InUTC()
	return &c, nil
}
