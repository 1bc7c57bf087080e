package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/pkg/db/transactor"
)

type RefreshTokenRepository interface {
	Create(context.Context, *model.RefreshToken) error
	FindTokensByUserID(context.Context, string) ([]*model.RefreshToken, error)
	DeleteByUserID(context.Context, string) error
	DeleteByID(context.Context, string) error
	FindByID(context.Context, string) (*model.RefreshToken, error)
}

type postgresRefreshTokenRepository struct {
	trx transactor.PgxWithinTransactionExecutor
}

func NewPostgresRefreshTokenRepository(trx transactor.PgxWithinTransactionExecutor) RefreshTokenRepository {
	return &postgresRefreshTokenRepository{trx: trx}
}

func (r *postgresRefreshTokenRepository) Create(ctx context.Context, tkn *model.RefreshToken) error {
	q := "INSERT INTO refresh_tokens(id, user_id, fingerprint, expires_in, created_at) VALUES($1, $2, $3, $4, $5)"
	_, err := r.trx.Executor(ctx).Exec(ctx, q, tkn.ID, tkn.UserID, tkn.Fingerprint, tkn.ExpiresIn, tkn.CreatedAt)
	return err
}

func (r *postgresRefreshTokenRepository) FindTokensByUserID(ctx context.Context, userID string) ([]*model.RefreshToken, error) {
	q := "SELECT id, user_id, fingerprint, expires_in, created_at FROM refresh_tokens WHERE user_id = $1 ORDER BY created_at"

	rows, err := r.trx.Executor(ctx).Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tokens := make([]*model.RefreshToken, 0)
	for rows.Next() {
		var tkn model.RefreshToken
		if err := rows.Scan(&tkn.ID, &tkn.UserID, &tkn.Fingerprint, &tkn.ExpiresIn, &tkn.CreatedAt); err != nil {
			return nil, err
		}
		tokens = append(tokens, &tkn)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *postgresRefreshTokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	q := "DELETE FROM refresh_tokens WHERE user_id = $1"
	_, err := r.trx.Executor(ctx).Exec(ctx, q, userID)
	return err
}

func (r *postgresRefreshTokenRepository) DeleteByID(ctx context.Context, id string) error {
	q := "DELETE FROM refresh_tokens WHERE id = $1"
	_, err := r.trx.Executor(ctx).Exec(ctx, q, id)
	return err
}

func (r *postgresRefreshTokenRepository) FindByID(ctx context.Context, id string) (*model.RefreshToken, error) {
	q := "SELECT id, user_id, fingerprint, expires_in, created_at FROM refresh_tokens WHERE id = $1"

	var tkn model.RefreshToken
	err := r.trx.Executor(ctx).QueryRow(ctx, q, id).Scan(&tkn.ID, &tkn.UserID, &tkn.Fingerprint, &tkn.ExpiresIn, &tkn.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &tkn, nil
}
