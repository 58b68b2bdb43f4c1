package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/gutbuster/internal/domain/user"
	qb "github.com/riskibarqy/gutbuster/internal/platform/querybuilder"
)

type UserRepository struct {
	db sqlx.ExtContext
}

func NewUserRepository(db sqlx.ExtContext) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (user.User, bool, error) {
	return r.getOne(ctx, "get user by id", qb.Eq("id", id))
}

func (r *UserRepository) GetByExternalID(ctx context.Context, externalID string) (user.User, bool, error) {
	return r.getOne(ctx, "get user by external id", qb.Eq("external_id", externalID))
}

func (r *UserRepository) getOne(ctx context.Context, op string, cond qb.Condition) (user.User, bool, error) {
	query, args, err := qb.Select("*").From("users").Where(cond).ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row userTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, translateError(err, op)
	}
	return userFromRow(row), true, nil
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	query, args, err := qb.InsertModel("users", userInsertModel{
		ExternalID: u.ExternalID,
		Name:       u.Name,
		InsertedAt: u.InsertedAt,
		UpdatedAt:  u.UpdatedAt,
	}, "RETURNING *")
	if err != nil {
		return user.User{}, fmt.Errorf("build insert user query: %w", err)
	}

	var row userTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		return user.User{}, translateError(err, "insert user")
	}
	return userFromRow(row), nil
}

func (r *UserRepository) UpdateName(ctx context.Context, u user.User) error {
	query, args, err := qb.Update("users").
		Set("name", u.Name).
		Set("updated_at", u.UpdatedAt).
		Where(qb.Eq("id", u.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update user name query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return translateError(err, "update user name")
	}
	return nil
}

func userFromRow(row userTableModel) user.User {
	return user.User{
		ID:         row.ID,
		ExternalID: row.ExternalID,
		Name:       row.Name,
		InsertedAt: row.InsertedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
