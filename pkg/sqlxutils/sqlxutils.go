package sqlxutils

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Select runs a query written with '?' placeholders against any supported driver.
func Select(ctx context.Context, db *sqlx.DB, dest any, query string, args ...any) error {
	return db.SelectContext(ctx, dest, db.Rebind(query), args...)
}

func Get(ctx context.Context, db *sqlx.DB, dest any, query string, args ...any) error {
	return db.GetContext(ctx, dest, db.Rebind(query), args...)
}

func Exec(ctx context.Context, db *sqlx.DB, query string, args ...any) error {
	_, err := db.ExecContext(ctx, db.Rebind(query), args...)
	return err
}

// In expands slice arguments of an IN (?) query and rebinds it for the driver.
func In(db *sqlx.DB, query string, args ...any) (string, []any, error) {
	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return "", nil, err
	}
	return db.Rebind(query), args, nil
}
