package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	pkgErrors "github.com/SlavaShagalov/user-list/internal/pkg/errors"
	"github.com/SlavaShagalov/user-list/pkg/sqlxutils"
)

// Request is one stored list request.
type Request struct {
	RequestID   string    `db:"request_id"`
	Method      string    `db:"method"`
	URL         string    `db:"url"`
	Role        string    `db:"role"`
	OrderBy     string    `db:"order_by"`
	Direction   string    `db:"direction"`
	Page        string    `db:"page"`
	RequestedAt time.Time `db:"requested_at"`
}

type SqlxRepository struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewSqlxRepository(db *sqlx.DB, logger *slog.Logger) *SqlxRepository {
	return &SqlxRepository{
		db:     db,
		logger: logger,
	}
}

func (r *SqlxRepository) HealthCheck(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SqlxRepository) GetRequests(ctx context.Context) ([]Request, error) {
	const listCmd = `
	SELECT request_id, method, url, role, order_by, direction, page, requested_at
	FROM list_requests
	ORDER BY requested_at, id;`

	reqs := make([]Request, 0)
	err := sqlxutils.Select(ctx, r.db, &reqs, listCmd)
	if err != nil {
		r.logger.Error(err.Error())
		return nil, errors.Wrap(pkgErrors.ErrDb, err.Error())
	}

	return reqs, nil
}

// SaveRequest stores req once; a redelivered request id is ignored.
func (r *SqlxRepository) SaveRequest(ctx context.Context, req Request) error {
	const createCmd = `
	INSERT INTO list_requests (request_id, method, url, role, order_by, direction, page, requested_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (request_id) DO NOTHING;`

	err := sqlxutils.Exec(ctx, r.db, createCmd,
		req.RequestID, req.Method, req.URL, req.Role, req.OrderBy, req.Direction, req.Page, req.RequestedAt.UTC())
	if err != nil {
		r.logger.Error(err.Error())
		return errors.Wrap(pkgErrors.ErrDb, err.Error())
	}

	return nil
}
