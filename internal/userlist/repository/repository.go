package repository

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/SlavaShagalov/user-list/internal/models"
	pkgErrors "github.com/SlavaShagalov/user-list/internal/pkg/errors"
	"github.com/SlavaShagalov/user-list/internal/userlist/fields"
	"github.com/SlavaShagalov/user-list/internal/userlist/usecase"
	"github.com/SlavaShagalov/user-list/pkg/sqlxutils"
)

// Columns of the users table a field may order by.
var orderColumns = map[string]string{
	"id":         "u.id",
	"username":   "u.username",
	"email":      "u.email",
	"created_at": "u.created_at",
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

func (r *SqlxRepository) ListRoles(ctx context.Context) ([]models.Role, error) {
	const listRolesCmd = `
	SELECT id, name
	FROM roles
	ORDER BY position, id;`

	roles := make([]models.Role, 0)
	err := sqlxutils.Select(ctx, r.db, &roles, listRolesCmd)
	if err != nil {
		r.logger.Error(err.Error())
		return nil, errors.Wrap(pkgErrors.ErrDb, err.Error())
	}

	return roles, nil
}

type userRow struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}

// ListUsers runs one count query and one page query. A page past the last one
// yields no users but still reports the total.
func (r *SqlxRepository) ListUsers(ctx context.Context, params usecase.ListParams) ([]models.User, int, error) {
	var (
		where     []string
		whereArgs []any
	)
	if params.Role != "" {
		where = append(where, "EXISTS (SELECT 1 FROM user_roles ur WHERE ur.user_id = u.id AND ur.role_id = ?)")
		whereArgs = append(whereArgs, params.Role)
	}
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	total := 0
	if params.CountTotal {
		countCmd := "SELECT COUNT(*) FROM users u" + whereSQL
		err := sqlxutils.Get(ctx, r.db, &total, countCmd, whereArgs...)
		if err != nil {
			r.logger.Error(err.Error())
			return nil, 0, errors.Wrap(pkgErrors.ErrDb, err.Error())
		}
	}

	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = models.PageLength
	}
	page := params.Page
	if page < 1 {
		page = 1
	}
	if int64(page-1) > math.MaxInt64/int64(pageSize) {
		return []models.User{}, total, nil
	}
	offset := int64(page-1) * int64(pageSize)

	joinSQL, joinArgs, orderSQL, err := orderBy(params.Order, params.Direction)
	if err != nil {
		return nil, 0, err
	}

	listCmd := "SELECT u.id, u.username, u.email, u.created_at FROM users u" +
		joinSQL + whereSQL + orderSQL + " LIMIT ? OFFSET ?"

	args := make([]any, 0, len(joinArgs)+len(whereArgs)+2)
	args = append(args, joinArgs...)
	args = append(args, whereArgs...)
	args = append(args, pageSize, offset)

	rows := make([]userRow, 0, pageSize)
	err = sqlxutils.Select(ctx, r.db, &rows, listCmd, args...)
	if err != nil {
		r.logger.Error(err.Error())
		return nil, 0, errors.Wrap(pkgErrors.ErrDb, err.Error())
	}

	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, models.User{
			ID:         row.ID,
			Username:   row.Username,
			Email:      row.Email,
			CreatedAt:  row.CreatedAt,
			Attributes: map[string]string{},
		})
	}

	if err = r.loadRoles(ctx, users); err != nil {
		return nil, 0, err
	}
	if err = r.loadAttributes(ctx, users); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func orderBy(clause fields.OrderClause, direction models.Order) (joinSQL string, joinArgs []any, orderSQL string, err error) {
	dir := "ASC"
	if direction == models.OrderDesc {
		dir = "DESC"
	}

	switch clause.Kind {
	case fields.OrderColumn:
		column, ok := orderColumns[clause.Name]
		if !ok {
			return "", nil, "", errors.Errorf("unknown order column %q", clause.Name)
		}
		return "", nil, " ORDER BY " + column + " " + dir + ", u.id ASC", nil
	case fields.OrderAttribute:
		joinSQL = " LEFT JOIN user_meta om ON om.user_id = u.id AND om.meta_key = ?"
		return joinSQL, []any{clause.Name}, " ORDER BY COALESCE(om.meta_value, '') " + dir + ", u.id ASC", nil
	default:
		return "", nil, " ORDER BY u.id ASC", nil
	}
}

func userIDs(users []models.User) ([]int64, map[int64]int) {
	ids := make([]int64, 0, len(users))
	index := make(map[int64]int, len(users))
	for i, u := range users {
		ids = append(ids, u.ID)
		index[u.ID] = i
	}
	return ids, index
}

func (r *SqlxRepository) loadRoles(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}
	ids, index := userIDs(users)

	query, args, err := sqlxutils.In(r.db, `
	SELECT ur.user_id, ur.role_id
	FROM user_roles ur
	         JOIN roles ro ON ro.id = ur.role_id
	WHERE ur.user_id IN (?)
	ORDER BY ur.user_id, ro.position, ro.id;`, ids)
	if err != nil {
		return errors.Wrap(err, "build roles query")
	}

	var links []struct {
		UserID int64  `db:"user_id"`
		RoleID string `db:"role_id"`
	}
	if err = r.db.SelectContext(ctx, &links, query, args...); err != nil {
		r.logger.Error(err.Error())
		return errors.Wrap(pkgErrors.ErrDb, err.Error())
	}

	for _, link := range links {
		i := index[link.UserID]
		users[i].Roles = append(users[i].Roles, link.RoleID)
	}

	return nil
}

func (r *SqlxRepository) loadAttributes(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}
	ids, index := userIDs(users)

	query, args, err := sqlxutils.In(r.db, `
	SELECT user_id, meta_key, meta_value
	FROM user_meta
	WHERE user_id IN (?);`, ids)
	if err != nil {
		return errors.Wrap(err, "build attributes query")
	}

	var metas []struct {
		UserID int64  `db:"user_id"`
		Key    string `db:"meta_key"`
		Value  string `db:"meta_value"`
	}
	if err = r.db.SelectContext(ctx, &metas, query, args...); err != nil {
		r.logger.Error(err.Error())
		return errors.Wrap(pkgErrors.ErrDb, err.Error())
	}

	for _, meta := range metas {
		i := index[meta.UserID]
		users[i].Attributes[meta.Key] = meta.Value
	}

	return nil
}
