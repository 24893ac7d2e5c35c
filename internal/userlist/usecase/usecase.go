package usecase

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"golang.org/x/text/message"

	"github.com/SlavaShagalov/user-list/internal/models"
	"github.com/SlavaShagalov/user-list/internal/pkg/i18n"
	"github.com/SlavaShagalov/user-list/internal/userlist/fields"
)

type UseCase struct {
	repo       Repository
	registry   *fields.Registry
	printer    *message.Printer
	pageLength int
	logger     *slog.Logger
}

func New(repo Repository, registry *fields.Registry, printer *message.Printer, logger *slog.Logger) *UseCase {
	return &UseCase{
		repo:       repo,
		registry:   registry,
		printer:    printer,
		pageLength: models.PageLength,
		logger:     logger,
	}
}

func (u *UseCase) HealthCheck(ctx context.Context) error {
	return u.repo.HealthCheck(ctx)
}

func (u *UseCase) PageLength() int {
	return u.pageLength
}

func (u *UseCase) Headers() []fields.Header {
	return u.registry.Headers()
}

// Roles returns every known role with its translated label.
func (u *UseCase) Roles(ctx context.Context) (models.RoleSet, error) {
	roles, err := u.repo.ListRoles(ctx)
	if err != nil {
		return models.RoleSet{}, errors.Wrap(err, "list roles")
	}

	for i := range roles {
		roles[i].Name = i18n.Translate(u.printer, roles[i].Name)
	}

	return models.NewRoleSet(roles...), nil
}

func (u *UseCase) GetPage(ctx context.Context, raw RawOptions) (models.ResultPage, error) {
	roles, err := u.Roles(ctx)
	if err != nil {
		u.logger.Error(err.Error())
		return models.ResultPage{}, err
	}

	opts := Normalize(raw, roles, u.registry)
	if degraded(raw, opts) {
		u.logger.Debug("list options degraded to defaults",
			slog.String("role", raw.Role),
			slog.String("order_by", raw.OrderBy),
			slog.String("order", raw.Order),
			slog.String("page", raw.Page),
		)
	}

	params := ListParams{
		Role:       opts.Role,
		Direction:  opts.Order,
		Page:       opts.Page,
		PageSize:   u.pageLength,
		CountTotal: true,
	}
	if clause, ok := u.registry.Sortable(opts.OrderBy); ok {
		params.Order = clause
	}

	users, total, err := u.repo.ListUsers(ctx, params)
	if err != nil {
		err = errors.Wrap(err, "list users")
		u.logger.Error(err.Error())
		return models.ResultPage{}, err
	}

	records := make([]models.Record, 0, len(users))
	for _, user := range users {
		records = append(records, u.registry.Project(user, roles))
	}

	return models.ResultPage{
		Users: records,
		Total: total,
	}, nil
}
