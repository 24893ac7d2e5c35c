package usecase

import (
	"context"

	"github.com/SlavaShagalov/user-list/internal/models"
	"github.com/SlavaShagalov/user-list/internal/userlist/fields"
)

// RawOptions holds the whitelisted request values as received. Empty means absent.
type RawOptions struct {
	Role    string
	OrderBy string
	Order   string
	Page    string
}

// Options are validated query options.
type Options struct {
	Role    string
	OrderBy string
	Order   models.Order
	Page    int
}

type ListParams struct {
	Role string
	// Order is the clause of the ordered field; OrderNone keeps the store default.
	Order      fields.OrderClause
	Direction  models.Order
	Page       int
	PageSize   int
	CountTotal bool
}

//go:generate mockgen -destination=mocks/repository.go -package=mocks . Repository

type Repository interface {
	HealthCheck(ctx context.Context) error

	ListRoles(ctx context.Context) ([]models.Role, error)
	// ListUsers returns one page of users with roles and attributes loaded, and
	// the number of users matching the filter when params.CountTotal is set.
	ListUsers(ctx context.Context, params ListParams) ([]models.User, int, error)
}
