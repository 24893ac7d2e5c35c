package delivery

import (
	"context"

	"github.com/SlavaShagalov/user-list/internal/models"
	"github.com/SlavaShagalov/user-list/internal/pkg/app"
	"github.com/SlavaShagalov/user-list/internal/userlist/fields"
	"github.com/SlavaShagalov/user-list/internal/userlist/usecase"
)

//go:generate mockgen -destination=mocks/usecase.go -package=mocks . UseCase

type UseCase interface {
	app.HealthChecker

	GetPage(ctx context.Context, raw usecase.RawOptions) (models.ResultPage, error)
	Roles(ctx context.Context) (models.RoleSet, error)
	Headers() []fields.Header
	PageLength() int
}
