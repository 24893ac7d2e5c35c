package delivery

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"

	"github.com/SlavaShagalov/user-list/internal/models"
	"github.com/SlavaShagalov/user-list/internal/pkg/app"
	"github.com/SlavaShagalov/user-list/internal/service"
	"github.com/SlavaShagalov/user-list/internal/userlist/view"
)

const (
	PagePath     = "/users"
	FragmentPath = "/users/table"
	ListPath     = "/api/v1/users/list"
)

// PageConfig holds the static parts of the rendered page.
type PageConfig struct {
	Title    string
	Lang     string
	HtmxURL  string
	RoleHint string
	Labels   view.Labels
}

type Delivery struct {
	useCase UseCase
	nonces  service.NonceService
	nonceMW fiber.Handler
	page    PageConfig
	logger  *slog.Logger
}

func New(useCase UseCase, nonces service.NonceService, nonceMW fiber.Handler, page PageConfig, logger *slog.Logger) *Delivery {
	return &Delivery{
		useCase: useCase,
		nonces:  nonces,
		nonceMW: nonceMW,
		page:    page,
		logger:  logger,
	}
}

func (d *Delivery) HealthCheck(ctx context.Context) error {
	return d.useCase.HealthCheck(ctx)
}

func (d *Delivery) AddHandlers(router fiber.Router) {
	router.Get(PagePath, d.usersPage)
	router.Post(FragmentPath, d.nonceMW, d.usersTable)
	router.Post(ListPath, d.nonceMW, d.listUsers)
}

func (d *Delivery) meta() view.Meta {
	return view.Meta{
		Headers:    d.useCase.Headers(),
		PageLength: d.useCase.PageLength(),
		Labels:     d.page.Labels,
		Endpoint:   FragmentPath,
	}
}

func (d *Delivery) usersPage(ctx *fiber.Ctx) error {
	dto := parseList(func(key string) string { return ctx.Query(key) })

	roles, err := d.useCase.Roles(ctx.UserContext())
	if err != nil {
		return err
	}

	data, err := d.useCase.GetPage(ctx.UserContext(), dto.RawOptions())
	if err != nil {
		return err
	}

	nonce, err := d.nonces.Issue(service.ListUsersAction)
	if err != nil {
		return err
	}

	form := view.NewForm(service.ListUsersAction, nonce)
	dto.Apply(form)

	return render(ctx, view.Page(view.PageParams{
		Title:    d.page.Title,
		Lang:     d.page.Lang,
		HtmxURL:  d.page.HtmxURL,
		Action:   ListPath,
		Roles:    roles,
		RoleHint: d.page.RoleHint,
		Options:  view.Options{Data: data, Meta: d.meta()},
		Form:     form,
	}))
}

func (d *Delivery) usersTable(ctx *fiber.Ctx) error {
	dto := parseList(bodyValue(ctx))

	data, err := d.useCase.GetPage(ctx.UserContext(), dto.RawOptions())
	if err != nil {
		return err
	}

	form := view.NewForm(service.ListUsersAction, app.PostFormValue(ctx, view.InputNonce))
	dto.Apply(form)

	return render(ctx, view.List(data, d.meta(), form))
}

func (d *Delivery) listUsers(ctx *fiber.Ctx) error {
	dto := parseList(bodyValue(ctx))

	data, err := d.useCase.GetPage(ctx.UserContext(), dto.RawOptions())
	if err != nil {
		return err
	}

	if data.Users == nil {
		data.Users = []models.Record{}
	}

	return ctx.Status(fiber.StatusOK).JSON(data)
}

// bodyValue reads POST fields from the body only, the same source the nonce
// middleware verified.
func bodyValue(ctx *fiber.Ctx) func(key string) string {
	return func(key string) string {
		return app.PostFormValue(ctx, key)
	}
}

func parseList(value func(key string) string) ListRequestDTO {
	return ListRequestDTO{
		Role:    Sanitize(value(view.InputRole)),
		OrderBy: Sanitize(value(view.InputOrderBy)),
		Order:   Sanitize(value(view.InputOrder)),
		Page:    Sanitize(value(view.InputPage)),
	}
}

func render(ctx *fiber.Ctx, component templ.Component) error {
	var buf bytes.Buffer
	err := component.Render(ctx.UserContext(), &buf)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}
