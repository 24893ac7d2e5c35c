package app

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	slogfiber "github.com/samber/slog-fiber"

	pkgErrors "github.com/SlavaShagalov/user-list/internal/pkg/errors"
)

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Delivery interface {
	HealthChecker

	AddHandlers(router fiber.Router)
}

type FiberApp struct {
	app    *fiber.App
	addr   string
	logger *slog.Logger
}

// NewFiberApp mounts delivery behind the access log and the given middlewares.
func NewFiberApp(config WebConfig, delivery Delivery, logger *slog.Logger, middlewares ...fiber.Handler) *FiberApp {
	app := fiber.New(fiber.Config{
		ReadTimeout:           config.ReadTimeout,
		WriteTimeout:          config.WriteTimeout,
		DisableStartupMessage: true,
		ErrorHandler:          NewErrorHandler(logger),
	})

	app.Use(slogfiber.New(logger))
	for _, mw := range middlewares {
		app.Use(mw)
	}

	app.Get("/health", func(ctx *fiber.Ctx) error {
		if err := delivery.HealthCheck(ctx.UserContext()); err != nil {
			logger.Error("health check failed", slog.String("error", err.Error()))
			return ctx.SendStatus(fiber.StatusServiceUnavailable)
		}
		return ctx.SendStatus(fiber.StatusOK)
	})

	delivery.AddHandlers(app)

	return &FiberApp{
		app:    app,
		addr:   config.Addr(),
		logger: logger,
	}
}

func (a *FiberApp) App() *fiber.App {
	return a.app
}

func (a *FiberApp) Start() error {
	return a.app.Listen(a.addr)
}

func (a *FiberApp) Shutdown(ctx context.Context) error {
	return a.app.ShutdownWithContext(ctx)
}

// StatusOf maps a handler error to the HTTP status and body sent to the client.
func StatusOf(err error) (int, map[string]any) {
	var fiberErr *fiber.Error
	switch {
	case errors.Is(err, pkgErrors.ErrMissingNonce), errors.Is(err, pkgErrors.ErrInvalidNonce):
		return fiber.StatusForbidden, pkgErrors.ErrInvalidNonce.Map()
	case errors.Is(err, pkgErrors.ErrUnknownAction):
		return fiber.StatusBadRequest, pkgErrors.ErrUnknownAction.Map()
	case errors.As(err, &fiberErr):
		return fiberErr.Code, map[string]any{"message": fiberErr.Message}
	default:
		return fiber.StatusInternalServerError, pkgErrors.ErrUsersUnavailable.Map()
	}
}

func NewErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		status, body := StatusOf(err)
		if status >= fiber.StatusInternalServerError {
			logger.Error(err.Error(), slog.String("path", ctx.Path()))
		} else {
			logger.Debug(err.Error(), slog.String("path", ctx.Path()))
		}
		return ctx.Status(status).JSON(body)
	}
}
