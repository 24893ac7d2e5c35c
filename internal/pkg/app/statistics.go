package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/SlavaShagalov/user-list/pkg/statistics"
)

type StatisticsPublisher interface {
	Push(ctx context.Context, req statistics.ListRequest) error
}

// NewStatisticsMW publishes a statistics event for each successful POST to one
// of paths. Fiber reuses request buffers, so every value is copied before it
// leaves the handler. Publishing failures are logged and never fail the request.
func NewStatisticsMW(stat StatisticsPublisher, logger *slog.Logger, paths ...string) fiber.Handler {
	watched := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		watched[path] = struct{}{}
	}

	return func(ctx *fiber.Ctx) error {
		if _, ok := watched[ctx.Path()]; !ok || ctx.Method() != fiber.MethodPost {
			return ctx.Next()
		}

		err := ctx.Next()
		if err != nil || ctx.Response().StatusCode() != fiber.StatusOK {
			return err
		}

		req := statistics.ListRequest{
			Method:      utils.CopyString(ctx.Method()),
			URL:         utils.CopyString(ctx.OriginalURL()),
			Role:        PostFormValue(ctx, "role"),
			OrderBy:     PostFormValue(ctx, "order_by"),
			Order:       PostFormValue(ctx, "order"),
			Page:        PostFormValue(ctx, "page"),
			RequestedAt: time.Now().UnixMilli(),
		}

		err = stat.Push(ctx.UserContext(), req)
		if err != nil {
			logger.Error("push statistics", slog.String("error", err.Error()))
		}

		return nil
	}
}
