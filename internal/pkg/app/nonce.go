package app

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	pkgErrors "github.com/SlavaShagalov/user-list/internal/pkg/errors"
	"github.com/SlavaShagalov/user-list/internal/service"
)

const (
	NonceField  = "nonce"
	NonceHeader = "X-WP-Nonce"
	ActionField = "action"
)

// NonceMiddleware rejects requests whose action field names another action or
// whose nonce does not verify for action. Both fields are read from the body;
// the nonce may also come in the X-WP-Nonce header. Nothing after it runs on
// failure.
func NonceMiddleware(nonces service.NonceService, action string, logger *slog.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if got := PostFormValue(ctx, ActionField); got != "" && got != action {
			logger.Debug("unknown action", slog.String("action", got))
			return pkgErrors.ErrUnknownAction
		}

		token := PostFormValue(ctx, NonceField)
		if token == "" {
			token = ctx.Get(NonceHeader)
		}

		if err := nonces.Verify(token, action); err != nil {
			logger.Debug("nonce rejected", slog.String("error", err.Error()))
			return err
		}

		return ctx.Next()
	}
}
