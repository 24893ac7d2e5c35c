package app

import (
	"github.com/gofiber/fiber/v2"
)

// PostFormValue reads key from the request body only, urlencoded first and
// multipart second. Query parameters never shadow body fields. The result is
// a copy and stays valid after the handler returns.
func PostFormValue(ctx *fiber.Ctx, key string) string {
	args := ctx.Request().PostArgs()
	if args.Has(key) {
		return string(args.Peek(key))
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return ""
	}
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}
