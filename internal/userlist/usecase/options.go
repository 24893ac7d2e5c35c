package usecase

import (
	"strconv"
	"strings"

	"github.com/SlavaShagalov/user-list/internal/models"
	"github.com/SlavaShagalov/user-list/internal/userlist/fields"
)

func DefaultOptions() Options {
	return Options{
		Role:    "",
		OrderBy: "",
		Order:   models.OrderAsc,
		Page:    1,
	}
}

// Normalize validates raw against the role set and the registry. Invalid
// values fall back to their defaults; it never fails.
func Normalize(raw RawOptions, roles models.RoleSet, registry *fields.Registry) Options {
	opts := DefaultOptions()

	if raw.Role != "" && roles.Has(raw.Role) {
		opts.Role = raw.Role
	}

	if _, ok := registry.Sortable(raw.OrderBy); ok {
		opts.OrderBy = raw.OrderBy
	}

	if order, ok := models.ParseOrder(raw.Order); ok {
		opts.Order = order
	}

	opts.Page = ParsePage(raw.Page)

	return opts
}

// ParsePage returns the page number in s, or 1 when s is not a positive integer.
func ParsePage(s string) int {
	page, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func degraded(raw RawOptions, opts Options) bool {
	if raw.Role != opts.Role || raw.OrderBy != opts.OrderBy {
		return true
	}
	if raw.Order != "" && !strings.EqualFold(raw.Order, string(opts.Order)) {
		return true
	}
	return raw.Page != "" && strings.TrimSpace(raw.Page) != strconv.Itoa(opts.Page)
}
