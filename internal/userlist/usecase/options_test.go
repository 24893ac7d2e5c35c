package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/SlavaShagalov/user-list/internal/models"
	"github.com/SlavaShagalov/user-list/internal/pkg/i18n"
	"github.com/SlavaShagalov/user-list/internal/userlist/fields"
)

func TestParsePage(t *testing.T) {
	tests := map[string]int{
		"":      1,
		"1":     1,
		"3":     3,
		" 7 ":   7,
		"0":     1,
		"-4":    1,
		"abc":   1,
		"2.5":   1,
		"3abc":  1,
		"10000": 10000,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParsePage(in), "page %q", in)
	}
}

func TestNormalize(t *testing.T) {
	registry := fields.Default(i18n.Printer(language.English))
	roles := models.NewRoleSet(
		models.Role{ID: "editor", Name: "Editor"},
		models.Role{ID: "subscriber", Name: "Subscriber"},
	)

	tests := []struct {
		name string
		raw  RawOptions
		want Options
	}{
		{
			name: "defaults",
			raw:  RawOptions{},
			want: DefaultOptions(),
		},
		{
			name: "valid values are kept",
			raw:  RawOptions{Role: "editor", OrderBy: "first_name", Order: "desc", Page: "2"},
			want: Options{Role: "editor", OrderBy: "first_name", Order: models.OrderDesc, Page: 2},
		},
		{
			name: "unknown role is dropped",
			raw:  RawOptions{Role: "nonexistent-role"},
			want: DefaultOptions(),
		},
		{
			name: "unsortable field is dropped",
			raw:  RawOptions{OrderBy: "role"},
			want: DefaultOptions(),
		},
		{
			name: "unknown field is dropped",
			raw:  RawOptions{OrderBy: "user_pass; DROP TABLE users"},
			want: DefaultOptions(),
		},
		{
			name: "invalid order falls back to ascending",
			raw:  RawOptions{OrderBy: "username", Order: "sideways"},
			want: Options{OrderBy: "username", Order: models.OrderAsc, Page: 1},
		},
		{
			name: "mixed case order",
			raw:  RawOptions{Order: "DeSc"},
			want: Options{Order: models.OrderDesc, Page: 1},
		},
		{
			name: "non positive page",
			raw:  RawOptions{Page: "-1"},
			want: DefaultOptions(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw, roles, registry))
		})
	}
}

func TestDegraded(t *testing.T) {
	registry := fields.Default(i18n.Printer(language.English))
	roles := models.NewRoleSet(models.Role{ID: "editor", Name: "Editor"})

	for _, raw := range []RawOptions{
		{Role: "ghost"},
		{OrderBy: "role"},
		{Order: "up"},
		{Page: "zero"},
	} {
		assert.True(t, degraded(raw, Normalize(raw, roles, registry)), "%+v", raw)
	}

	for _, raw := range []RawOptions{
		{},
		{Role: "editor", OrderBy: "username", Order: "desc", Page: "4"},
	} {
		assert.False(t, degraded(raw, Normalize(raw, roles, registry)), "%+v", raw)
	}
}
