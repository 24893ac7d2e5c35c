package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/SlavaShagalov/user-list/internal/models"
	"github.com/SlavaShagalov/user-list/internal/pkg/i18n"
)

func testRoles() models.RoleSet {
	return models.NewRoleSet(
		models.Role{ID: "administrator", Name: "Administrator"},
		models.Role{ID: "editor", Name: "Editor"},
	)
}

func TestDefaultRegistryOrder(t *testing.T) {
	r := Default(i18n.Printer(language.English))

	headers := r.Headers()
	require.Len(t, headers, 3)
	assert.Equal(t, []Header{
		{ID: Username, Label: "Username", Sortable: true},
		{ID: FirstName, Label: "First Name", Sortable: true},
		{ID: Role, Label: "Role", Sortable: false},
	}, headers)

	again := r.Headers()
	assert.Equal(t, headers, again)
}

func TestDefaultRegistryTranslatesLabels(t *testing.T) {
	r := Default(i18n.Printer(language.MustParse("pt-BR")))

	f, ok := r.Lookup(FirstName)
	require.True(t, ok)
	assert.Equal(t, "Nome", f.Label)
}

func TestSortable(t *testing.T) {
	r := Default(i18n.Printer(language.English))

	clause, ok := r.Sortable(Username)
	require.True(t, ok)
	assert.Equal(t, Column("username"), clause)

	clause, ok = r.Sortable(FirstName)
	require.True(t, ok)
	assert.Equal(t, OrderAttribute, clause.Kind)
	assert.Equal(t, "first_name", clause.Name)

	_, ok = r.Sortable(Role)
	assert.False(t, ok)

	_, ok = r.Sortable("user_pass")
	assert.False(t, ok)
}

func TestProject(t *testing.T) {
	r := Default(i18n.Printer(language.English))

	record := r.Project(models.User{
		Username:   "alice",
		Roles:      []string{"editor", "ghost", "administrator"},
		Attributes: map[string]string{"first_name": "Alice"},
	}, testRoles())

	assert.Equal(t, []string{Username, FirstName, Role}, record.Keys())
	assert.Equal(t, "alice", record.Get(Username))
	assert.Equal(t, "Alice", record.Get(FirstName))
	assert.Equal(t, "Editor Administrator", record.Get(Role))
}

func TestProjectMissingData(t *testing.T) {
	r := Default(i18n.Printer(language.English))

	record := r.Project(models.User{Username: "bob"}, models.RoleSet{})

	assert.Equal(t, 3, record.Len())
	assert.Equal(t, "", record.Get(FirstName))
	assert.Equal(t, "", record.Get(Role))
}

func TestNewRejectsDuplicates(t *testing.T) {
	extract := func(models.User, models.RoleSet) string { return "" }

	assert.Panics(t, func() {
		New(Field{ID: "a", Extract: extract}, Field{ID: "a", Extract: extract})
	})
	assert.Panics(t, func() {
		New(Field{ID: "a"})
	})
}

func TestAttributeWithoutNameIsNotSortable(t *testing.T) {
	r := New(Field{
		ID:      "nickname",
		Order:   Attribute(""),
		Extract: func(models.User, models.RoleSet) string { return "" },
	})

	_, ok := r.Sortable("nickname")
	assert.False(t, ok)
	assert.False(t, r.Headers()[0].Sortable)
}
