// Package fields declares the columns of the user list: their labels, how the
// store orders by them and how a user is rendered into them.
package fields

import (
	"fmt"
	"strings"

	"golang.org/x/text/message"

	"github.com/SlavaShagalov/user-list/internal/models"
	"github.com/SlavaShagalov/user-list/internal/pkg/i18n"
)

type OrderKind int

const (
	OrderNone OrderKind = iota
	// OrderColumn sorts by a column of the users table.
	OrderColumn
	// OrderAttribute sorts by the value of a keyed user attribute.
	OrderAttribute
)

type OrderClause struct {
	Kind OrderKind
	Name string
}

func Column(name string) OrderClause {
	return OrderClause{Kind: OrderColumn, Name: name}
}

func Attribute(key string) OrderClause {
	return OrderClause{Kind: OrderAttribute, Name: key}
}

func (c OrderClause) Sortable() bool {
	return c.Kind != OrderNone && c.Name != ""
}

// Extractor renders one value of a user. It must not fail: missing data renders as "".
type Extractor func(user models.User, roles models.RoleSet) string

type Field struct {
	ID      string
	Label   string
	Order   OrderClause
	Extract Extractor
}

func (f Field) Sortable() bool {
	return f.Order.Sortable()
}

type Header struct {
	ID       string
	Label    string
	Sortable bool
}

type Registry struct {
	fields []Field
	index  map[string]int
}

// New builds a registry; duplicate or empty ids and nil extractors are programming errors.
func New(fields ...Field) *Registry {
	r := &Registry{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if f.ID == "" {
			panic("fields: empty field id")
		}
		if _, ok := r.index[f.ID]; ok {
			panic(fmt.Sprintf("fields: duplicate field id %q", f.ID))
		}
		if f.Extract == nil {
			panic(fmt.Sprintf("fields: field %q has no extractor", f.ID))
		}
		r.index[f.ID] = len(r.fields)
		r.fields = append(r.fields, f)
	}
	return r
}

func (r *Registry) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

func (r *Registry) Lookup(id string) (Field, bool) {
	i, ok := r.index[id]
	if !ok {
		return Field{}, false
	}
	return r.fields[i], true
}

// Sortable returns the order clause of id when it names a sortable field.
func (r *Registry) Sortable(id string) (OrderClause, bool) {
	f, ok := r.Lookup(id)
	if !ok || !f.Sortable() {
		return OrderClause{}, false
	}
	return f.Order, true
}

func (r *Registry) Headers() []Header {
	headers := make([]Header, 0, len(r.fields))
	for _, f := range r.fields {
		headers = append(headers, Header{ID: f.ID, Label: f.Label, Sortable: f.Sortable()})
	}
	return headers
}

// Project renders user through every field, in declaration order.
func (r *Registry) Project(user models.User, roles models.RoleSet) models.Record {
	record := models.NewRecord(len(r.fields))
	for _, f := range r.fields {
		record.Set(f.ID, f.Extract(user, roles))
	}
	return record
}

const (
	Username  = "username"
	FirstName = "first_name"
	Role      = "role"
)

// Default is the user list of the site: login, first name and roles.
func Default(p *message.Printer) *Registry {
	return New(
		Field{
			ID:    Username,
			Label: i18n.Translate(p, "Username"),
			Order: Column("username"),
			Extract: func(user models.User, _ models.RoleSet) string {
				return user.Username
			},
		},
		Field{
			ID:    FirstName,
			Label: i18n.Translate(p, "First Name"),
			Order: Attribute("first_name"),
			Extract: func(user models.User, _ models.RoleSet) string {
				return user.Attribute("first_name")
			},
		},
		Field{
			ID:      Role,
			Label:   i18n.Translate(p, "Role"),
			Extract: roleLabels,
		},
	)
}

func roleLabels(user models.User, roles models.RoleSet) string {
	labels := make([]string, 0, len(user.Roles))
	for _, id := range user.Roles {
		if label, ok := roles.Label(id); ok {
			labels = append(labels, label)
		}
	}
	return strings.Join(labels, " ")
}
