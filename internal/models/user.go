package models

import "time"

type Role struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

// RoleSet maps role ids to their translated labels, keeping the store order.
type RoleSet struct {
	ids    []string
	labels map[string]string
}

func NewRoleSet(roles ...Role) RoleSet {
	set := RoleSet{
		ids:    make([]string, 0, len(roles)),
		labels: make(map[string]string, len(roles)),
	}
	for _, role := range roles {
		if _, ok := set.labels[role.ID]; ok {
			continue
		}
		set.ids = append(set.ids, role.ID)
		set.labels[role.ID] = role.Name
	}
	return set
}

func (s RoleSet) Has(id string) bool {
	_, ok := s.labels[id]
	return ok
}

func (s RoleSet) Label(id string) (string, bool) {
	label, ok := s.labels[id]
	return label, ok
}

func (s RoleSet) Roles() []Role {
	roles := make([]Role, 0, len(s.ids))
	for _, id := range s.ids {
		roles = append(roles, Role{ID: id, Name: s.labels[id]})
	}
	return roles
}

func (s RoleSet) Len() int {
	return len(s.ids)
}

type User struct {
	ID         int64
	Username   string
	Email      string
	Roles      []string
	Attributes map[string]string
	CreatedAt  time.Time
}

// Attribute returns the named attribute or "" when the user has none.
func (u User) Attribute(key string) string {
	if u.Attributes == nil {
		return ""
	}
	return u.Attributes[key]
}
