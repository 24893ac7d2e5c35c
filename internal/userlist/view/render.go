package view

import (
	"encoding/json"
	"strconv"

	"github.com/SlavaShagalov/user-list/internal/models"
)

const (
	ContainerID = "ct-user-list-container"
	SearchID    = "ct-user-list-search"
	RegionID    = "ct-user-list-region"
	OptionsID   = "ct-user-list-options"

	DefaultEndpoint = "/users/table"
)

// stateInputs are rendered inside the list region, so every swap refreshes them.
var stateInputs = []string{InputOrderBy, InputOrder, InputPage}

var formInputs = []string{InputAction, InputNonce}

type PageParams struct {
	Title    string
	Lang     string
	HtmxURL  string
	Action   string // form action, the JSON endpoint
	Roles    models.RoleSet
	RoleHint string
	Options  Options
	Form     *Form
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func hxVals(values map[string]string) string {
	b, err := json.Marshal(values)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func endpoint(meta Meta) string {
	if meta.Endpoint == "" {
		return DefaultEndpoint
	}
	return meta.Endpoint
}

func showPagination(data models.ResultPage) bool {
	return data.Total > 0 && data.Total > len(data.Users)
}

// sortState is the direction the list is sorted by field, "" when it is not.
func sortState(form *Form, field string) models.Order {
	if form.Get(InputOrderBy) != field {
		return ""
	}
	if form.Get(InputOrder) == string(models.OrderDesc) {
		return models.OrderDesc
	}
	return models.OrderAsc
}

// sortVals are the values a click on field submits.
func sortVals(form *Form, field string) string {
	next := form.Clone()
	next.SetOrderBy(field)
	return hxVals(map[string]string{
		InputOrderBy: next.Get(InputOrderBy),
		InputOrder:   next.Get(InputOrder),
	})
}

func pageVals(page int) string {
	return hxVals(map[string]string{InputPage: itoa(page)})
}
