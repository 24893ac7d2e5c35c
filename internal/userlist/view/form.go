package view

import (
	"net/url"
	"strconv"

	"github.com/SlavaShagalov/user-list/internal/models"
)

const (
	InputRole    = "role"
	InputOrderBy = "order_by"
	InputOrder   = "order"
	InputPage    = "page"
	InputAction  = "action"
	InputNonce   = "nonce"
)

// Inputs lists every input of the search form in submission order.
var Inputs = []string{InputRole, InputOrderBy, InputOrder, InputPage, InputAction, InputNonce}

// Form is the state of the search form. Handlers change it only through Set,
// SetOrderBy and ResetPage, and read it only through Get and Values.
type Form struct {
	values map[string]string
}

func NewForm(action, nonce string) *Form {
	return &Form{values: map[string]string{
		InputRole:    "",
		InputOrderBy: "",
		InputOrder:   string(models.OrderAsc),
		InputPage:    "1",
		InputAction:  action,
		InputNonce:   nonce,
	}}
}

func (f *Form) Get(name string) string {
	return f.values[name]
}

// Set stores value under name. The order input keeps only ASC or DESC and the
// page input only a positive integer, so the rendered markers and the toggle
// always agree with what the list was fetched with.
func (f *Form) Set(name, value string) {
	switch name {
	case InputOrder:
		order, ok := models.ParseOrder(value)
		if !ok {
			order = models.OrderAsc
		}
		value = string(order)
	case InputPage:
		page, err := strconv.Atoi(value)
		if err != nil || page < 1 {
			page = 1
		}
		value = strconv.Itoa(page)
	}
	f.values[name] = value
}

// SetOrderBy flips the direction when field is already the sort field and
// sorts ascending by field otherwise.
func (f *Form) SetOrderBy(field string) {
	order := models.OrderAsc
	if f.Get(InputOrderBy) == field && f.Get(InputOrder) == string(models.OrderAsc) {
		order = models.OrderDesc
	}

	f.Set(InputOrderBy, field)
	f.Set(InputOrder, string(order))
}

func (f *Form) ResetPage() {
	f.Set(InputPage, "1")
}

// Page is the current page input as a number, 1 when it is not a positive integer.
func (f *Form) Page() int {
	page, err := strconv.Atoi(f.Get(InputPage))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (f *Form) Values() url.Values {
	values := make(url.Values, len(Inputs))
	for _, name := range Inputs {
		values.Set(name, f.values[name])
	}
	return values
}

func (f *Form) Clone() *Form {
	values := make(map[string]string, len(f.values))
	for k, v := range f.values {
		values[k] = v
	}
	return &Form{values: values}
}
