package view

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/SlavaShagalov/user-list/internal/models"
	"github.com/SlavaShagalov/user-list/internal/pkg/i18n"
	"github.com/SlavaShagalov/user-list/internal/userlist/fields"
)

func testMeta() Meta {
	return Meta{
		Headers: Headers{
			{ID: "username", Label: "Username", Sortable: true},
			{ID: "first_name", Label: "First Name", Sortable: true},
			{ID: "role", Label: "Role"},
		},
		PageLength: models.PageLength,
		Labels:     DefaultLabels(i18n.Printer(language.English)),
	}
}

func users(n int) []models.Record {
	records := make([]models.Record, 0, n)
	for i := 1; i <= n; i++ {
		r := models.NewRecord(3)
		r.Set("username", fmt.Sprintf("user%d", i))
		r.Set("first_name", "")
		r.Set("role", "Editor")
		records = append(records, r)
	}
	return records
}

func render(t *testing.T, data models.ResultPage, meta Meta, form *Form) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, List(data, meta, form).Render(context.Background(), &buf))
	return buf.String()
}

func TestFormSetOrderBy(t *testing.T) {
	form := NewForm("ct_user_list_get_users", "token")
	assert.Equal(t, "ASC", form.Get(InputOrder))
	assert.Equal(t, "1", form.Get(InputPage))

	form.SetOrderBy("username")
	assert.Equal(t, "username", form.Get(InputOrderBy))
	assert.Equal(t, "ASC", form.Get(InputOrder))

	form.SetOrderBy("username")
	assert.Equal(t, "DESC", form.Get(InputOrder))

	form.SetOrderBy("username")
	assert.Equal(t, "ASC", form.Get(InputOrder))

	form.SetOrderBy("username")
	form.SetOrderBy("first_name")
	assert.Equal(t, "first_name", form.Get(InputOrderBy))
	assert.Equal(t, "ASC", form.Get(InputOrder))
}

func TestFormValues(t *testing.T) {
	form := NewForm("ct_user_list_get_users", "token")
	form.Set(InputRole, "editor")
	form.Set(InputPage, "4")
	clone := form.Clone()
	form.ResetPage()

	values := form.Values()
	assert.Equal(t, "editor", values.Get("role"))
	assert.Equal(t, "1", values.Get("page"))
	assert.Equal(t, "ct_user_list_get_users", values.Get("action"))
	assert.Equal(t, "token", values.Get("nonce"))
	assert.Equal(t, "4", clone.Get(InputPage))
	assert.Equal(t, 4, clone.Page())

	form.Set(InputPage, "abc")
	assert.Equal(t, 1, form.Page())
}

func TestFormNormalizesInputs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		value string
		want  string
	}{
		{name: "lowercase asc", input: InputOrder, value: "asc", want: "ASC"},
		{name: "mixed case desc", input: InputOrder, value: "dEsC", want: "DESC"},
		{name: "unknown order", input: InputOrder, value: "sideways", want: "ASC"},
		{name: "padded page", input: InputPage, value: "007", want: "7"},
		{name: "negative page", input: InputPage, value: "-2", want: "1"},
		{name: "role untouched", input: InputRole, value: "Editor", want: "Editor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := NewForm("a", "n")
			form.Set(tt.input, tt.value)
			assert.Equal(t, tt.want, form.Get(tt.input))
		})
	}
}

func TestFormLowercaseOrderToggles(t *testing.T) {
	form := NewForm("a", "n")
	form.Set(InputOrderBy, "username")
	form.Set(InputOrder, "asc")

	form.SetOrderBy("username")
	assert.Equal(t, "DESC", form.Get(InputOrder))
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		total int
		want  []PageLink
	}{
		{
			name:  "last of three",
			page:  3,
			total: 25,
			want: []PageLink{
				{Kind: LinkFirst, Page: 1},
				{Kind: LinkPrevious, Page: 2},
				{Kind: LinkNumber, Page: 1},
				{Kind: LinkNumber, Page: 2},
				{Kind: LinkNumber, Page: 3, Current: true},
			},
		},
		{
			name:  "first of three",
			page:  1,
			total: 25,
			want: []PageLink{
				{Kind: LinkNumber, Page: 1, Current: true},
				{Kind: LinkNumber, Page: 2},
				{Kind: LinkNumber, Page: 3},
				{Kind: LinkNext, Page: 2},
				{Kind: LinkLast, Page: 3},
			},
		},
		{
			name:  "beyond the last page",
			page:  9,
			total: 25,
			want: []PageLink{
				{Kind: LinkFirst, Page: 1},
				{Kind: LinkPrevious, Page: 8},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Window(tt.page, tt.total, models.PageLength))
		})
	}
}

func TestWindowBounds(t *testing.T) {
	links := Window(10, 200, 10)

	var numbers []int
	for _, link := range links {
		if link.Kind == LinkNumber {
			numbers = append(numbers, link.Page)
		}
	}
	assert.Equal(t, []int{5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, numbers)
	assert.Equal(t, PageLink{Kind: LinkLast, Page: 20}, links[len(links)-1])
}

func TestListNotFound(t *testing.T) {
	html := render(t, models.ResultPage{Users: []models.Record{}, Total: 0}, testMeta(), NewForm("a", "n"))

	assert.Contains(t, html, `<div class="ct-user-list-not-found">No users found</div>`)
	assert.NotContains(t, html, "<table")
	assert.NotContains(t, html, "ct-user-list-pagination")
}

func TestListLastPage(t *testing.T) {
	form := NewForm("a", "n")
	form.Set(InputPage, "3")

	html := render(t, models.ResultPage{Users: users(5), Total: 25}, testMeta(), form)

	assert.Equal(t, 2, strings.Count(html, `<div class="ct-user-list-pagination">`))
	assert.Equal(t, 5, strings.Count(html, "<td>user"))
	assert.Contains(t, html, "<span>3</span>")
	assert.Contains(t, html, `data-page="2"`)
	assert.NotContains(t, html, "›")
	assert.NotContains(t, html, "»")
	assert.Contains(t, html, "‹")

	top := between(html, `<div class="ct-user-list-actions-top">`, `</div><div class="ct-user-list">`)
	bottom := between(html, `<div class="ct-user-list-actions-bottom">`, `</div></div>`)
	assert.NotEmpty(t, top)
	assert.Equal(t, top, bottom+"</div>")
}

func TestListSinglePage(t *testing.T) {
	html := render(t, models.ResultPage{Users: users(4), Total: 4}, testMeta(), NewForm("a", "n"))

	assert.Contains(t, html, "<table><thead><tr>")
	assert.Contains(t, html, "<tfoot><tr>")
	assert.NotContains(t, html, "ct-user-list-pagination")
	assert.Contains(t, html, "<th>Role</th>")
}

func TestListSortMarkers(t *testing.T) {
	form := NewForm("a", "n")
	form.SetOrderBy("first_name")
	form.SetOrderBy("first_name")

	html := render(t, models.ResultPage{Users: users(1), Total: 1}, testMeta(), form)

	assert.Equal(t, 2, strings.Count(html, `class="ct-user-list-ordered-descending"`))
	assert.NotContains(t, html, "ct-user-list-ordered-ascending")
	assert.Contains(t, html, `<input type="hidden" form="ct-user-list-search" name="order" value="DESC">`)
}

func TestListLowercaseOrderMarksAscending(t *testing.T) {
	form := NewForm("a", "n")
	form.Set(InputOrderBy, "username")
	form.Set(InputOrder, "asc")

	html := render(t, models.ResultPage{Users: users(1), Total: 1}, testMeta(), form)

	assert.Equal(t, 2, strings.Count(html, `class="ct-user-list-ordered-ascending"`))
	assert.NotContains(t, html, "ct-user-list-ordered-descending")
	assert.Contains(t, html, `hx-vals="{&#34;order&#34;:&#34;DESC&#34;,&#34;order_by&#34;:&#34;username&#34;}"`)
}

func TestListEscapesValues(t *testing.T) {
	r := models.NewRecord(3)
	r.Set("username", "<script>alert(1)</script>")

	html := render(t, models.ResultPage{Users: []models.Record{r}, Total: 1}, testMeta(), NewForm("a", "n"))

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;alert(1)&lt;/script&gt;")
}

func TestHeadersJSONKeepsOrder(t *testing.T) {
	headers := Headers{
		{ID: "zeta", Label: "Z", Sortable: true},
		{ID: "alpha", Label: "A"},
	}

	b, err := json.Marshal(headers)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":{"label":"Z","sortable":true},"alpha":{"label":"A","sortable":false}}`, string(b))

	var decoded Headers
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, headers, decoded)
}

func TestPage(t *testing.T) {
	printer := i18n.Printer(language.English)
	registry := fields.Default(printer)
	meta := testMeta()
	meta.Headers = registry.Headers()

	form := NewForm("ct_user_list_get_users", "token-1")
	form.Set(InputRole, "editor")

	params := PageParams{
		Title:    "Users",
		Lang:     "en",
		HtmxURL:  "/static/htmx.min.js",
		Action:   "/api/v1/users/list",
		Roles:    models.NewRoleSet(models.Role{ID: "administrator", Name: "Administrator"}, models.Role{ID: "editor", Name: "Editor"}),
		RoleHint: "Select role...",
		Options:  Options{Data: models.ResultPage{Users: users(2), Total: 2}, Meta: meta},
		Form:     form,
	}

	var buf bytes.Buffer
	require.NoError(t, Page(params).Render(context.Background(), &buf))
	html := buf.String()

	assert.Contains(t, html, `<option value="">Select role...</option>`)
	assert.Contains(t, html, `<option value="editor" selected>Editor</option>`)
	assert.Contains(t, html, `<input type="hidden" name="nonce" value="token-1">`)
	assert.Contains(t, html, `action="/api/v1/users/list"`)

	match := optionsScript.FindStringSubmatch(html)
	require.Len(t, match, 2)
	script := match[1]
	var options struct {
		Data       models.ResultPage `json:"data"`
		Headers    Headers           `json:"headers"`
		PageLength int               `json:"page_length"`
		Labels     Labels            `json:"labels"`
	}
	require.NoError(t, json.Unmarshal([]byte(script), &options))
	assert.Equal(t, 2, options.Data.Total)
	assert.Equal(t, models.PageLength, options.PageLength)
	assert.Equal(t, "No users found", options.Labels.NotFound)
	require.Len(t, options.Headers, 3)
	assert.Equal(t, "username", options.Headers[0].ID)
}

var optionsScript = regexp.MustCompile(`(?s)<script[^>]*id="ct-user-list-options"[^>]*>(.*?)</script>`)

func between(s, start, end string) string {
	i := strings.Index(s, start)
	if i < 0 {
		return ""
	}
	s = s[i+len(start):]
	j := strings.Index(s, end)
	if j < 0 {
		return ""
	}
	return s[:j]
}
