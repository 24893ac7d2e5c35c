package delivery

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SlavaShagalov/user-list/internal/models"
	"github.com/SlavaShagalov/user-list/internal/pkg/app"
	pkgErrors "github.com/SlavaShagalov/user-list/internal/pkg/errors"
	"github.com/SlavaShagalov/user-list/internal/service"
	"github.com/SlavaShagalov/user-list/internal/userlist/delivery/mocks"
	"github.com/SlavaShagalov/user-list/internal/userlist/fields"
	"github.com/SlavaShagalov/user-list/internal/userlist/usecase"
	"github.com/SlavaShagalov/user-list/internal/userlist/view"
)

var testHeaders = []fields.Header{
	{ID: "username", Label: "Username", Sortable: true},
	{ID: "first_name", Label: "First Name", Sortable: true},
	{ID: "role", Label: "Role"},
}

type env struct {
	app    *fiber.App
	uc     *mocks.MockUseCase
	nonces service.NonceService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := mocks.NewMockUseCase(ctrl)
	nonces := service.NewNonceService("test-secret", time.Hour)

	d := New(uc, nonces, app.NonceMiddleware(nonces, service.ListUsersAction, logger), PageConfig{
		Title:    "Users",
		Lang:     "en",
		RoleHint: "Select role...",
		Labels:   view.Labels{NotFound: "No users found", First: "«", Previous: "‹", Next: "›", Last: "»"},
	}, logger)

	fiberApp := fiber.New(fiber.Config{ErrorHandler: app.NewErrorHandler(logger)})
	d.AddHandlers(fiberApp)

	return &env{app: fiberApp, uc: uc, nonces: nonces}
}

func (e *env) nonce(t *testing.T) string {
	t.Helper()
	token, err := e.nonces.Issue(service.ListUsersAction)
	require.NoError(t, err)
	return token
}

func (e *env) post(t *testing.T, path, body string, header map[string]string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := e.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func record(username, firstName, role string) models.Record {
	r := models.NewRecord(3)
	r.Set("username", username)
	r.Set("first_name", firstName)
	r.Set("role", role)
	return r
}

func TestListRejectsMissingNonce(t *testing.T) {
	e := newEnv(t)

	for _, path := range []string{ListPath, FragmentPath} {
		status, body := e.post(t, path, "role=editor&action=ct_user_list_get_users", nil)
		assert.Equal(t, fiber.StatusForbidden, status)
		assert.JSONEq(t, `{"message":"invalid nonce"}`, body)
	}
}

func TestListRejectsForgedNonce(t *testing.T) {
	e := newEnv(t)

	forged, err := service.NewNonceService("other-secret", time.Hour).Issue(service.ListUsersAction)
	require.NoError(t, err)

	status, _ := e.post(t, ListPath, "nonce="+forged, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestListRejectsUnknownAction(t *testing.T) {
	e := newEnv(t)

	status, body := e.post(t, ListPath, "action=delete_users&nonce="+e.nonce(t), nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"message":"unknown action"}`, body)
}

func TestListUsers(t *testing.T) {
	e := newEnv(t)

	e.uc.EXPECT().GetPage(gomock.Any(), usecase.RawOptions{
		Role:    "editor",
		OrderBy: "username",
		Order:   "desc",
		Page:    "3",
	}).Return(models.ResultPage{
		Users: []models.Record{record("ed", "", "Editor")},
		Total: 21,
	}, nil)

	form := url.Values{}
	form.Add("role", " editor\t")
	form.Add("order_by", "username")
	form.Add("order", "desc")
	form.Add("page", "3")
	form.Add("page", "7")
	form.Add("password", "ignored")
	form.Add("action", service.ListUsersAction)
	form.Add("nonce", e.nonce(t))

	status, body := e.post(t, ListPath, form.Encode(), nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, `{"users":[{"username":"ed","first_name":"","role":"Editor"}],"total":21}`, body)
}

func TestListUsersNonceHeader(t *testing.T) {
	e := newEnv(t)

	e.uc.EXPECT().GetPage(gomock.Any(), usecase.RawOptions{}).
		Return(models.ResultPage{Users: []models.Record{}, Total: 0}, nil)

	status, body := e.post(t, ListPath, "", map[string]string{app.NonceHeader: e.nonce(t)})
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"users":[],"total":0}`, body)
}

func TestListUsersStoreFailure(t *testing.T) {
	e := newEnv(t)

	e.uc.EXPECT().GetPage(gomock.Any(), gomock.Any()).
		Return(models.ResultPage{}, errors.Wrap(pkgErrors.ErrDb, "connection refused"))

	status, body := e.post(t, ListPath, "nonce="+e.nonce(t), nil)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.JSONEq(t, `{"message":"users are unavailable"}`, body)
}

func TestUsersTable(t *testing.T) {
	e := newEnv(t)

	users := make([]models.Record, 0, 5)
	for i := 0; i < 5; i++ {
		users = append(users, record("editor", "", "Editor"))
	}

	e.uc.EXPECT().GetPage(gomock.Any(), usecase.RawOptions{Role: "editor", Page: "3"}).
		Return(models.ResultPage{Users: users, Total: 25}, nil)
	e.uc.EXPECT().Headers().Return(testHeaders)
	e.uc.EXPECT().PageLength().Return(models.PageLength)

	status, body := e.post(t, FragmentPath, "role=editor&page=3&nonce="+e.nonce(t), nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, strings.HasPrefix(body, `<div id="ct-user-list-region">`))
	assert.Contains(t, body, "<span>3</span>")
	assert.Equal(t, 2, strings.Count(body, `class="ct-user-list-pagination"`))
}

func TestUsersTableLowercaseOrder(t *testing.T) {
	e := newEnv(t)

	e.uc.EXPECT().GetPage(gomock.Any(), usecase.RawOptions{OrderBy: "username", Order: "asc"}).
		Return(models.ResultPage{Users: []models.Record{record("ed", "", "Editor")}, Total: 1}, nil)
	e.uc.EXPECT().Headers().Return(testHeaders)
	e.uc.EXPECT().PageLength().Return(models.PageLength)

	status, body := e.post(t, FragmentPath, "order_by=username&order=asc&nonce="+e.nonce(t), nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 2, strings.Count(body, `class="ct-user-list-ordered-ascending"`))
	assert.NotContains(t, body, "ct-user-list-ordered-descending")
	assert.Contains(t, body, `name="order" value="ASC"`)
	assert.Contains(t, body, `&#34;order&#34;:&#34;DESC&#34;`)
}

func TestListUsersIgnoresQueryValues(t *testing.T) {
	e := newEnv(t)

	e.uc.EXPECT().GetPage(gomock.Any(), usecase.RawOptions{Role: "editor"}).
		Return(models.ResultPage{Users: []models.Record{}, Total: 0}, nil)

	status, _ := e.post(t, ListPath+"?role=administrator&page=9", "role=editor&nonce="+e.nonce(t), nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, body := e.post(t, ListPath+"?nonce="+e.nonce(t), "role=editor", nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.JSONEq(t, `{"message":"invalid nonce"}`, body)
}

func TestUsersPage(t *testing.T) {
	e := newEnv(t)

	e.uc.EXPECT().Roles(gomock.Any()).Return(models.NewRoleSet(
		models.Role{ID: "administrator", Name: "Administrator"},
		models.Role{ID: "editor", Name: "Editor"},
	), nil)
	e.uc.EXPECT().GetPage(gomock.Any(), usecase.RawOptions{OrderBy: "first_name"}).
		Return(models.ResultPage{Users: []models.Record{}, Total: 0}, nil)
	e.uc.EXPECT().Headers().Return(testHeaders)
	e.uc.EXPECT().PageLength().Return(models.PageLength)

	req := httptest.NewRequest(http.MethodGet, PagePath+"?order_by=first_name", nil)
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, fiber.MIMETextHTMLCharsetUTF8, resp.Header.Get(fiber.HeaderContentType))

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	html := string(b)

	assert.Contains(t, html, `<div class="ct-user-list-not-found">No users found</div>`)
	assert.Contains(t, html, `<option value="editor">Editor</option>`)

	match := regexp.MustCompile(`name="nonce" value="([^"]+)"`).FindStringSubmatch(html)
	require.Len(t, match, 2)
	assert.NoError(t, e.nonces.Verify(match[1], service.ListUsersAction))
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "  editor \n", want: "editor"},
		{in: "first\tname", want: "first name"},
		{in: "edi\x07tor", want: "editor"},
		{in: "<b>editor</b>", want: "editor"},
		{in: "<script>alert(1)</script>editor", want: "editor"},
		{in: "3abc", want: "3abc"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Sanitize(tt.in), "input %q", tt.in)
	}
}
