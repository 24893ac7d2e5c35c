// Package client drives a rendered user list from Go: it keeps the search
// form state, submits it and re-renders the list from the response.
package client

import (
	"bytes"
	"context"
	"log/slog"
	"strconv"

	"github.com/pkg/errors"

	"github.com/SlavaShagalov/user-list/internal/models"
	"github.com/SlavaShagalov/user-list/internal/userlist/view"
)

// Controller is not safe for concurrent use. Submissions are not sequenced:
// whichever response completes last is the one shown.
type Controller struct {
	form      *view.Form
	meta      view.Meta
	data      models.ResultPage
	transport Transport
	logger    *slog.Logger

	loading  bool
	disabled bool
	rendered string
}

func NewController(boot Bootstrap, transport Transport, logger *slog.Logger) (*Controller, error) {
	c := &Controller{
		form:      boot.Form,
		meta:      boot.Options.Meta,
		data:      boot.Options.Data,
		transport: transport,
		logger:    logger,
	}
	if err := c.render(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) Form() *view.Form {
	return c.form
}

func (c *Controller) Data() models.ResultPage {
	return c.data
}

func (c *Controller) Loading() bool {
	return c.loading
}

func (c *Controller) Disabled() bool {
	return c.disabled
}

// HTML is the list region as last rendered.
func (c *Controller) HTML() string {
	return c.rendered
}

// Submit posts the form. Controls are disabled while the request is in
// flight; on failure the current data stays and the error is returned.
func (c *Controller) Submit(ctx context.Context) error {
	values := c.form.Values()

	c.loading, c.disabled = true, true
	defer func() {
		c.loading, c.disabled = false, false
	}()

	data, err := c.transport.Fetch(ctx, values)
	if err != nil {
		c.logger.Error("submit user list", slog.String("error", err.Error()))
		return err
	}

	c.data = data
	return c.render()
}

func (c *Controller) ChangeRole(ctx context.Context, role string) error {
	c.form.Set(view.InputRole, role)
	c.form.ResetPage()
	return c.Submit(ctx)
}

// ClickSort applies the sort toggle for field, which must be a sortable column.
func (c *Controller) ClickSort(ctx context.Context, field string) error {
	if !c.sortable(field) {
		return errors.Errorf("field %q is not sortable", field)
	}
	c.form.SetOrderBy(field)
	return c.Submit(ctx)
}

func (c *Controller) ClickPage(ctx context.Context, page int) error {
	c.form.Set(view.InputPage, strconv.Itoa(page))
	return c.Submit(ctx)
}

func (c *Controller) sortable(field string) bool {
	for _, header := range c.meta.Headers {
		if header.ID == field {
			return header.Sortable
		}
	}
	return false
}

func (c *Controller) render() error {
	var buf bytes.Buffer
	if err := view.List(c.data, c.meta, c.form).Render(context.Background(), &buf); err != nil {
		return err
	}
	c.rendered = buf.String()
	return nil
}
